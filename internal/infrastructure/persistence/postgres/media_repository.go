package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
)

const (
	createMediaSQL = `INSERT INTO media (id, collection_id, external_id, kind, source_url, byte_size, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	listMediaSQL = `SELECT id, collection_id, external_id, kind, source_url, byte_size, position, created_at
		FROM media WHERE collection_id = $1 ORDER BY position`
)

type MediaRepository struct {
	pool *pgxpool.Pool
}

func NewMediaRepository(pool *pgxpool.Pool) *MediaRepository {
	return &MediaRepository{pool: pool}
}

// CreateBatch inserts all items in one round trip.
func (r *MediaRepository) CreateBatch(ctx context.Context, items []*domain.Media) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	now := time.Now()
	for _, m := range items {
		if m.ID.UUID == (uuid.UUID{}) {
			m.ID = domain.NewMediaID(uuid.New())
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		batch.Queue(createMediaSQL,
			m.ID.UUID,
			m.CollectionID.UUID,
			m.ExternalID,
			string(m.Kind),
			m.SourceURL,
			m.ByteSize,
			m.Position,
			m.CreatedAt,
		)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *MediaRepository) ListByCollection(ctx context.Context, collectionID domain.CollectionID) ([]*domain.Media, error) {
	rows, err := r.pool.Query(ctx, listMediaSQL, collectionID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Media
	for rows.Next() {
		var (
			id         uuid.UUID
			colID      uuid.UUID
			externalID string
			kind       string
			sourceURL  string
			byteSize   int64
			position   int
			createdAt  time.Time
		)
		if err := rows.Scan(&id, &colID, &externalID, &kind, &sourceURL, &byteSize, &position, &createdAt); err != nil {
			return nil, err
		}
		out = append(out, &domain.Media{
			ID:           domain.NewMediaID(id),
			CollectionID: domain.NewCollectionID(colID),
			ExternalID:   externalID,
			Kind:         domain.MediaKind(kind),
			SourceURL:    sourceURL,
			ByteSize:     byteSize,
			Position:     position,
			CreatedAt:    createdAt,
		})
	}
	return out, rows.Err()
}

var _ ports.MediaRepository = (*MediaRepository)(nil)
