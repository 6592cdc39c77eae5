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
	createCollectionSQL = `INSERT INTO collections (id, organization_id, project_id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	getCollectionSQL = `SELECT id, organization_id, project_id, name, description, created_by, created_at
		FROM collections WHERE id = $1`
)

type CollectionRepository struct {
	pool *pgxpool.Pool
}

func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

func (r *CollectionRepository) Create(ctx context.Context, col *domain.Collection) error {
	if col.ID.UUID == (uuid.UUID{}) {
		col.ID = domain.NewCollectionID(uuid.New())
	}
	if col.CreatedAt.IsZero() {
		col.CreatedAt = time.Now()
	}
	_, err := r.pool.Exec(ctx, createCollectionSQL,
		col.ID.UUID,
		col.OrganizationID.UUID,
		col.ProjectID.UUID,
		col.Name,
		col.Description,
		col.CreatedBy.UUID,
		col.CreatedAt,
	)
	return err
}

func (r *CollectionRepository) GetByID(ctx context.Context, id domain.CollectionID) (*domain.Collection, error) {
	var (
		colID       uuid.UUID
		orgID       uuid.UUID
		projectID   uuid.UUID
		name        string
		description string
		createdBy   uuid.UUID
		createdAt   time.Time
	)
	err := r.pool.QueryRow(ctx, getCollectionSQL, id.UUID).
		Scan(&colID, &orgID, &projectID, &name, &description, &createdBy, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Collection{
		ID:             domain.NewCollectionID(colID),
		OrganizationID: domain.NewOrganizationID(orgID),
		ProjectID:      domain.NewProjectID(projectID),
		Name:           name,
		Description:    description,
		CreatedBy:      domain.NewUserID(createdBy),
		CreatedAt:      createdAt,
	}, nil
}

var _ ports.CollectionRepository = (*CollectionRepository)(nil)
