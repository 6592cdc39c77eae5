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

const getOrganizationSQL = `SELECT id, name, created_at FROM organizations WHERE id = $1`

type OrganizationRepository struct {
	pool *pgxpool.Pool
}

func NewOrganizationRepository(pool *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{pool: pool}
}

func (r *OrganizationRepository) GetByID(ctx context.Context, id domain.OrganizationID) (*domain.Organization, error) {
	var (
		orgID     uuid.UUID
		name      string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, getOrganizationSQL, id.UUID).Scan(&orgID, &name, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Organization{
		ID:        domain.NewOrganizationID(orgID),
		Name:      name,
		CreatedAt: createdAt,
	}, nil
}

var _ ports.OrganizationRepository = (*OrganizationRepository)(nil)
