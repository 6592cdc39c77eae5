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

const getProjectSQL = `SELECT id, organization_id, name, created_at FROM projects WHERE id = $1`

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	var (
		projectID uuid.UUID
		orgID     uuid.UUID
		name      string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, getProjectSQL, id.UUID).Scan(&projectID, &orgID, &name, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Project{
		ID:             domain.NewProjectID(projectID),
		OrganizationID: domain.NewOrganizationID(orgID),
		Name:           name,
		CreatedAt:      createdAt,
	}, nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
