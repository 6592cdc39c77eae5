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

const getUserSQL = `SELECT id, organization_id, email, role, created_at FROM users WHERE id = $1`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var (
		userID    uuid.UUID
		orgID     *uuid.UUID
		email     string
		role      string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, getUserSQL, id.UUID).Scan(&userID, &orgID, &email, &role, &createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user := &domain.User{
		ID:        domain.NewUserID(userID),
		Email:     email,
		Role:      domain.Role(role),
		CreatedAt: createdAt,
	}
	if orgID != nil {
		o := domain.NewOrganizationID(*orgID)
		user.OrganizationID = &o
	}
	return user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
