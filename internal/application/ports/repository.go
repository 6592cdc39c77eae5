package ports

import (
	"context"

	"github.com/semjuel/instagram/internal/domain"
)

// OrganizationRepository reads organizations. Lookups return (nil, nil) when
// the row is absent.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id domain.OrganizationID) (*domain.Organization, error)
}

// ProjectRepository reads projects.
type ProjectRepository interface {
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
}

// UserRepository reads users; the collection flow never mutates them.
type UserRepository interface {
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
}

// CollectionRepository persists collections.
type CollectionRepository interface {
	Create(ctx context.Context, col *domain.Collection) error
	GetByID(ctx context.Context, id domain.CollectionID) (*domain.Collection, error)
}

// MediaRepository persists imported media items.
type MediaRepository interface {
	CreateBatch(ctx context.Context, items []*domain.Media) error
	ListByCollection(ctx context.Context, collectionID domain.CollectionID) ([]*domain.Media, error)
}
