package ports

import (
	"context"

	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
)

// TaskEnqueuer enqueues async tasks (image materialization).
type TaskEnqueuer interface {
	EnqueueFetchImages(ctx context.Context, collectionID domain.CollectionID, items map[string][]feed.Media) error
}
