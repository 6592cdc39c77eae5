package queue

import (
	"context"

	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueFetchImages(ctx context.Context, collectionID domain.CollectionID, items map[string][]feed.Media) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
