package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
)

const TypeFetchImages = "collection:fetch_images"

// fetchImagesPayload is the task body for image materialization.
type fetchImagesPayload struct {
	CollectionID string                  `json:"collection_id"`
	Items        map[string][]feed.Media `json:"items"`
}

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueFetchImages(ctx context.Context, collectionID domain.CollectionID, items map[string][]feed.Media) error {
	payload, err := json.Marshal(fetchImagesPayload{
		CollectionID: collectionID.String(),
		Items:        items,
	})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeFetchImages, payload, asynq.MaxRetry(5))
	_, err = q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("collection_id", collectionID.String()).Msg("enqueue image fetch failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
