package queue

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
)

// Worker runs Asynq task handlers. Failed image-fetch tasks are retried by
// Asynq; that retry is the out-of-band failure channel for the best-effort
// materialization delegated by collection creation.
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	fetcher ports.ImageFetcher
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, fetcher ports.ImageFetcher, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, fetcher: fetcher, log: log}
	mux.HandleFunc(TypeFetchImages, w.handleFetchImages)
	return w
}

func (w *Worker) handleFetchImages(ctx context.Context, t *asynq.Task) error {
	var p fetchImagesPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("image fetch task payload invalid")
		return err
	}
	collectionUUID, err := uuid.Parse(p.CollectionID)
	if err != nil {
		w.log.Error().Err(err).Str("collection_id", p.CollectionID).Msg("image fetch task has invalid collection id")
		return err
	}
	if err := w.fetcher.FetchImages(ctx, domain.NewCollectionID(collectionUUID), p.Items); err != nil {
		w.log.Warn().Err(err).Str("collection_id", p.CollectionID).Msg("image fetch failed; task will be retried")
		return err
	}
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
