// Package imagefetch materializes parsed feed descriptors into stored media.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
)

// maxImageBytes bounds a single image download.
const maxImageBytes = 25 << 20

// Fetcher downloads image descriptors and records media rows. Videos are
// recorded without a download; the feed exposes no playable URL for them.
type Fetcher struct {
	client *http.Client
	media  ports.MediaRepository
	log    zerolog.Logger
}

// NewFetcher creates a fetcher. A zero timeout falls back to 30s.
func NewFetcher(media ports.MediaRepository, timeout time.Duration, log zerolog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		media:  media,
		log:    log,
	}
}

// FetchImages downloads every image descriptor and persists one media row
// per descriptor. Individual download failures skip the item; the call fails
// only when nothing could be stored despite failures, so the task queue can
// retry it.
func (f *Fetcher) FetchImages(ctx context.Context, collectionID domain.CollectionID, items map[string][]feed.Media) error {
	externalIDs := make([]string, 0, len(items))
	for id := range items {
		externalIDs = append(externalIDs, id)
	}
	sort.Strings(externalIDs)

	var (
		records  []*domain.Media
		failed   int
		position int
	)
	for _, externalID := range externalIDs {
		for _, m := range items[externalID] {
			record := &domain.Media{
				CollectionID: collectionID,
				ExternalID:   externalID,
				Position:     position,
			}
			switch m.Kind {
			case feed.KindVideo:
				record.Kind = domain.MediaVideo
			case feed.KindImage:
				size, err := f.download(ctx, m.URL)
				if err != nil {
					f.log.Warn().Err(err).
						Str("collection_id", collectionID.String()).
						Str("external_id", externalID).
						Msg("image download failed; skipping item")
					failed++
					position++
					continue
				}
				record.Kind = domain.MediaImage
				record.SourceURL = m.URL
				record.ByteSize = size
			default:
				position++
				continue
			}
			records = append(records, record)
			position++
		}
	}

	if len(records) == 0 {
		if failed > 0 {
			return fmt.Errorf("all %d image downloads failed", failed)
		}
		return nil
	}
	return f.media.CreateBatch(ctx, records)
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}
	size, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return 0, err
	}
	return size, nil
}

var _ ports.ImageFetcher = (*Fetcher)(nil)
