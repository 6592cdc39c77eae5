package ports

import (
	"context"

	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
)

// FeedSource fetches the raw recent-media feed for an access token.
type FeedSource interface {
	RecentMedia(ctx context.Context, accessToken string) ([]byte, error)
}

// ImageFetcher materializes parsed feed descriptors into stored media for a
// collection. Best-effort from the request's perspective; retry semantics
// belong to the caller (the task queue).
type ImageFetcher interface {
	FetchImages(ctx context.Context, collectionID domain.CollectionID, items map[string][]feed.Media) error
}
