// Package collection implements collection creation: gate access, validate
// the payload, import the external feed and persist the entity.
package collection

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/semjuel/instagram/internal/application/access"
	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
)

// CreateCollectionInput is the request payload. Token is the external feed
// access token; it is stripped before field validation and never persisted.
type CreateCollectionInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Token       string `json:"token"`
}

// collectionFields is what field-level validation actually sees. The token
// must not appear here.
type collectionFields struct {
	Name        string `validate:"required,max=255"`
	Description string `validate:"max=2000"`
}

// ValidationError carries structured field errors for a 422 response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "payload validation failed" }

// CreateCollection orchestrates the create flow.
type CreateCollection struct {
	access      *access.Validator
	collections ports.CollectionRepository
	feedSource  ports.FeedSource
	enqueuer    ports.TaskEnqueuer
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewCreateCollection builds the use case.
func NewCreateCollection(
	accessValidator *access.Validator,
	collections ports.CollectionRepository,
	feedSource ports.FeedSource,
	enqueuer ports.TaskEnqueuer,
	log zerolog.Logger,
) *CreateCollection {
	return &CreateCollection{
		access:      accessValidator,
		collections: collections,
		feedSource:  feedSource,
		enqueuer:    enqueuer,
		validate:    validator.New(),
		log:         log,
	}
}

// Execute creates a collection under the organization/project pair. Access
// and payload failures abort before any network or persistence side effect;
// feed fetch/parse failures after that point degrade to an empty media set
// and never fail the request.
func (uc *CreateCollection) Execute(ctx context.Context, caller *domain.User, orgID, projectID string, input CreateCollectionInput) (*domain.Collection, error) {
	resolved, err := uc.access.Resolve(ctx, caller, orgID, projectID, "")
	if err != nil {
		return nil, err
	}

	token := input.Token
	input.Token = ""
	if err := uc.validateFields(input); err != nil {
		return nil, err
	}

	items := uc.importFeed(ctx, caller, token)

	col := &domain.Collection{
		ID:             domain.NewCollectionID(uuid.New()),
		OrganizationID: resolved.Organization.ID,
		ProjectID:      resolved.Project.ID,
		Name:           input.Name,
		Description:    input.Description,
		CreatedBy:      caller.ID,
		CreatedAt:      time.Now(),
	}
	if err := uc.collections.Create(ctx, col); err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if err := uc.enqueuer.EnqueueFetchImages(ctx, col.ID, items); err != nil {
			uc.log.Warn().Err(err).
				Str("channel", "feed").
				Str("collection_id", col.ID.String()).
				Msg("enqueue image fetch failed")
		}
	}
	return col, nil
}

// importFeed fetches and parses the external feed. Any failure is logged and
// degraded to an empty mapping; the fetch is attempted exactly once.
func (uc *CreateCollection) importFeed(ctx context.Context, caller *domain.User, token string) map[string][]feed.Media {
	body, err := uc.feedSource.RecentMedia(ctx, token)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("channel", "feed").
			Str("user_id", caller.ID.String()).
			Msg("feed fetch failed; continuing with empty media")
		return map[string][]feed.Media{}
	}
	items, err := feed.Parse(body)
	if err != nil {
		uc.log.Warn().Err(err).
			Str("channel", "feed").
			Str("user_id", caller.ID.String()).
			Msg("feed parse failed; continuing with empty media")
		return map[string][]feed.Media{}
	}
	return items
}

func (uc *CreateCollection) validateFields(input CreateCollectionInput) error {
	fields := collectionFields{
		Name:        input.Name,
		Description: input.Description,
	}
	err := uc.validate.Struct(fields)
	if err == nil {
		return nil
	}
	out := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			out[strings.ToLower(fe.Field())] = fe.Tag()
		}
	} else {
		out["payload"] = "invalid"
	}
	return &ValidationError{Fields: out}
}
