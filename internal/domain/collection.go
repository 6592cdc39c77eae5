package domain

import (
	"time"

	"github.com/google/uuid"
)

// CollectionID is a value object for collection identity.
type CollectionID struct{ uuid.UUID }

// NewCollectionID creates a new CollectionID from uuid.
func NewCollectionID(id uuid.UUID) CollectionID { return CollectionID{UUID: id} }

// String returns the canonical string form.
func (c CollectionID) String() string { return c.UUID.String() }

// Collection holds media imported from an external account feed. It belongs
// to exactly one organization and one project; its media set is populated
// asynchronously after creation.
type Collection struct {
	ID             CollectionID
	OrganizationID OrganizationID
	ProjectID      ProjectID
	Name           string
	Description    string
	CreatedBy      UserID
	CreatedAt      time.Time
}

// MediaID is a value object for media identity.
type MediaID struct{ uuid.UUID }

// NewMediaID creates a new MediaID from uuid.
func NewMediaID(id uuid.UUID) MediaID { return MediaID{UUID: id} }

// String returns the canonical string form.
func (m MediaID) String() string { return m.UUID.String() }

// MediaKind distinguishes stored media items.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is one imported item of a collection. SourceURL and ByteSize are
// empty for videos; the feed exposes no playable URL for them.
type Media struct {
	ID           MediaID
	CollectionID CollectionID
	ExternalID   string
	Kind         MediaKind
	SourceURL    string
	ByteSize     int64
	Position     int
	CreatedAt    time.Time
}
