package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is a scope inside an organization. Invariant: a project belongs
// to exactly one organization; the collection flow enforces it at resolution
// time, not in storage.
type Project struct {
	ID             ProjectID
	OrganizationID OrganizationID
	Name           string
	CreatedAt      time.Time
}
