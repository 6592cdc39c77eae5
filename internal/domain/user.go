package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// Role is a member role from a closed set.
type Role string

const (
	RoleMember     Role = "member"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Capability names something a role is allowed to do.
type Capability string

// CapCrossOrganization allows acting on organizations other than the user's own.
const CapCrossOrganization Capability = "cross_organization"

// Can reports whether the role grants the capability.
func (r Role) Can(c Capability) bool {
	switch c {
	case CapCrossOrganization:
		return r == RoleSuperAdmin
	default:
		return false
	}
}

// User is an authenticated member. OrganizationID is nil for users without an affiliation.
type User struct {
	ID             UserID
	OrganizationID *OrganizationID
	Email          string
	Role           Role
	CreatedAt      time.Time
}
