// Package access resolves the organization → project → collection chain for
// an authenticated caller.
package access

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
	domerrors "github.com/semjuel/instagram/internal/domain/errors"
)

// Resolved holds the entities a successful validation produced. Collection
// is nil unless a collection id was supplied.
type Resolved struct {
	Organization *domain.Organization
	Project      *domain.Project
	Collection   *domain.Collection
}

// Validator checks caller identity and the existence and relational
// consistency of path resources, in a fixed order. Identity and role checks
// run before any lookup so an unauthorized caller never learns whether a
// resource exists; ID syntax is checked before lookups to avoid wasted
// queries.
type Validator struct {
	orgs        ports.OrganizationRepository
	projects    ports.ProjectRepository
	collections ports.CollectionRepository
}

// NewValidator builds the validator over read-only repositories.
func NewValidator(orgs ports.OrganizationRepository, projects ports.ProjectRepository, collections ports.CollectionRepository) *Validator {
	return &Validator{orgs: orgs, projects: projects, collections: collections}
}

// Resolve validates caller access to the organization/project pair, and to a
// collection when collectionID is non-empty. It short-circuits on the first
// failure with ErrAccessDenied or ErrResourceNotFound; a project in a
// different organization is indistinguishable from an absent one.
func (v *Validator) Resolve(ctx context.Context, caller *domain.User, orgID, projectID, collectionID string) (*Resolved, error) {
	if caller == nil {
		return nil, domerrors.ErrAccessDenied
	}
	if !callerOwnsOrganization(caller, orgID) && !caller.Role.Can(domain.CapCrossOrganization) {
		return nil, domerrors.ErrAccessDenied
	}

	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return nil, domerrors.ErrResourceNotFound
	}
	projectUUID, err := uuid.Parse(projectID)
	if err != nil {
		return nil, domerrors.ErrResourceNotFound
	}

	org, err := v.orgs.GetByID(ctx, domain.NewOrganizationID(orgUUID))
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domerrors.ErrResourceNotFound
	}

	project, err := v.projects.GetByID(ctx, domain.NewProjectID(projectUUID))
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrResourceNotFound
	}
	if project.OrganizationID != org.ID {
		return nil, domerrors.ErrResourceNotFound
	}

	resolved := &Resolved{Organization: org, Project: project}
	if collectionID == "" {
		return resolved, nil
	}

	collectionUUID, err := uuid.Parse(collectionID)
	if err != nil {
		return nil, domerrors.ErrResourceNotFound
	}
	col, err := v.collections.GetByID(ctx, domain.NewCollectionID(collectionUUID))
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, domerrors.ErrResourceNotFound
	}
	resolved.Collection = col
	return resolved, nil
}

// callerOwnsOrganization compares the caller's affiliation against the raw
// path segment. The comparison runs before UUID parsing, so it works on
// string form only.
func callerOwnsOrganization(caller *domain.User, orgID string) bool {
	if caller.OrganizationID == nil {
		return false
	}
	return strings.EqualFold(caller.OrganizationID.String(), strings.TrimSpace(orgID))
}
