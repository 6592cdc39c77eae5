package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/semjuel/instagram/internal/application/collection"
	"github.com/semjuel/instagram/internal/application/ports"
	"github.com/semjuel/instagram/internal/domain"
	domerrors "github.com/semjuel/instagram/internal/domain/errors"
	"github.com/semjuel/instagram/internal/infrastructure/http/middleware"
)

// CollectionsHandler handles collection endpoints under
// /organizations/{organizationID}/projects/{projectID}. Requires JWT.
type CollectionsHandler struct {
	createCollection *collection.CreateCollection
	users            ports.UserRepository
	log              zerolog.Logger
}

// NewCollectionsHandler creates the handler.
func NewCollectionsHandler(createCollection *collection.CreateCollection, users ports.UserRepository, log zerolog.Logger) *CollectionsHandler {
	return &CollectionsHandler{createCollection: createCollection, users: users, log: log}
}

// CollectionResponse is the JSON shape for a collection. Media is populated
// asynchronously and therefore absent here.
type CollectionResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	ProjectID      string `json:"project_id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	CreatedBy      string `json:"created_by"`
	CreatedAt      string `json:"created_at"`
}

// Create imports the caller's recent feed media into a new collection.
func (h *CollectionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.resolveCaller(w, r)
	if !ok {
		return
	}

	var input collection.CreateCollectionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}

	orgID := chi.URLParam(r, "organizationID")
	projectID := chi.URLParam(r, "projectID")

	col, err := h.createCollection.Execute(r.Context(), caller, orgID, projectID, input)
	if err != nil {
		h.writeCreateErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CollectionResponse{
		ID:             col.ID.String(),
		OrganizationID: col.OrganizationID.String(),
		ProjectID:      col.ProjectID.String(),
		Name:           col.Name,
		Description:    col.Description,
		CreatedBy:      col.CreatedBy.String(),
		CreatedAt:      col.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// resolveCaller loads the authenticated user. A valid token for an unknown
// user resolves to nil and surfaces as forbidden, not as a lookup detail.
func (h *CollectionsHandler) resolveCaller(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	userIDStr := middleware.UserIDFromContext(r.Context())
	if userIDStr == "" {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return nil, false
	}
	caller, err := h.users.GetByID(r.Context(), domain.NewUserID(userID))
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userIDStr).Msg("caller lookup failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return nil, false
	}
	return caller, true
}

func (h *CollectionsHandler) writeCreateErr(w http.ResponseWriter, err error) {
	var verr *collection.ValidationError
	switch {
	case errors.Is(err, domerrors.ErrAccessDenied):
		writeErr(w, http.StatusForbidden, "", "forbidden")
	case errors.Is(err, domerrors.ErrResourceNotFound):
		writeErr(w, http.StatusNotFound, "", domerrors.ErrResourceNotFound.Error())
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "payload validation failed",
			"code":   ErrCodeValidationFailed,
			"fields": verr.Fields,
		})
	default:
		h.log.Error().Err(err).Msg("create collection failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
	}
}
