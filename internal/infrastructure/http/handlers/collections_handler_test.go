package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semjuel/instagram/internal/application/access"
	"github.com/semjuel/instagram/internal/application/collection"
	"github.com/semjuel/instagram/internal/domain"
	"github.com/semjuel/instagram/internal/feed"
	"github.com/semjuel/instagram/internal/infrastructure/http/middleware"
)

type memOrgRepo struct{ org *domain.Organization }

func (m *memOrgRepo) GetByID(_ context.Context, id domain.OrganizationID) (*domain.Organization, error) {
	if m.org != nil && m.org.ID == id {
		return m.org, nil
	}
	return nil, nil
}

type memProjectRepo struct{ project *domain.Project }

func (m *memProjectRepo) GetByID(_ context.Context, id domain.ProjectID) (*domain.Project, error) {
	if m.project != nil && m.project.ID == id {
		return m.project, nil
	}
	return nil, nil
}

type memUserRepo struct{ users map[domain.UserID]*domain.User }

func (m *memUserRepo) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	return m.users[id], nil
}

type memCollectionRepo struct{ created []*domain.Collection }

func (m *memCollectionRepo) Create(_ context.Context, col *domain.Collection) error {
	m.created = append(m.created, col)
	return nil
}

func (m *memCollectionRepo) GetByID(context.Context, domain.CollectionID) (*domain.Collection, error) {
	return nil, nil
}

type staticFeed struct{ body string }

func (s *staticFeed) RecentMedia(context.Context, string) ([]byte, error) {
	return []byte(s.body), nil
}

type recordingEnqueuer struct{ count int }

func (r *recordingEnqueuer) EnqueueFetchImages(context.Context, domain.CollectionID, map[string][]feed.Media) error {
	r.count++
	return nil
}

type handlerFixture struct {
	router  *chi.Mux
	cols    *memCollectionRepo
	org     *domain.Organization
	project *domain.Project
	caller  *domain.User
}

func newHandlerFixture(t *testing.T, feedBody string) *handlerFixture {
	t.Helper()

	org := &domain.Organization{ID: domain.NewOrganizationID(uuid.New()), Name: "acme"}
	project := &domain.Project{ID: domain.NewProjectID(uuid.New()), OrganizationID: org.ID, Name: "spring"}
	orgID := org.ID
	caller := &domain.User{
		ID:             domain.NewUserID(uuid.New()),
		OrganizationID: &orgID,
		Role:           domain.RoleMember,
	}

	cols := &memCollectionRepo{}
	users := &memUserRepo{users: map[domain.UserID]*domain.User{caller.ID: caller}}
	validator := access.NewValidator(&memOrgRepo{org: org}, &memProjectRepo{project: project}, cols)
	uc := collection.NewCreateCollection(validator, cols, &staticFeed{body: feedBody}, &recordingEnqueuer{}, zerolog.Nop())
	h := NewCollectionsHandler(uc, users, zerolog.Nop())

	r := chi.NewRouter()
	r.Post("/organizations/{organizationID}/projects/{projectID}/collections", h.Create)

	return &handlerFixture{router: r, cols: cols, org: org, project: project, caller: caller}
}

func (f *handlerFixture) do(t *testing.T, userID, orgID, projectID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/organizations/"+orgID+"/projects/"+projectID+"/collections", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCollectionCreated(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, f.caller.ID.String(), f.org.ID.String(), f.project.ID.String(),
		`{"name":"summer","description":"beach shots","token":"tok"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp CollectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "summer", resp.Name)
	assert.Equal(t, f.org.ID.String(), resp.OrganizationID)
	assert.Equal(t, f.project.ID.String(), resp.ProjectID)
	assert.Equal(t, f.caller.ID.String(), resp.CreatedBy)
	assert.NotEmpty(t, resp.ID)
	assert.NotContains(t, rec.Body.String(), "tok", "token must not leak into the response")

	require.Len(t, f.cols.created, 1)
}

func TestCreateCollectionUnknownCallerForbidden(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, uuid.NewString(), f.org.ID.String(), f.project.ID.String(), `{"name":"summer"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateCollectionMissingIdentityUnauthorized(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, "", f.org.ID.String(), f.project.ID.String(), `{"name":"summer"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCollectionForeignOrganizationForbidden(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, f.caller.ID.String(), uuid.NewString(), f.project.ID.String(), `{"name":"summer"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.cols.created)
}

func TestCreateCollectionUnknownProjectNotFound(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, f.caller.ID.String(), f.org.ID.String(), uuid.NewString(), `{"name":"summer"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCollectionValidationFailed(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, f.caller.ID.String(), f.org.ID.String(), f.project.ID.String(), `{"name":""}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ErrCodeValidationFailed, resp.Code)
	assert.Contains(t, resp.Fields, "name")
}

func TestCreateCollectionMalformedBody(t *testing.T) {
	f := newHandlerFixture(t, `{"data":[]}`)

	rec := f.do(t, f.caller.ID.String(), f.org.ID.String(), f.project.ID.String(), `{name`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCollectionFeedParseFailureStillCreated(t *testing.T) {
	f := newHandlerFixture(t, `{"meta":{"code":200}}`)

	rec := f.do(t, f.caller.ID.String(), f.org.ID.String(), f.project.ID.String(), `{"name":"summer","token":"tok"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, f.cols.created, 1)
}
