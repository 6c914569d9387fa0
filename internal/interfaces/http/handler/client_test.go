package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	partnerapp "github.com/fatoora/backend/internal/application/partner"
	"github.com/fatoora/backend/internal/domain/partner"
	"github.com/fatoora/backend/internal/domain/shared"
	"github.com/fatoora/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientRepo struct {
	clients map[uuid.UUID]*partner.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[uuid.UUID]*partner.Client)}
}

func (r *fakeClientRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	c, ok := r.clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]partner.Client, error) {
	var out []partner.Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClientRepo) Save(_ context.Context, client *partner.Client) error {
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *fakeClientRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	c, ok := r.clients[id]
	if !ok || c.CompanyID != companyID {
		return shared.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *fakeClientRepo) Count(_ context.Context, companyID uuid.UUID, _ shared.Filter) (int64, error) {
	var n int64
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

type fakeClientCategoryRepo struct {
	categories map[uuid.UUID]*partner.ClientCategory
}

func newFakeClientCategoryRepo() *fakeClientCategoryRepo {
	return &fakeClientCategoryRepo{categories: make(map[uuid.UUID]*partner.ClientCategory)}
}

func (r *fakeClientCategoryRepo) FindByID(_ context.Context, companyID, id uuid.UUID) (*partner.ClientCategory, error) {
	c, ok := r.categories[id]
	if !ok || c.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClientCategoryRepo) FindAll(_ context.Context, companyID uuid.UUID, _ shared.Filter) ([]partner.ClientCategory, error) {
	var out []partner.ClientCategory
	for _, c := range r.categories {
		if c.CompanyID == companyID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeClientCategoryRepo) Save(_ context.Context, category *partner.ClientCategory) error {
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *fakeClientCategoryRepo) Delete(_ context.Context, companyID, id uuid.UUID) error {
	c, ok := r.categories[id]
	if !ok || c.CompanyID != companyID {
		return shared.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func newClientTestRouter() (*gin.Engine, *fakeClientRepo) {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	clients := newFakeClientRepo()
	service := partnerapp.NewService(clients, newFakeClientCategoryRepo())
	h := NewClientHandler(service)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequireCompany())
	r.POST("/partners/clients", h.Create)
	r.GET("/partners/clients", h.List)
	r.GET("/partners/clients/:id", h.GetByID)
	r.PUT("/partners/clients/:id", h.Update)
	r.DELETE("/partners/clients/:id", h.Delete)
	r.POST("/partners/clients/:id/deactivate", h.Deactivate)
	return r, clients
}

func doJSON(t *testing.T, r http.Handler, method, path string, companyID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CompanyHeader, companyID.String())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientHandlerCreate(t *testing.T) {
	t.Run("creates a client and returns 201", func(t *testing.T) {
		r, _ := newClientTestRouter()
		companyID := uuid.New()

		w := doJSON(t, r, http.MethodPost, "/partners/clients", companyID,
			`{"name":"Atlas Trading","email":"contact@atlas.ma","city":"Casablanca","ice":"001528572000024"}`)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool                      `json:"success"`
			Data    partnerapp.ClientResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Atlas Trading", resp.Data.Name)
		assert.True(t, resp.Data.Active)
	})

	t.Run("rejects an invalid email with 400", func(t *testing.T) {
		r, _ := newClientTestRouter()

		w := doJSON(t, r, http.MethodPost, "/partners/clients", uuid.New(),
			`{"name":"Atlas Trading","email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})

	t.Run("rejects a malformed ICE number with field details", func(t *testing.T) {
		r, _ := newClientTestRouter()

		w := doJSON(t, r, http.MethodPost, "/partners/clients", uuid.New(),
			`{"name":"Atlas Trading","ice":"12345"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"ice"`)
		assert.Contains(t, w.Body.String(), "15 digit ICE number")
	})

	t.Run("rejects a missing name with 400", func(t *testing.T) {
		r, _ := newClientTestRouter()

		w := doJSON(t, r, http.MethodPost, "/partners/clients", uuid.New(),
			`{"email":"contact@atlas.ma"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestClientHandlerGetByID(t *testing.T) {
	t.Run("returns 404 with the domain code for an unknown client", func(t *testing.T) {
		r, _ := newClientTestRouter()

		w := doJSON(t, r, http.MethodGet, "/partners/clients/"+uuid.NewString(), uuid.New(), "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("returns 400 for a malformed id", func(t *testing.T) {
		r, _ := newClientTestRouter()

		w := doJSON(t, r, http.MethodGet, "/partners/clients/not-a-uuid", uuid.New(), "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("does not expose another company's client", func(t *testing.T) {
		r, repo := newClientTestRouter()
		owner := uuid.New()

		client, err := partner.NewClient(owner, "Atlas Trading")
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), client))

		w := doJSON(t, r, http.MethodGet, "/partners/clients/"+client.ID.String(), uuid.New(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(t, r, http.MethodGet, "/partners/clients/"+client.ID.String(), owner, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestClientHandlerDeactivate(t *testing.T) {
	r, repo := newClientTestRouter()
	companyID := uuid.New()

	client, err := partner.NewClient(companyID, "Atlas Trading")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), client))

	w := doJSON(t, r, http.MethodPost, "/partners/clients/"+client.ID.String()+"/deactivate", companyID, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	stored, err := repo.FindByID(context.Background(), companyID, client.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}
