package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyTestRouter() (*gin.Engine, *uuid.UUID) {
	gin.SetMode(gin.TestMode)
	var seen uuid.UUID
	r := gin.New()
	r.Use(RequestID(), RequireCompany())
	r.GET("/probe", func(c *gin.Context) {
		id, ok := GetCompanyID(c)
		if ok {
			seen = id
		}
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequireCompany(t *testing.T) {
	t.Run("accepts a valid company header", func(t *testing.T) {
		r, seen := newCompanyTestRouter()
		companyID := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(CompanyHeader, companyID.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, companyID, *seen)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		r, _ := newCompanyTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		r, _ := newCompanyTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(CompanyHeader, "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects the nil uuid", func(t *testing.T) {
		r, _ := newCompanyTestRouter()

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(CompanyHeader, uuid.Nil.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("reuses the client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Request-ID", "client-id-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "client-id-1", w.Header().Get("X-Request-ID"))
	})

	t.Run("generates an id when none is supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}
