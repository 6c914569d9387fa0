package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidICE(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type payload struct {
		Name string `json:"name" binding:"required"`
		ICE  string `json:"ice" binding:"omitempty,ice"`
	}

	bind := func(body string) (payload, error) {
		var req payload
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		return req, c.ShouldBindJSON(&req)
	}

	t.Run("accepts a 15 digit ICE", func(t *testing.T) {
		_, err := bind(`{"name":"Atlas","ice":"001528572000024"}`)
		require.NoError(t, err)
	})

	t.Run("accepts an empty ICE", func(t *testing.T) {
		_, err := bind(`{"name":"Atlas"}`)
		require.NoError(t, err)
	})

	t.Run("rejects a short ICE", func(t *testing.T) {
		_, err := bind(`{"name":"Atlas","ice":"12345"}`)
		require.Error(t, err)
	})

	t.Run("rejects a non numeric ICE", func(t *testing.T) {
		_, err := bind(`{"name":"Atlas","ice":"00152857200002X"}`)
		require.Error(t, err)
	})
}

func TestFormatValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type payload struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"omitempty,email"`
	}

	var req payload
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
}
