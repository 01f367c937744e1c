package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(p Pinger) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/health", NewHealthHandler(p).Check)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		return w
	}

	w := serve(pingFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}))
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[HealthResponse](t, w)
	assert.Equal(t, "healthy", env.Data.Status)

	w = serve(pingFunc(func(context.Context) error { return errors.New("down") }))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	env = decode[HealthResponse](t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "unhealthy", env.Data.Status)
}
