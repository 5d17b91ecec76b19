package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	check := func(h *HealthHandler) (int, map[string]string) {
		r := newRouter()
		r.GET("/health", h.Check)
		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
		var body map[string]string
		decode(t, w, &body)
		return w.Code, body
	}

	t.Run("without redis", func(t *testing.T) {
		code, body := check(NewHealthHandler(env.db, nil))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "disabled", body["redis"])
	})

	t.Run("with redis", func(t *testing.T) {
		code, body := check(NewHealthHandler(env.db, client))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["redis"])
		assert.Equal(t, "ok", body["database"])
	})

	t.Run("redis down", func(t *testing.T) {
		mr.Close()
		code, body := check(NewHealthHandler(env.db, client))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "unavailable", body["redis"])
	})
}
