package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func up() Pinger   { return PingerFunc(func(ctx context.Context) error { return nil }) }
func down() Pinger { return PingerFunc(func(ctx context.Context) error { return errors.New("down") }) }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		postgres Pinger
		redis    Pinger
		code     int
		status   string
		deps     map[string]string
	}{
		{"all up", up(), up(), http.StatusOK, "ok", map[string]string{"postgres": "ok", "redis": "ok"}},
		{"redis down", up(), down(), http.StatusOK, "degraded", map[string]string{"postgres": "ok", "redis": "down"}},
		{"postgres down", down(), up(), http.StatusServiceUnavailable, "error", map[string]string{"postgres": "down", "redis": "ok"}},
		{"memory store", nil, nil, http.StatusOK, "ok", map[string]string{"postgres": "disabled", "redis": "disabled"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.postgres, tt.redis, "test", "v1")
			rec := httptest.NewRecorder()
			h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			require.Equal(t, tt.code, rec.Code)
			resp := decodeBody[ReadinessResponse](t, rec)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.deps, resp.Dependencies)
			assert.Equal(t, "v1", resp.Version)
		})
	}
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(down(), down(), "test", "v1")
	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[LivenessResponse](t, rec).Status)
}
