package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/models"
)

type staticHealth bool

func (s staticHealth) Healthy() bool { return bool(s) }

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		health HealthReporter
		want   string
	}{
		{"no reporter", nil, StatusHealthy},
		{"healthy", staticHealth(true), StatusHealthy},
		{"degraded", staticHealth(false), StatusDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewGet("vader", tt.health, zap.NewNop(), nil)

			rr := httptest.NewRecorder()
			h.Health(rr, httptest.NewRequest(http.MethodGet, PathHealth, nil))
			require.Equal(t, http.StatusOK, rr.Code)

			var got models.HealthStatus
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, "Ciryx Vibe", got.Service)
			assert.Equal(t, "1.0.0", got.Version)
			assert.Equal(t, "vader", got.Classifier)

			_, err := time.Parse(time.RFC3339Nano, got.Timestamp)
			assert.NoError(t, err)
		})
	}
}

func TestRoot(t *testing.T) {
	h := NewGet("vader", nil, zap.NewNop(), nil)

	rr := httptest.NewRecorder()
	h.Root(rr, httptest.NewRequest(http.MethodGet, PathRoot, nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got models.RootInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, "POST /analyze", got.Endpoints["analyze"])
	assert.Equal(t, "POST /batch", got.Endpoints["batch"])
	assert.Equal(t, "GET /health", got.Endpoints["health"])
	assert.Contains(t, got.Example, "analyze")

	batch, ok := got.Example["batch"].(map[string]any)
	require.True(t, ok)
	raw, err := json.Marshal(batch["body"])
	require.NoError(t, err)
	var body models.BatchRequest
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Len(t, body.Texts, 2)
}
