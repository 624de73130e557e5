package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/app/response"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
	"github.com/atinyakov/go-sentiment-service/internal/models"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// HealthReporter tells whether the classifier backend is reachable.
type HealthReporter interface {
	Healthy() bool
}

// GetHandler serves the informational endpoints.
type GetHandler struct {
	backend  string
	health   HealthReporter
	composer *response.Composer
	out      jsonWriter
}

// NewGet builds the handler. backend names the classifier in health
// reports; a nil health reporter means always healthy.
func NewGet(backend string, health HealthReporter, l *zap.Logger, m *metrics.Metrics) *GetHandler {
	return &GetHandler{
		backend:  backend,
		health:   health,
		composer: response.NewComposer(""),
		out:      jsonWriter{logger: l, metrics: m},
	}
}

// Root handles GET / with a short description of the API.
func (h *GetHandler) Root(w http.ResponseWriter, r *http.Request) {
	info := models.RootInfo{
		Service:     response.ServiceName + " Sentiment Analysis API",
		Version:     response.Version,
		Description: "AI-powered sentiment analysis for business applications",
		Endpoints: map[string]string{
			"health":  "GET " + PathHealth,
			"analyze": "POST " + PathAnalyze,
			"batch":   "POST " + PathBatch,
			"metrics": "GET " + PathMetrics,
		},
		Example: map[string]any{
			"analyze": map[string]any{
				"url":    PathAnalyze,
				"method": http.MethodPost,
				"body":   models.AnalyzeRequest{Text: "I love this product!"},
			},
			"batch": map[string]any{
				"url":    PathBatch,
				"method": http.MethodPost,
				"body":   models.BatchRequest{Texts: []string{"Great service", "Terrible support"}},
			},
		},
	}

	h.out.write(w, PathRoot, codeOK, http.StatusOK, info)
}

// Health handles GET /health.
func (h *GetHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := StatusHealthy
	if h.health != nil && !h.health.Healthy() {
		status = StatusDegraded
	}

	h.out.write(w, PathHealth, status, http.StatusOK, models.HealthStatus{
		Status:     status,
		Service:    response.ServiceName,
		Version:    response.Version,
		Timestamp:  h.composer.Timestamp(),
		Classifier: h.backend,
	})
}
