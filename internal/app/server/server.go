// Package server wires handlers and middleware into the HTTP router.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/app/handler"
	"github.com/atinyakov/go-sentiment-service/internal/app/response"
	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
	"github.com/atinyakov/go-sentiment-service/internal/middleware"
	"github.com/atinyakov/go-sentiment-service/internal/models"
)

// Deps holds what the router needs besides the service.
type Deps struct {
	Logger *zap.Logger
	// Backend names the classifier in health reports.
	Backend string
	Health  handler.HealthReporter
	Metrics *metrics.Metrics
	// Gatherer serves /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
}

// Init builds the router.
func Init(svc service.SentimentServiceIface, deps Deps) *chi.Mux {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	post := handler.NewPost(svc, logger, deps.Metrics)
	get := handler.NewGet(deps.Backend, deps.Health, logger, deps.Metrics)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(logger))

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithGZIPResponse)

		r.Get(handler.PathRoot, get.Root)
		r.Get(handler.PathHealth, get.Health)

		r.With(recoverAs(logger, response.AnalysisError), gunzipOr(response.AnalysisError)).
			Post(handler.PathAnalyze, post.Analyze)
		r.With(recoverAs(logger, response.BatchError), gunzipOr(response.InvalidFormat)).
			Post(handler.PathBatch, post.Batch)
	})

	// promhttp compresses on its own
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, handler.PathMetrics, metrics.Handler(deps.Gatherer))
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "METHOD_NOT_ALLOWED")
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found", "NOT_FOUND")
	})

	return r
}

func recoverAs(logger *zap.Logger, code response.Code) func(http.Handler) http.Handler {
	return middleware.WithRecovery(logger, code.Status(), response.Failure(code))
}

// gunzipOr decompresses gzip request bodies and answers with code when the
// body is not gzip.
func gunzipOr(code response.Code) func(http.Handler) http.Handler {
	body, err := json.Marshal(response.Failure(code))
	if err != nil {
		panic(err)
	}
	return middleware.WithGZIPRequest(code.Status(), body)
}

func writeError(w http.ResponseWriter, status int, msg, code string) {
	body, _ := json.Marshal(models.ErrorResponse{Error: msg, Code: code})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
