package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/app/response"
	"github.com/atinyakov/go-sentiment-service/internal/app/service"
	"github.com/atinyakov/go-sentiment-service/internal/metrics"
	"github.com/atinyakov/go-sentiment-service/internal/middleware"
	"github.com/atinyakov/go-sentiment-service/internal/models"
)

// Endpoint paths, also used as metric labels.
const (
	PathRoot    = "/"
	PathHealth  = "/health"
	PathAnalyze = "/analyze"
	PathBatch   = "/batch"
	PathMetrics = "/metrics"
)

const codeOK = "OK"

// PostHandler serves the analysis endpoints.
type PostHandler struct {
	service  service.SentimentServiceIface
	composer *response.Composer
	logger   *zap.Logger
	out      jsonWriter
}

func NewPost(s service.SentimentServiceIface, l *zap.Logger, m *metrics.Metrics) *PostHandler {
	return &PostHandler{
		service:  s,
		composer: response.NewComposer(s.Model()),
		logger:   l,
		out:      jsonWriter{logger: l, metrics: m},
	}
}

// Analyze handles POST /analyze. A body that cannot be read as a text
// field is an ANALYSIS_ERROR; the endpoint has no format code.
func (h *PostHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	obj, err := decodeJSONObject(w, r)
	if err != nil {
		h.analyzeError(w, r, err)
		return
	}

	text, err := models.TextField(obj)
	if err != nil {
		h.analyzeError(w, r, err)
		return
	}

	result, err := h.service.Analyze(r.Context(), text)
	if err != nil {
		code := response.AnalyzeCode(err)
		if code == response.AnalysisError {
			h.logger.Error("error in analyze endpoint",
				zap.Error(err),
				zap.String("request_id", middleware.RequestID(r.Context())))
		}
		h.fail(w, PathAnalyze, code, response.Failure(code))
		return
	}

	data := response.AnalyzeData(*text, result)
	h.out.write(w, PathAnalyze, codeOK, http.StatusOK, h.composer.Success(data, middleware.RequestID(r.Context())))
}

// Batch handles POST /batch.
func (h *PostHandler) Batch(w http.ResponseWriter, r *http.Request) {
	obj, err := decodeJSONObject(w, r)
	if err != nil {
		h.logger.Info("malformed batch request", zap.Error(err))
		h.fail(w, PathBatch, response.InvalidFormat, response.Failure(response.InvalidFormat))
		return
	}

	items, err := models.TextsField(obj)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFormat) {
			h.fail(w, PathBatch, response.InvalidFormat, response.BatchFormatFailure())
			return
		}
		code := response.BatchCode(err)
		h.fail(w, PathBatch, code, response.Failure(code))
		return
	}

	outcome, err := h.service.AnalyzeBatch(r.Context(), items)
	if err != nil {
		code := response.BatchCode(err)
		if code == response.BatchError {
			h.logger.Error("error in batch endpoint",
				zap.Error(err),
				zap.String("request_id", middleware.RequestID(r.Context())))
		}
		h.fail(w, PathBatch, code, response.Failure(code))
		return
	}

	data := response.BatchData(outcome)
	h.out.write(w, PathBatch, codeOK, http.StatusOK, h.composer.Success(data, middleware.RequestID(r.Context())))
}

func (h *PostHandler) analyzeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("error in analyze endpoint",
		zap.Error(err),
		zap.String("request_id", middleware.RequestID(r.Context())))
	h.fail(w, PathAnalyze, response.AnalysisError, response.Failure(response.AnalysisError))
}

func (h *PostHandler) fail(w http.ResponseWriter, endpoint string, code response.Code, body models.ErrorResponse) {
	h.out.write(w, endpoint, string(code), code.Status(), body)
}
