package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type (
	// responseData is what the logging middleware learns about a response.
	responseData struct {
		status int
		size   int
	}

	// loggingResponseWriter records status and size of what passes through.
	loggingResponseWriter struct {
		http.ResponseWriter
		responseData *responseData
	}
)

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	if r.responseData.status == 0 {
		r.responseData.status = http.StatusOK
	}
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// WithRequestLogging logs method, url, status, size, duration and request
// id of every request.
func WithRequestLogging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			data := &responseData{}
			lw := loggingResponseWriter{
				ResponseWriter: w,
				responseData:   data,
			}

			next.ServeHTTP(&lw, r)

			log.Info("HTTP Request",
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Duration("duration", time.Since(start)),
				zap.Int("status", data.status),
				zap.Int("size", data.size),
				zap.String("request_id", RequestID(r.Context())),
			)
		})
	}
}
