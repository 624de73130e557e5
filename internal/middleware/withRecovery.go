package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// WithRecovery turns a panic in next into a JSON error response. body is
// marshalled and written with status; the panic value and stack are
// logged.
func WithRecovery(log *zap.Logger, status int, body any) func(http.Handler) http.Handler {
	payload, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic while handling request",
					zap.Any("panic", rec),
					zap.String("url", r.URL.String()),
					zap.String("request_id", RequestID(r.Context())),
					zap.ByteString("stack", debug.Stack()),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write(payload)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
