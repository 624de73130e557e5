// Package middleware holds the HTTP middleware shared by every route:
// request ids, request logging, gzip and panic recovery.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ContextKey is the type of context keys set by this package.
type ContextKey string

// RequestIDKey stores the request id in the request context.
const RequestIDKey ContextKey = "requestID"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

// InjectRequestID returns req with id stored in its context.
func InjectRequestID(req *http.Request, id string) *http.Request {
	ctx := context.WithValue(req.Context(), RequestIDKey, id)
	return req.WithContext(ctx)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRequestID reuses the X-Request-ID sent by the client or generates a
// new uuid, echoes it in the response and stores it in the context.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, InjectRequestID(r, id))
	})
}
