package intercepters

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

type contextKey string

// RequestIDKey stores the request id in the call context.
const RequestIDKey contextKey = "request-id"

const requestIDMetadata = "x-request-id"

// maxRequestIDLength matches the limit applied to the HTTP header.
const maxRequestIDLength = 128

// RequestID returns the id stored by RequestIDInterceptor, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// RequestIDInterceptor takes the request id from x-request-id metadata or
// generates one when it is absent or longer than 128 bytes, stores it in the context and sends it back as a header.
func RequestIDInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	var id string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDMetadata); len(ids) > 0 {
			id = ids[0]
		}
	}
	if id == "" || len(id) > maxRequestIDLength {
		id = uuid.NewString()
	}

	// fails only outside a real server transport, as in unit tests
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDMetadata, id))

	return handler(context.WithValue(ctx, RequestIDKey, id), req)
}
