package intercepters_test

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/atinyakov/go-sentiment-service/internal/intercepters"
)

func TestInterceptorLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	il := intercepters.InterceptorLogger(zap.New(core))

	cases := []struct {
		level logging.Level
		want  zapcore.Level
	}{
		{logging.LevelDebug, zap.DebugLevel},
		{logging.LevelInfo, zap.InfoLevel},
		{logging.LevelWarn, zap.WarnLevel},
		{logging.LevelError, zap.ErrorLevel},
	}

	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			il.Log(context.Background(), c.level, "call done")

			entries := logs.TakeAll()
			require.Len(t, entries, 1)
			assert.Equal(t, c.want, entries[0].Level)
			assert.Equal(t, "call done", entries[0].Message)
		})
	}
}

func TestInterceptorLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	il := intercepters.InterceptorLogger(zap.New(core))

	il.Log(context.Background(), logging.LevelInfo, "finished call",
		"grpc.method", "Analyze",
		"grpc.code", 0,
		"grpc.ok", true,
		"grpc.peer", struct{ Addr string }{"bufconn"},
	)

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Analyze", fields["grpc.method"])
	assert.EqualValues(t, 0, fields["grpc.code"])
	assert.Equal(t, true, fields["grpc.ok"])
	assert.Contains(t, fields, "grpc.peer")
	assert.NotContains(t, fields, "request_id")
}

func TestInterceptorLogger_OddFieldsIgnored(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	il := intercepters.InterceptorLogger(zap.New(core))

	il.Log(context.Background(), logging.LevelInfo, "started call", "grpc.service", "sentiment.v1.SentimentService", "dangling")

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Context, 1)
}

func TestInterceptorLogger_RequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	il := intercepters.InterceptorLogger(zap.New(core))

	ctx := context.WithValue(context.Background(), intercepters.RequestIDKey, "req-9")
	il.Log(ctx, logging.LevelInfo, "finished call")

	assert.Equal(t, 1, logs.FilterField(zap.String("request_id", "req-9")).Len())
}

func TestInterceptorLogger_UnknownLevelPanics(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	il := intercepters.InterceptorLogger(zap.New(core))

	assert.Panics(t, func() {
		il.Log(context.Background(), logging.Level(999), "boom")
	})
}
