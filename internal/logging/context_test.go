package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextWith_Accumulates(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, Fields(ctx))
	assert.Equal(t, ctx, ContextWith(ctx))

	ctx1 := ContextWith(ctx, "request_id", "r-1")
	ctx2 := ContextWith(ctx1, "user_id", "user-123")

	assert.Equal(t, []any{"request_id", "r-1"}, Fields(ctx1), "parent is not modified")
	assert.Equal(t, []any{"request_id", "r-1", "user_id", "user-123"}, Fields(ctx2))
}

func TestSlogLogger_AppendsContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	ctx := ContextWith(context.Background(), "method", "/pokodex.Favorites/Add")

	log.Info(ctx, "rpc", "code", "OK")
	log.Debug(ctx, "filtered")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "rpc", line["msg"])
	assert.Equal(t, "OK", line["code"])
	assert.Equal(t, "/pokodex.Favorites/Add", line["method"])
}

func TestSlogLogger_NilContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	log.Info(nil, "no ctx")
	assert.Contains(t, buf.String(), "msg=\"no ctx\"")
}

func TestZapLogger_AppendsContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapLoggerFrom(zap.New(core)).With("module", "grpc")
	ctx := ContextWith(context.Background(), "user_id", "user-123")

	log.Warn(ctx, "slow rpc", "duration_ms", 1200)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "grpc", fields["module"])
	assert.Equal(t, "user-123", fields["user_id"])
	assert.EqualValues(t, 1200, fields["duration_ms"])
}
