package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wayfinder/internal/logging"
)

func TestNew_JSONCarriesFieldsAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "debug", Format: "json", Output: &buf})

	ctx := logging.ContextWithRequestID(context.Background(), "req-1")
	log.With(logging.String("component", "router")).
		Info(ctx, "route computed", logging.Int("legs", 2), logging.Float("cost", 12.5), logging.Err(errors.New("boom")))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "route computed", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "router", rec["component"])
	assert.Equal(t, 2.0, rec["legs"])
	assert.Equal(t, 12.5, rec["cost"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "req-1", rec["request_id"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.Config{Level: "warn", Output: &buf})

	log.Info(context.Background(), "hidden")
	assert.Zero(t, buf.Len())

	log.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := logging.EnsureRequestID(context.Background())
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, logging.RequestIDFromContext(ctx))

	again, same := logging.EnsureRequestID(ctx)
	assert.Equal(t, id, same)
	assert.Equal(t, ctx, again)

	assert.Empty(t, logging.RequestIDFromContext(context.Background()))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(logging.Config{Output: &buf})

	assert.Equal(t, l, logging.FromContext(logging.ContextWithLogger(context.Background(), l), nil))
	assert.Equal(t, logging.Noop(), logging.FromContext(context.Background(), nil))
	assert.Equal(t, l, logging.FromContext(context.Background(), l))
}

func TestNoop(t *testing.T) {
	n := logging.Noop()
	assert.NotPanics(t, func() {
		n.With(logging.Bool("x", true)).Error(context.Background(), "dropped")
	})
}
