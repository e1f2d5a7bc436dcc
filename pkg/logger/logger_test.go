package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("shown")
	entry := decode(t, &buf)
	assert.Equal(t, "shown", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	l := New(&bytes.Buffer{}, "verbose")
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestFromContext_PrefersContextLogger(t *testing.T) {
	var ctxBuf, fallbackBuf bytes.Buffer
	ctxLogger := New(&ctxBuf, "debug").With().Str("request_id", "r-1").Logger()
	ctx := ctxLogger.WithContext(context.Background())

	l := FromContext(ctx, New(&fallbackBuf, "debug"))
	l.Info().Msg("hello")

	assert.Zero(t, fallbackBuf.Len())
	assert.Equal(t, "r-1", decode(t, &ctxBuf)["request_id"])
}

func TestFromContext_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l := FromContext(ctx, New(&buf, "info"))
	l.Info().Msg("traced")

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", decode(t, &buf)["trace_id"])
}
