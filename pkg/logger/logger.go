// Package logger configures zerolog for the storefront and hands out
// request-scoped loggers enriched with the active trace id.
package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// New builds a JSON logger writing to w (stdout when nil) at the named level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// FromContext returns the logger stored in ctx, falling back to fallback, and
// tags it with the trace id when a span is recording.
func FromContext(ctx context.Context, fallback zerolog.Logger) zerolog.Logger {
	l := fallback
	if ctxLogger := zerolog.Ctx(ctx); ctxLogger.GetLevel() != zerolog.Disabled {
		l = *ctxLogger
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		l = l.With().Str("trace_id", sc.TraceID().String()).Logger()
	}
	return l
}
