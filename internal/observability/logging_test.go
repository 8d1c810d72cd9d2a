package observability

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type captureHandler struct {
	enabled bool
	handled int
	last    slog.Record
	attrs   []slog.Attr
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return h.enabled }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.handled++
	h.last = r
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q)=%v want=%v", in, got, want)
		}
	}
}

func TestTraceContextHandlerNoSpan(t *testing.T) {
	inner := &captureHandler{enabled: true}
	h := &traceContextHandler{next: inner}

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	if err := h.Handle(context.Background(), rec); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if inner.handled != 1 {
		t.Fatalf("expected inner handler invoked once, got %d", inner.handled)
	}
	inner.last.Attrs(func(a slog.Attr) bool {
		if a.Key == "trace_id" {
			t.Fatal("unexpected trace_id without span context")
		}
		return true
	})
}

func TestTraceContextHandlerAddsTraceFields(t *testing.T) {
	inner := &captureHandler{enabled: true}
	h := &traceContextHandler{next: inner}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
		SpanID:  trace.SpanID{1, 2, 3, 4, 5, 6, 7, 8},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	if err := h.Handle(ctx, rec); err != nil {
		t.Fatalf("handle: %v", err)
	}
	found := map[string]bool{}
	inner.last.Attrs(func(a slog.Attr) bool {
		found[a.Key] = true
		return true
	})
	if !found["trace_id"] || !found["span_id"] {
		t.Fatalf("expected trace fields, got %v", found)
	}
}

func TestNewLoggerByEnv(t *testing.T) {
	if NewLogger("production", "info") == nil {
		t.Fatal("expected logger")
	}
	if NewLogger("development", "debug") == nil {
		t.Fatal("expected logger")
	}
}
