package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "freelance-dashboard"

var (
	metricsOnce   sync.Once
	authEvents    metric.Int64Counter
	repoOps       metric.Int64Counter
	sessionsEnded metric.Int64Counter
)

func initMetrics() {
	meter := otel.Meter(meterName)
	authEvents, _ = meter.Int64Counter("auth_events_total",
		metric.WithDescription("Auth operations by outcome"))
	repoOps, _ = meter.Int64Counter("repository_operations_total",
		metric.WithDescription("Repository operations by entity and outcome"))
	sessionsEnded, _ = meter.Int64Counter("sessions_invalidated_total",
		metric.WithDescription("Session rows removed, by cause"))
}

// RecordAuthEvent counts a signup/login/refresh/logout outcome.
func RecordAuthEvent(ctx context.Context, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	if authEvents == nil {
		return
	}
	authEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	if repoOps == nil {
		return
	}
	repoOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordSessionsInvalidated counts removed session rows; cause is one of
// rotation, login_sweep, logout, expired.
func RecordSessionsInvalidated(ctx context.Context, cause string, count int64) {
	metricsOnce.Do(initMetrics)
	if sessionsEnded == nil || count <= 0 {
		return
	}
	sessionsEnded.Add(ctx, count, metric.WithAttributes(
		attribute.String("cause", cause),
	))
}
