package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/abfall50/freelance-dashboard/internal/observability"
	"github.com/abfall50/freelance-dashboard/internal/repository"
)

// SessionReaper periodically removes session rows whose expiry has
// passed. Expired rows are also dropped inline when a refresh call
// trips over one; the reaper catches the rest.
type SessionReaper struct {
	sessions repository.SessionRepository
	logger   *slog.Logger
	interval time.Duration
}

func NewSessionReaper(sessions repository.SessionRepository, logger *slog.Logger, interval time.Duration) *SessionReaper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionReaper{sessions: sessions, logger: logger, interval: interval}
}

func (r *SessionReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reap(ctx)
		}
	}
}

func (r *SessionReaper) reap(ctx context.Context) {
	n, err := r.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		r.logger.WarnContext(ctx, "session reap failed", "error", err)
		return
	}
	if n > 0 {
		observability.RecordSessionsInvalidated(ctx, "expired", n)
		r.logger.InfoContext(ctx, "reaped expired sessions", "count", n)
	}
}
