package interview

import (
	"context"
	"log/slog"
	"time"

	"github.com/entrevio-dev/entrevio/internal/store"
)

const sweepInterval = 5 * time.Minute

// EvictCallback is called with the id of each expired session the sweeper
// removes, so callers can tear down attached resources such as live sockets.
type EvictCallback func(sessionID string)

// StartSweeper runs a background goroutine that periodically removes
// sessions idle past ttl. It stops when ctx is canceled.
func StartSweeper(ctx context.Context, repo store.Repository, ttl time.Duration, onEvict EvictCallback) {
	ticker := time.NewTicker(sweepInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("session sweeper started", "interval", sweepInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				sweepExpiredSessions(ctx, repo, ttl, onEvict)
			case <-ctx.Done():
				slog.Info("session sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func sweepExpiredSessions(ctx context.Context, repo store.Repository, ttl time.Duration, onEvict EvictCallback) {
	deleted, err := repo.DeleteExpiredSessions(ctx, ttl)
	if err != nil {
		slog.Error("session sweeper failed to delete expired sessions", "error", err)
		return
	}
	if len(deleted) == 0 {
		return
	}

	for _, id := range deleted {
		if onEvict != nil {
			onEvict(id)
		}
	}
	slog.Info("session sweeper removed expired sessions", "count", len(deleted))
}
