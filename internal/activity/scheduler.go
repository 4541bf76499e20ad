package activity

// scheduler.go runs the retention job that keeps the activity log bounded.
//
// The job runs once on start and then every CheckInterval until the context
// is cancelled. Failures are logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig controls the purge job.
type RetentionConfig struct {
	MaxAge        time.Duration // Entries older than this are deleted
	CheckInterval time.Duration // How often to run
}

// StartRetentionScheduler purges old entries until ctx is cancelled.
// Intended to run in its own goroutine.
func StartRetentionScheduler(ctx context.Context, store Store, cfg RetentionConfig) {
	slog.Info("activity retention scheduler started",
		"max_age", cfg.MaxAge,
		"check_interval", cfg.CheckInterval,
	)

	runRetentionJob(ctx, store, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("activity retention scheduler stopped")
			return
		case <-ticker.C:
			runRetentionJob(ctx, store, cfg)
		}
	}
}

// runRetentionJob performs one purge cycle.
func runRetentionJob(ctx context.Context, store Store, cfg RetentionConfig) {
	start := time.Now()

	purged, err := store.PurgeOlderThan(ctx, cfg.MaxAge)
	if err != nil {
		slog.Error("activity purge failed", "error", err)
		return
	}

	slog.Info("purged activity entries",
		"entries_purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
