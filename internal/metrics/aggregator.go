package metrics

import (
	"context"
	"log/slog"
	"time"
)

// Pruner is the part of Repository the retention worker uses.
type Pruner interface {
	DeleteOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// RetentionWorker periodically deletes audit rows older than the retention
// window.
type RetentionWorker struct {
	repo      Pruner
	logger    *slog.Logger
	retention time.Duration
	interval  time.Duration
	done      chan struct{}
}

func NewRetentionWorker(repo Pruner, logger *slog.Logger, retention, interval time.Duration) *RetentionWorker {
	if interval == 0 {
		interval = time.Hour
	}

	return &RetentionWorker{
		repo:      repo,
		logger:    logger.With("component", "audit_retention"),
		retention: retention,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start prunes once immediately and then on every tick until ctx ends or
// Stop is called.
func (w *RetentionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("retention worker started",
		slog.Duration("retention", w.retention),
		slog.Duration("interval", w.interval),
	)

	w.prune(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("retention worker stopped")
			return
		case <-w.done:
			w.logger.Info("retention worker stopped")
			return
		case <-ticker.C:
			w.prune(ctx)
		}
	}
}

func (w *RetentionWorker) Stop() {
	close(w.done)
}

func (w *RetentionWorker) prune(ctx context.Context) {
	deleted, err := w.repo.DeleteOlderThan(ctx, w.retention)
	if err != nil {
		w.logger.Error("failed to prune audit rows", slog.String("error", err.Error()))
		return
	}
	if deleted > 0 {
		w.logger.Info("pruned audit rows", slog.Int64("count", deleted))
	}
}
