package snapshot

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RefreshFunc reloads one cached listing from its source of truth.
type RefreshFunc func(ctx context.Context) error

// Runner refreshes a listing snapshot on a fixed interval. It runs once
// immediately so the cache is warm before the first request, then ticks. A
// failed refresh is logged and retried on the next tick; the previous
// snapshot keeps serving meanwhile.
type Runner struct {
	name     string
	interval time.Duration
	refresh  RefreshFunc
	logger   *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewRunner(name string, interval time.Duration, refresh RefreshFunc, logger *zap.Logger) *Runner {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		name:     name,
		interval: interval,
		refresh:  refresh,
		logger:   logger,
	}
}

func (r *Runner) Start(ctx context.Context) {
	r.once.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		r.cancel = cancel
		r.done = make(chan struct{})

		go r.loop(runCtx)
	})
}

// Stop cancels the loop and waits for it to finish.
func (r *Runner) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	r.runOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	if err := r.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Warn("snapshot refresh failed", zap.String("snapshot", r.name), zap.Error(err))
	}
}
