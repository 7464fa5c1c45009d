package state

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RefreshFunc re-fetches the cached data. It never fails the caller: fetch
// errors degrade to an empty data set inside the sync layer.
type RefreshFunc func(ctx context.Context) error

// Refresher re-runs a refresh on a fixed interval so views stay fresh even
// without user action. An overlapping user mutation wins: the periodic
// refresh carries an older version and AppState discards it.
type Refresher struct {
	interval time.Duration
	refresh  RefreshFunc
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewRefresher creates a periodic refresher
func NewRefresher(interval time.Duration, refresh RefreshFunc, logger *zap.Logger) *Refresher {
	return &Refresher{
		interval: interval,
		refresh:  refresh,
		logger:   logger.Named("refresher"),
	}
}

// Start begins the refresh loop in its own goroutine
func (r *Refresher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.refresh(ctx); err != nil {
					r.logger.Warn("periodic refresh failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop halts the refresh loop and waits for it to exit
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}
