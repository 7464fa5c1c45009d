package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRefresherRunsPeriodically(t *testing.T) {
	ran := make(chan struct{}, 1)
	r := NewRefresher(5*time.Millisecond, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}, zap.NewNop())

	r.Start()
	defer r.Stop()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("refresh never ran")
	}
}

func TestRefresherStopIsIdempotentBeforeStart(t *testing.T) {
	r := NewRefresher(time.Minute, func(ctx context.Context) error { return nil }, zap.NewNop())
	r.Stop() // must not panic
}

func TestRefresherStopWaitsForExit(t *testing.T) {
	r := NewRefresher(time.Hour, func(ctx context.Context) error { return nil }, zap.NewNop())
	r.Start()

	done := make(chan struct{})
	go func() {
		r.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}
}
