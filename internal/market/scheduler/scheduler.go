package scheduler

import (
	"context"
	"sync"
	"time"
)

// Interval runs Run every Every on a single goroutine, so runs never overlap.
type Interval struct {
	Every time.Duration
	Run   func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches the loop. Calling Start on a running Interval is a no-op.
func (i *Interval) Start(ctx context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	i.cancel = cancel
	i.done = make(chan struct{})

	go i.loop(ctx, i.done)
}

// Stop cancels the loop and waits for the current run, if any, to return.
// It is safe to call Stop more than once or before Start.
func (i *Interval) Stop() {
	i.mu.Lock()
	cancel, done := i.cancel, i.done
	i.cancel, i.done = nil, nil
	i.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (i *Interval) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(i.Every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a tick may race with cancellation; prefer stopping
			if ctx.Err() != nil {
				return
			}
			i.Run(ctx)
		}
	}
}
