package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"stocktracker/internal/market/scheduler"
)

func TestInterval_RunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	iv := &scheduler.Interval{
		Every: 10 * time.Millisecond,
		Run:   func(ctx context.Context) { runs.Add(1) },
	}

	iv.Start(context.Background())
	time.Sleep(75 * time.Millisecond)
	iv.Stop()

	got := runs.Load()
	if got < 2 {
		t.Fatalf("expected at least 2 runs, got %d", got)
	}

	time.Sleep(40 * time.Millisecond)
	if after := runs.Load(); after != got {
		t.Errorf("ran after stop: %d -> %d", got, after)
	}
}

func TestInterval_FirstRunWaitsForInterval(t *testing.T) {
	var runs atomic.Int32
	iv := &scheduler.Interval{
		Every: 200 * time.Millisecond,
		Run:   func(ctx context.Context) { runs.Add(1) },
	}

	iv.Start(context.Background())
	time.Sleep(50 * time.Millisecond)
	iv.Stop()

	if got := runs.Load(); got != 0 {
		t.Errorf("ran %d times before the first interval elapsed", got)
	}
}

func TestInterval_StopIsIdempotent(t *testing.T) {
	iv := &scheduler.Interval{Every: time.Millisecond, Run: func(context.Context) {}}

	iv.Stop()
	iv.Start(context.Background())
	iv.Start(context.Background())
	iv.Stop()
	iv.Stop()
}

func TestInterval_StopWaitsForRun(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool

	iv := &scheduler.Interval{
		Every: time.Millisecond,
		Run: func(ctx context.Context) {
			select {
			case started <- struct{}{}:
			default:
			}
			time.Sleep(30 * time.Millisecond)
			finished.Store(true)
		},
	}

	iv.Start(context.Background())
	<-started
	iv.Stop()

	if !finished.Load() {
		t.Error("stop returned before the in-flight run finished")
	}
}
