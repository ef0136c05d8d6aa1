package memorystore_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"stocktracker/internal/market/memorystore"
	"stocktracker/internal/market/simulator"
	"stocktracker/internal/testutils"
	"stocktracker/pkg/market"

	"go.uber.org/zap"
)

func seedRows() []market.StockRecord {
	return testutils.Stocks(
		testutils.Row{Symbol: "AAPL", Price: 100, PreviousClose: 98, Volume: 10},
		testutils.Row{Symbol: "MSFT", Price: 200, PreviousClose: 210, Volume: 20},
		testutils.Row{Symbol: "KO", Price: 50, PreviousClose: 50, Volume: 30},
	)
}

func newStore(t *testing.T, src *testutils.MockSource, opts ...memorystore.Option) *memorystore.Store {
	t.Helper()

	clock := &testutils.MockClock{CurrentTime: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
	sim := simulator.NewPriceSimulator(&testutils.MockRand{ValFloat: 0.01}, clock)

	s, err := memorystore.New(context.Background(), src, sim, zap.NewNop(), opts...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(s.Stop)
	return s
}

func TestNew_SourceFailure(t *testing.T) {
	src := &testutils.MockSource{Err: errors.New("boom")}
	sim := simulator.NewPriceSimulator(simulator.NewRand(1), simulator.RealClock{})

	if _, err := memorystore.New(context.Background(), src, sim, zap.NewNop()); err == nil {
		t.Fatal("expected error when the source fails")
	}
}

func TestTick_ReplacesCollection(t *testing.T) {
	s := newStore(t, &testutils.MockSource{Records: seedRows()})

	before := s.Snapshot()
	s.Tick()
	after := s.Snapshot()

	if after.Version <= before.Version {
		t.Errorf("version did not advance: %d -> %d", before.Version, after.Version)
	}
	if len(after.Stocks) != 3 {
		t.Fatalf("expected 3 stocks, got %d", len(after.Stocks))
	}
	want := []string{"AAPL", "MSFT", "KO"}
	for i, sym := range want {
		if after.Stocks[i].Symbol != sym {
			t.Errorf("position %d: got %s, want %s", i, after.Stocks[i].Symbol, sym)
		}
	}
	if after.Stocks[0].Price != 101 {
		t.Errorf("AAPL price = %v, want 101", after.Stocks[0].Price)
	}
	if before.Stocks[0].Price != 100 {
		t.Error("earlier snapshot was modified by tick")
	}
}

func TestStartStop_TicksOnInterval(t *testing.T) {
	s := newStore(t, &testutils.MockSource{Records: seedRows()}, memorystore.WithTickInterval(10*time.Millisecond))

	s.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	v := s.Snapshot().Version
	if v < 3 {
		t.Fatalf("expected several ticks, version is %d", v)
	}

	time.Sleep(30 * time.Millisecond)
	if got := s.Snapshot().Version; got != v {
		t.Errorf("store ticked after stop: %d -> %d", v, got)
	}
}

func TestRefresh_ReloadsOriginalSeed(t *testing.T) {
	src := &testutils.MockSource{Records: seedRows()}
	s := newStore(t, src, memorystore.WithRefreshLatency(20*time.Millisecond))

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if p, _ := s.GetBySymbol("AAPL"); p.Price <= 101 {
		t.Fatalf("expected drift after ticks, got %v", p.Price)
	}

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()

	time.Sleep(5 * time.Millisecond)
	if !s.Snapshot().Loading {
		t.Error("expected loading during refresh")
	}

	if err := <-done; err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := s.Snapshot()
	if snap.Loading || snap.Error != "" {
		t.Errorf("unexpected state after refresh: loading=%v error=%q", snap.Loading, snap.Error)
	}
	if p, _ := s.GetBySymbol("AAPL"); p.Price != 101 {
		t.Errorf("AAPL price = %v, want 101 (seed ticked once)", p.Price)
	}
}

func TestRefresh_SourceFailureKeepsStocks(t *testing.T) {
	src := &testutils.MockSource{Records: seedRows()}
	s := newStore(t, src, memorystore.WithRefreshLatency(0))
	s.Tick()
	before := s.Stocks()

	src.SetErr(errors.New("upstream down"))
	err := s.Refresh(context.Background())
	if !errors.Is(err, memorystore.ErrRefreshFailed) {
		t.Fatalf("expected ErrRefreshFailed, got %v", err)
	}

	snap := s.Snapshot()
	if snap.Error != "failed to refresh stock data" {
		t.Errorf("error = %q", snap.Error)
	}
	if snap.Loading {
		t.Error("loading should be cleared after failure")
	}
	for i := range before {
		if snap.Stocks[i].Price != before[i].Price {
			t.Errorf("%s changed on failed refresh", before[i].Symbol)
		}
	}

	src.SetErr(nil)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if s.Snapshot().Error != "" {
		t.Error("successful refresh should clear the error")
	}
}

func TestRefresh_ContextCancelDiscardsResult(t *testing.T) {
	src := &testutils.MockSource{Records: seedRows()}
	s := newStore(t, src, memorystore.WithRefreshLatency(time.Hour))
	s.Tick()
	s.Tick()
	before := s.Stocks()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := s.Refresh(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if src.Calls != 1 {
		t.Errorf("source reloaded despite cancellation: %d calls", src.Calls)
	}

	snap := s.Snapshot()
	if snap.Loading {
		t.Error("loading should be cleared after cancellation")
	}
	if snap.Stocks[0].Price != before[0].Price {
		t.Error("cancelled refresh changed stocks")
	}
}

func TestStop_CancelsPendingRefresh(t *testing.T) {
	src := &testutils.MockSource{Records: seedRows()}
	s := newStore(t, src, memorystore.WithRefreshLatency(time.Hour), memorystore.WithTickInterval(time.Hour))
	s.Start(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	versionBefore := s.Snapshot().Version
	s.Stop()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("refresh not cancelled by stop")
	}

	if got := s.Snapshot().Version; got != versionBefore {
		t.Errorf("state written after stop: %d -> %d", versionBefore, got)
	}
	if err := s.Refresh(context.Background()); !errors.Is(err, context.Canceled) {
		t.Errorf("refresh on stopped store: %v", err)
	}
}

// blockingSource serves the seed once, then parks every later Load until release
// is closed, ignoring ctx like a source stuck in a slow call.
type blockingSource struct {
	seed    []market.StockRecord
	err     error
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSource) Load(ctx context.Context) ([]market.StockRecord, error) {
	if b.calls.Add(1) == 1 {
		return market.CloneAll(b.seed), nil
	}
	close(b.entered)
	<-b.release
	if b.err != nil {
		return nil, b.err
	}
	return market.CloneAll(b.seed), nil
}

func TestStop_DiscardsRefreshFinishingAfterStop(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"reload succeeds", nil},
		{"reload fails", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &blockingSource{
				seed:    seedRows(),
				err:     tt.err,
				entered: make(chan struct{}),
				release: make(chan struct{}),
			}
			sim := simulator.NewPriceSimulator(&testutils.MockRand{ValFloat: 0.01}, simulator.RealClock{})
			s, err := memorystore.New(context.Background(), src, sim, zap.NewNop(), memorystore.WithRefreshLatency(0))
			if err != nil {
				t.Fatalf("new store: %v", err)
			}

			done := make(chan error, 1)
			go func() { done <- s.Refresh(context.Background()) }()
			<-src.entered

			versionBefore := s.Snapshot().Version
			s.Stop()
			close(src.release)

			select {
			case err := <-done:
				if !errors.Is(err, context.Canceled) {
					t.Errorf("expected context.Canceled, got %v", err)
				}
			case <-time.After(time.Second):
				t.Fatal("refresh did not return")
			}

			snap := s.Snapshot()
			if snap.Version != versionBefore {
				t.Errorf("state written after stop: %d -> %d", versionBefore, snap.Version)
			}
			if snap.Error != "" {
				t.Errorf("error recorded after stop: %q", snap.Error)
			}
			if snap.Stocks[0].Price != 100 {
				t.Errorf("AAPL price = %v, want seed 100", snap.Stocks[0].Price)
			}
		})
	}
}

func TestGetBySymbol(t *testing.T) {
	s := newStore(t, &testutils.MockSource{Records: seedRows()})

	r, ok := s.GetBySymbol(" msft ")
	if !ok || r.Symbol != "MSFT" {
		t.Errorf("lookup = %+v, %v", r, ok)
	}
	if _, ok := s.GetBySymbol("ZZZZ"); ok {
		t.Error("unknown symbol should miss")
	}
}

func TestSubscribe_LatestWins(t *testing.T) {
	s := newStore(t, &testutils.MockSource{Records: seedRows()})

	ch, cancel := s.Subscribe()
	initial := <-ch
	if initial.Version != s.Snapshot().Version {
		t.Errorf("initial snapshot version %d", initial.Version)
	}

	s.Tick()
	s.Tick()
	s.Tick()

	got := <-ch
	if want := s.Snapshot().Version; got.Version != want {
		t.Errorf("expected latest version %d, got %d", want, got.Version)
	}

	cancel()
	cancel()
	if _, open := <-ch; open {
		t.Error("channel should be closed after cancel")
	}
}

func TestStop_ClosesSubscriptions(t *testing.T) {
	s := newStore(t, &testutils.MockSource{Records: seedRows()})

	ch, cancel := s.Subscribe()
	defer cancel()
	<-ch

	s.Stop()
	s.Stop()

	if _, open := <-ch; open {
		t.Error("subscription should be closed after stop")
	}

	late, _ := s.Subscribe()
	if _, open := <-late; open {
		t.Error("subscribing to a stopped store should yield a closed channel")
	}
}
