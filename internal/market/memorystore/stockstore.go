package memorystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"stocktracker/internal/market/scheduler"
	"stocktracker/internal/market/simulator"
	"stocktracker/pkg/market"

	"go.uber.org/zap"
)

// ErrRefreshFailed is recorded as the store error when the source cannot be reloaded.
var ErrRefreshFailed = errors.New("failed to refresh stock data")

// Store owns the live stock collection. The collection is replaced wholesale on every
// tick or refresh and every write is serialized by mu.
type Store struct {
	src    Source
	sim    Ticker
	clock  simulator.Clock
	logger *zap.Logger

	tickInterval   time.Duration
	refreshLatency time.Duration

	mu         sync.RWMutex
	stocks     []market.StockRecord
	index      map[string]int
	refreshing int
	lastErr    string
	version    uint64
	updatedAt  time.Time
	stopped    bool

	life     context.Context
	lifeStop context.CancelFunc
	interval *scheduler.Interval

	subMu  sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// New loads the seed collection from src and publishes it as the initial state.
func New(ctx context.Context, src Source, sim Ticker, logger *zap.Logger, opts ...Option) (*Store, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seed collection: %w", err)
	}

	s := &Store{
		src:            src,
		sim:            sim,
		clock:          simulator.RealClock{},
		logger:         logger,
		tickInterval:   DefaultTickInterval,
		refreshLatency: DefaultRefreshLatency,
		subs:           make(map[int]chan Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.life, s.lifeStop = context.WithCancel(context.Background())

	s.mu.Lock()
	s.replaceLocked(records)
	s.mu.Unlock()

	logger.Info("stock store initialized", zap.Int("count", len(records)))
	return s, nil
}

// Start begins the recurring tick. Calling Start twice, or after Stop, is a no-op.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.interval != nil {
		return
	}
	s.interval = &scheduler.Interval{
		Every: s.tickInterval,
		Run:   func(context.Context) { s.Tick() },
	}
	s.interval.Start(ctx)

	s.logger.Info("live updates started", zap.Duration("interval", s.tickInterval))
}

// Stop cancels the tick timer and any in-flight refresh, waits for the tick goroutine
// to exit and closes every subscription. It is idempotent.
func (s *Store) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.lifeStop()
	iv := s.interval
	s.mu.Unlock()

	if iv != nil {
		iv.Stop()
	}

	s.subMu.Lock()
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
	s.subMu.Unlock()

	s.logger.Info("stock store stopped")
}

// Tick applies one live update to the current collection.
func (s *Store) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.replaceLocked(s.sim.Tick(s.stocks))
}

// Refresh reloads the seed collection after the simulated latency, ticks it once and
// publishes it. On source failure the current stocks are kept and ErrRefreshFailed is
// recorded. If ctx is cancelled or the store stops first, the result is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return context.Canceled
	}
	s.refreshing++
	s.lastErr = ""
	s.publishLocked()
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	detach := context.AfterFunc(s.life, cancel)
	defer detach()

	records, err := s.reload(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshing--

	// the life cancellation runs asynchronously, so ctx may still be live here
	if s.stopped {
		s.logger.Debug("refresh discarded, store stopped")
		return context.Canceled
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.publishLocked()
		s.logger.Debug("refresh cancelled", zap.Error(ctxErr))
		return ctxErr
	}

	if err != nil {
		s.lastErr = ErrRefreshFailed.Error()
		s.publishLocked()
		s.logger.Error("refresh failed", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	s.replaceLocked(s.sim.Tick(records))
	s.logger.Info("stock data refreshed", zap.Int("count", len(records)))
	return nil
}

func (s *Store) reload(ctx context.Context) ([]market.StockRecord, error) {
	if s.refreshLatency > 0 {
		timer := time.NewTimer(s.refreshLatency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return s.src.Load(ctx)
}

// GetBySymbol looks up a record by symbol. A miss is not an error.
func (s *Store) GetBySymbol(symbol string) (market.StockRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[market.NormalizeSymbol(symbol)]
	if !ok {
		return market.StockRecord{}, false
	}
	return s.stocks[i].Clone(), true
}

// Stocks returns a copy of the current collection.
func (s *Store) Stocks() []market.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return market.CloneAll(s.stocks)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers for state changes. The channel holds at most one pending
// snapshot; a newer one replaces an unread older one. The current state is delivered
// first. Subscribing to a stopped store yields a closed channel.
func (s *Store) Subscribe() (<-chan Snapshot, CancelFunc) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch := make(chan Snapshot, 1)
	if s.stopped {
		close(ch)
		return ch, func() {}
	}
	ch <- s.snapshotLocked()

	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			if c, ok := s.subs[id]; ok {
				close(c)
				delete(s.subs, id)
			}
		})
	}
}

// replaceLocked installs a new generation of records and publishes it.
func (s *Store) replaceLocked(records []market.StockRecord) {
	index := make(map[string]int, len(records))
	for i, r := range records {
		index[r.Symbol] = i
	}
	s.stocks = records
	s.index = index
	s.publishLocked()
}

func (s *Store) publishLocked() {
	s.version++
	s.updatedAt = s.clock.Now()
	snap := s.snapshotLocked()

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		offer(ch, snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version:   s.version,
		Stocks:    market.CloneAll(s.stocks),
		Loading:   s.refreshing > 0,
		Error:     s.lastErr,
		UpdatedAt: s.updatedAt,
	}
}

// offer delivers snap without blocking, evicting an unread older snapshot.
func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
