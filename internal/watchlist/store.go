package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"stocktracker/internal/market/simulator"
	"stocktracker/pkg/market"
	"stocktracker/pkg/storage/kv"

	"go.uber.org/zap"
)

// DefaultKey is the storage key holding the serialized watchlist.
const DefaultKey = "stockWatchlist"

var ErrEmptySymbol = errors.New("symbol must not be empty")

// Entry is one watched symbol.
type Entry struct {
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

// Store is the user's watchlist. Every effective mutation is written through to
// storage before it returns; a failed write leaves the list unchanged.
type Store struct {
	storage kv.Storage
	key     string
	clock   simulator.Clock
	logger  *zap.Logger

	mu      sync.RWMutex
	entries []Entry
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithClock(c simulator.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// New loads the persisted watchlist. Missing or unreadable data yields an empty list.
func New(ctx context.Context, storage kv.Storage, logger *zap.Logger, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		clock:   simulator.RealClock{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.entries = s.load(ctx)
	logger.Info("watchlist loaded", zap.String("key", s.key), zap.Int("count", len(s.entries)))
	return s
}

func (s *Store) load(ctx context.Context) []Entry {
	raw, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []Entry{}
	}
	if err != nil {
		s.logger.Warn("failed to read watchlist, starting empty", zap.Error(err))
		return []Entry{}
	}

	var stored []Entry
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("malformed watchlist data, starting empty", zap.Error(err))
		return []Entry{}
	}

	// drop blanks and duplicates a hand-edited document may contain
	entries := make([]Entry, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, e := range stored {
		e.Symbol = market.NormalizeSymbol(e.Symbol)
		if e.Symbol == "" {
			continue
		}
		if _, dup := seen[e.Symbol]; dup {
			continue
		}
		seen[e.Symbol] = struct{}{}
		entries = append(entries, e)
	}
	return entries
}

// Add appends symbol if it is not already watched.
func (s *Store) Add(ctx context.Context, symbol string) error {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(symbol) >= 0 {
		return nil
	}
	next := append(slices.Clone(s.entries), Entry{Symbol: symbol, AddedAt: s.clock.Now()})
	return s.commitLocked(ctx, next)
}

// Remove drops symbol if it is watched.
func (s *Store) Remove(ctx context.Context, symbol string) error {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(symbol)
	if i < 0 {
		return nil
	}
	next := slices.Delete(slices.Clone(s.entries), i, i+1)
	return s.commitLocked(ctx, next)
}

// Toggle removes symbol if watched and adds it otherwise. added reports which happened.
func (s *Store) Toggle(ctx context.Context, symbol string) (added bool, err error) {
	symbol = market.NormalizeSymbol(symbol)
	if symbol == "" {
		return false, ErrEmptySymbol
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next []Entry
	if i := s.indexLocked(symbol); i >= 0 {
		next = slices.Delete(slices.Clone(s.entries), i, i+1)
	} else {
		next = append(slices.Clone(s.entries), Entry{Symbol: symbol, AddedAt: s.clock.Now()})
		added = true
	}

	if err := s.commitLocked(ctx, next); err != nil {
		return false, err
	}
	return added, nil
}

// commitLocked persists next and installs it only once the write succeeded.
func (s *Store) commitLocked(ctx context.Context, next []Entry) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}
	if err := s.storage.Put(ctx, s.key, raw); err != nil {
		s.logger.Error("failed to persist watchlist", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("persist watchlist: %w", err)
	}
	s.entries = next
	return nil
}

func (s *Store) indexLocked(symbol string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.Symbol == symbol })
}

// Contains reports whether symbol is watched.
func (s *Store) Contains(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(market.NormalizeSymbol(symbol)) >= 0
}

// Symbols returns the watched symbols as a set.
func (s *Store) Symbols() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]struct{}, len(s.entries))
	for _, e := range s.entries {
		out[e.Symbol] = struct{}{}
	}
	return out
}

// Entries returns a copy of the watchlist in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}
