package memorystore

import (
	"time"

	"stocktracker/internal/market/simulator"
)

const (
	DefaultTickInterval   = 5 * time.Second
	DefaultRefreshLatency = time.Second
)

type Option func(*Store)

// WithTickInterval sets the period of the recurring live update.
func WithTickInterval(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.tickInterval = d
		}
	}
}

// WithRefreshLatency sets the simulated network delay of Refresh. Zero disables it.
func WithRefreshLatency(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.refreshLatency = d
		}
	}
}

// WithClock overrides the clock stamping published snapshots.
func WithClock(c simulator.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}
