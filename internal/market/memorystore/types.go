package memorystore

import (
	"context"
	"time"

	"stocktracker/pkg/market"
)

// Source supplies the seed collection. A real market feed can replace the built-in table.
type Source interface {
	Load(ctx context.Context) ([]market.StockRecord, error)
}

// Ticker produces the next generation of a collection without modifying its input.
type Ticker interface {
	Tick(records []market.StockRecord) []market.StockRecord
}

// Snapshot is an immutable view of the store at one version.
// Stocks must not be modified by receivers; it may be shared between subscribers.
type Snapshot struct {
	Version   uint64               `json:"version"`
	Stocks    []market.StockRecord `json:"stocks"`
	Loading   bool                 `json:"loading"`
	Error     string               `json:"error,omitempty"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// CancelFunc ends a subscription and closes its channel.
type CancelFunc func()
