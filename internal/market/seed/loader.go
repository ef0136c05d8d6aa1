package seed

import (
	"context"

	"stocktracker/internal/market/simulator"
	"stocktracker/pkg/market"

	"go.uber.org/zap"
)

// Loader serves the built-in instrument table. Chart series are generated once at
// construction and stay fixed for the lifetime of the Loader.
type Loader struct {
	records []market.StockRecord
	logger  *zap.Logger
}

// NewLoader builds the seed collection with a chartDays-long history per record.
func NewLoader(rnd simulator.Rand, clock simulator.Clock, chartDays int, logger *zap.Logger) *Loader {
	now := clock.Now()
	records := make([]market.StockRecord, len(table))
	for i, r := range table {
		r.ChartData = simulator.GenerateChart(rnd, clock, r.Price, chartDays)
		r.LastUpdated = now
		records[i] = r
	}

	logger.Info("seed collection built",
		zap.Int("count", len(records)),
		zap.Int("chart_days", chartDays),
	)
	return &Loader{records: records, logger: logger}
}

// Load returns a fresh copy of the seed collection.
func (l *Loader) Load(ctx context.Context) ([]market.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		l.logger.Warn("seed load interrupted", zap.Error(err))
		return nil, err
	}
	return market.CloneAll(l.records), nil
}

// Symbols lists the seed symbols in table order.
func Symbols() []string {
	out := make([]string, len(table))
	for i, r := range table {
		out[i] = r.Symbol
	}
	return out
}
