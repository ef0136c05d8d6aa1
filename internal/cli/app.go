package cli

import (
	"context"

	"stocktracker/config"
	"stocktracker/internal/market/memorystore"
	"stocktracker/internal/market/seed"
	"stocktracker/internal/market/simulator"
	"stocktracker/internal/watchlist"
	"stocktracker/pkg/storage"
	"stocktracker/pkg/storage/kv"

	"go.uber.org/zap"
)

// app carries what every command needs once the root pre-run has loaded config.
type app struct {
	cfg *config.Config
	log *zap.Logger
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// newStockStore builds the seed collection and the live store over it.
func (a *app) newStockStore(ctx context.Context, rnd simulator.Rand) (*memorystore.Store, error) {
	clock := simulator.RealClock{}
	loader := seed.NewLoader(rnd, clock, a.cfg.Market.ChartDays, a.log)
	sim := simulator.NewPriceSimulator(rnd, clock)

	return memorystore.New(ctx, loader, sim, a.log,
		memorystore.WithTickInterval(a.cfg.Market.TickInterval),
		memorystore.WithRefreshLatency(a.cfg.Market.RefreshLatency),
		memorystore.WithClock(clock),
	)
}

// openWatchlist opens the configured backend and loads the watchlist from it.
// The caller closes the returned storage.
func (a *app) openWatchlist(ctx context.Context) (*watchlist.Store, kv.Storage, error) {
	st, err := storage.Open(ctx, a.cfg, a.log)
	if err != nil {
		return nil, nil, err
	}
	wl := watchlist.New(ctx, st, a.log, watchlist.WithKey(a.cfg.Watchlist.Key))
	return wl, st, nil
}
