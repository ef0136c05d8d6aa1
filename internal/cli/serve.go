package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"stocktracker/internal/market/simulator"
	"stocktracker/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the live dashboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a)
		},
	}
}

func runServe(ctx context.Context, a *app) error {
	wl, st, err := a.openWatchlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to open watchlist storage: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			a.log.Warn("failed to close watchlist storage", zap.Error(err))
		}
	}()

	rnd := simulator.NewRand(a.cfg.Market.Seed)
	store, err := a.newStockStore(ctx, rnd)
	if err != nil {
		return err
	}
	defer store.Stop()

	store.Start(ctx)

	srv := server.New(a.cfg.Server, store, wl, rnd, a.log)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	a.log.Info("shutdown complete")
	return nil
}
