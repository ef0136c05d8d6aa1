package cli

import (
	"context"
	"fmt"

	"stocktracker/internal/watchlist"
	"stocktracker/pkg/market"

	"github.com/spf13/cobra"
)

func newWatchlistCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage the durable watchlist",
	}

	cmd.AddCommand(quiet(&cobra.Command{
		Use:   "list",
		Short: "List watched symbols",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWatchlist(cmd.Context(), func(wl *watchlist.Store) error {
				fmt.Fprint(cmd.OutOrStdout(), renderWatchlist(wl.Entries()))
				return nil
			})
		},
	}))

	cmd.AddCommand(quiet(&cobra.Command{
		Use:   "add SYMBOL",
		Short: "Add a symbol to the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWatchlist(cmd.Context(), func(wl *watchlist.Store) error {
				return wl.Add(cmd.Context(), args[0])
			})
		},
	}))

	cmd.AddCommand(quiet(&cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Remove a symbol from the watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWatchlist(cmd.Context(), func(wl *watchlist.Store) error {
				return wl.Remove(cmd.Context(), args[0])
			})
		},
	}))

	cmd.AddCommand(quiet(&cobra.Command{
		Use:   "toggle SYMBOL",
		Short: "Add the symbol if absent, remove it otherwise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWatchlist(cmd.Context(), func(wl *watchlist.Store) error {
				added, err := wl.Toggle(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				verb := "removed"
				if added {
					verb = "added"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, market.NormalizeSymbol(args[0]))
				return nil
			})
		},
	}))

	return cmd
}

func (a *app) withWatchlist(ctx context.Context, fn func(*watchlist.Store) error) error {
	wl, st, err := a.openWatchlist(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(wl)
}
