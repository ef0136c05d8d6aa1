package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"stocktracker/internal/market/simulator"
	"stocktracker/internal/market/view"
	"stocktracker/pkg/apiclient"
	"stocktracker/pkg/market"

	"github.com/spf13/cobra"
)

const apiTimeout = 10 * time.Second

func newQuotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Print one page of the dashboard view",
		Long: `Print one page of the filtered and sorted dashboard view.
Without --url a local simulated feed is used; with --url the page is read from a running server.
Example: stocktracker quotes --filter losers --sort volume`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filterFlag, _ := cmd.Flags().GetString("filter")
			sortFlag, _ := cmd.Flags().GetString("sort")
			page, _ := cmd.Flags().GetInt("page")
			url, _ := cmd.Flags().GetString("url")

			filter, err := market.ParseFilter(filterFlag)
			if err != nil {
				return err
			}
			key, err := market.ParseSortKey(sortFlag)
			if err != nil {
				return err
			}

			q := view.NewQuery()
			q.SetFilter(filter)
			q.SetSort(key)
			q.SetPage(page)

			var (
				overview view.MarketOverview
				result   view.Page
			)
			if url != "" {
				overview, result, err = remoteQuotes(cmd.Context(), url, q)
			} else {
				overview, result, err = a.localQuotes(cmd.Context(), q)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderOverview(overview))
			fmt.Fprint(out, renderQuotes(fmt.Sprintf("%s by %s", q.Filter, q.Sort), result))
			return nil
		},
	}

	cmd.Flags().String("filter", string(market.DefaultFilter), "all, gainers, losers or watchlist")
	cmd.Flags().String("sort", string(market.DefaultSortKey), "price, change or volume")
	cmd.Flags().Int("page", 1, "1-based page number")
	cmd.Flags().String("url", "", "base URL of a running server, e.g. http://localhost:8080")

	return quiet(cmd)
}

func (a *app) localQuotes(ctx context.Context, q view.Query) (view.MarketOverview, view.Page, error) {
	store, err := a.newStockStore(ctx, simulator.NewRand(a.cfg.Market.Seed))
	if err != nil {
		return view.MarketOverview{}, view.Page{}, err
	}
	defer store.Stop()

	var watched map[string]struct{}
	if q.Filter == market.FilterWatchlist {
		wl, st, err := a.openWatchlist(ctx)
		if err != nil {
			return view.MarketOverview{}, view.Page{}, err
		}
		defer st.Close()
		watched = wl.Symbols()
	}

	stocks := store.Stocks()
	return view.Overview(stocks), q.Apply(stocks, watched), nil
}

func remoteQuotes(ctx context.Context, url string, q view.Query) (view.MarketOverview, view.Page, error) {
	client := apiclient.NewRESTClient(url, apiTimeout)

	overview, err := client.GetOverview(ctx)
	if err != nil {
		return view.MarketOverview{}, view.Page{}, err
	}
	page, err := client.GetStocks(ctx, q)
	if err != nil {
		return view.MarketOverview{}, view.Page{}, err
	}
	return overview, page.Page, nil
}

func newRefreshCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Ask a running server to reload its stock data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			if url == "" {
				url = defaultAPIURL(a.cfg.Server.Addr)
			}

			client := apiclient.NewRESTClient(url, apiTimeout)
			if err := client.Refresh(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "refreshed %s\n", url)
			return nil
		},
	}

	cmd.Flags().String("url", "", "base URL of a running server (default derived from server.addr)")

	return quiet(cmd)
}

func defaultAPIURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
