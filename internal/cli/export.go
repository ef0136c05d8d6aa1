package cli

import (
	"fmt"
	"strings"

	"stocktracker/internal/market/simulator"
	"stocktracker/pkg/export"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export SYMBOL",
		Short: "Write a symbol's chart series to a file",
		Long: `Write the generated chart series of a symbol as csv, json or parquet.
Example: stocktracker export AAPL --format parquet --out ./exports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			dir, _ := cmd.Flags().GetString("out")

			saver, err := export.NewSaver(format)
			if err != nil {
				return err
			}

			store, err := a.newStockStore(cmd.Context(), simulator.NewRand(a.cfg.Market.Seed))
			if err != nil {
				return err
			}
			defer store.Stop()

			rec, ok := store.GetBySymbol(args[0])
			if !ok {
				return fmt.Errorf("unknown symbol %q", strings.ToUpper(args[0]))
			}

			path, err := export.WriteRows(saver, dir, rec.Symbol, export.ChartRows(rec.Symbol, rec.ChartData))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d points to %s\n", len(rec.ChartData), path)
			return nil
		},
	}

	cmd.Flags().String("format", "csv", "csv, json or parquet")
	cmd.Flags().String("out", ".", "output directory")

	return quiet(cmd)
}
