package cli

import (
	"fmt"

	"stocktracker/config"
	"stocktracker/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

// quietAnnotation marks one-shot commands whose stdout is the product; their logging
// is raised to warn so it does not interleave with output.
const quietAnnotation = "quiet"

var version = "dev"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "stocktracker",
		Short: "Live stock dashboard backend",
		Long: `stocktracker simulates a live stock feed, keeps a durable watchlist and serves
the filtered, sorted and paginated dashboard view over HTTP and WebSocket.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			return a.init(path, cmd.Annotations[quietAnnotation] == "true")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newQuotesCmd(a))
	rootCmd.AddCommand(newWatchlistCmd(a))
	rootCmd.AddCommand(newWatchCmd(a))
	rootCmd.AddCommand(newRefreshCmd(a))
	rootCmd.AddCommand(newExportCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Configuration file path")

	return rootCmd
}

func (a *app) init(path string, quiet bool) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if quiet {
		var lvl zapcore.Level
		if err := lvl.UnmarshalText([]byte(cfg.Log.Level)); err == nil && lvl < zapcore.WarnLevel {
			cfg.Log.Level = "warn"
		}
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	a.cfg = cfg
	a.log = log
	return nil
}

func quiet(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[quietAnnotation] = "true"
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// skip config loading
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stocktracker %s\n", version)
		},
	}
}
