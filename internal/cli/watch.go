package cli

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"stocktracker/internal/market/view"
	"stocktracker/internal/server"
	"stocktracker/pkg/market"
	"stocktracker/pkg/stream"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const watchTopMovers = 5

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow a running server's live updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			if url == "" {
				url = defaultStreamURL(a.cfg.Server.Addr)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := stream.NewClient(url, a.log)
			out := cmd.OutOrStdout()
			client.SetMessageHandler(func(b []byte) {
				var msg server.Message
				if err := json.Unmarshal(b, &msg); err != nil {
					a.log.Warn("failed to decode stream message", zap.Error(err))
					return
				}
				if msg.Type == server.MessageTypeSnapshot {
					fmt.Fprintln(out, summarize(msg))
				}
			})

			if err := client.Connect(ctx); err != nil {
				return err
			}
			defer client.Close()

			if err := client.Listen(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("url", "", "stream URL (default derived from server.addr)")

	return quiet(cmd)
}

func defaultStreamURL(addr string) string {
	return "ws" + strings.TrimPrefix(defaultAPIURL(addr), "http") + "/ws"
}

// summarize renders one snapshot as a single line: time, breadth and top movers.
func summarize(msg server.Message) string {
	snap := msg.Data

	movers := view.Derive(snap.Stocks, market.FilterAll, market.SortByChange, nil)
	if len(movers) > watchTopMovers {
		movers = movers[:watchTopMovers]
	}
	labels := make([]string, len(movers))
	for i, r := range movers {
		labels[i] = changeLabel(r)
	}

	line := fmt.Sprintf("%s  %s  %s",
		mutedStyle.Render(snap.UpdatedAt.Local().Format("15:04:05")),
		renderOverview(view.Overview(snap.Stocks)),
		strings.Join(labels, " "),
	)
	if snap.Loading {
		line += "  " + mutedStyle.Render("refreshing...")
	}
	if snap.Error != "" {
		line += "  " + lossStyle.Render(snap.Error)
	}
	return line
}
