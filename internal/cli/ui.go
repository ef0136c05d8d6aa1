package cli

import (
	"fmt"
	"strconv"
	"strings"

	"stocktracker/internal/market/view"
	"stocktracker/internal/watchlist"
	"stocktracker/pkg/market"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	gainStyle = cellStyle.
			Foreground(lipgloss.Color("#10B981"))

	lossStyle = cellStyle.
			Foreground(lipgloss.Color("#EF4444"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

func renderQuotes(title string, page view.Page) string {
	rows := make([][]string, len(page.Items))
	for i, r := range page.Items {
		rows[i] = []string{
			r.Symbol,
			r.Name,
			formatMoney(r.Price),
			formatSigned(r.Change()),
			formatSigned(r.ChangePercent()) + "%",
			formatVolume(r.Volume),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("SYMBOL", "NAME", "PRICE", "CHANGE", "CHANGE %", "VOLUME").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col < 3 || row >= len(page.Items) {
				return cellStyle
			}
			switch c := page.Items[row].Change(); {
			case c > 0:
				return gainStyle
			case c < 0:
				return lossStyle
			default:
				return cellStyle
			}
		})

	footer := mutedStyle.Render(fmt.Sprintf("page %d of %d, %d stocks", page.Page, max(page.TotalPages, 1), page.Total))
	return titleStyle.Render(title) + "\n" + t.Render() + "\n" + footer + "\n"
}

func renderOverview(o view.MarketOverview) string {
	avg := formatSigned(o.AvgChangePercent) + "%"
	switch {
	case o.AvgChangePercent > 0:
		avg = gainStyle.Render(avg)
	case o.AvgChangePercent < 0:
		avg = lossStyle.Render(avg)
	}
	return fmt.Sprintf("%s %d  %s %d  %s %s  %s %s",
		gainStyle.Render("gainers"), o.Gainers,
		lossStyle.Render("losers"), o.Losers,
		mutedStyle.Render("volume"), formatVolume(o.TotalVolume),
		mutedStyle.Render("avg"), avg,
	)
}

func renderWatchlist(entries []watchlist.Entry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("watchlist is empty") + "\n"
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-6s %s\n", e.Symbol, mutedStyle.Render("added "+e.AddedAt.Local().Format("2006-01-02 15:04")))
	}
	return b.String()
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatSigned(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}

func formatVolume(n int64) string {
	switch {
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", float64(n)/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", float64(n)/1e6)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// changeLabel is used in the one-line mover summary of the watch command.
func changeLabel(r market.StockRecord) string {
	s := fmt.Sprintf("%s %s (%s%%)", r.Symbol, formatMoney(r.Price), formatSigned(r.ChangePercent()))
	switch c := r.Change(); {
	case c > 0:
		return gainStyle.Render(s)
	case c < 0:
		return lossStyle.Render(s)
	default:
		return cellStyle.Render(s)
	}
}
