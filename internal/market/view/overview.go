package view

import (
	"strings"

	"stocktracker/pkg/market"
)

// DefaultSearchLimit caps the number of search hits.
const DefaultSearchLimit = 8

// MarketOverview summarizes the whole collection.
type MarketOverview struct {
	Count            int     `json:"count"`
	Gainers          int     `json:"gainers"`
	Losers           int     `json:"losers"`
	Unchanged        int     `json:"unchanged"`
	GainersShare     float64 `json:"gainersShare"` // percent of Count
	LosersShare      float64 `json:"losersShare"`  // percent of Count
	TotalVolume      int64   `json:"totalVolume"`
	AvgChangePercent float64 `json:"avgChangePercent"`
}

func Overview(records []market.StockRecord) MarketOverview {
	o := MarketOverview{Count: len(records)}
	if len(records) == 0 {
		return o
	}

	var pctSum float64
	for _, r := range records {
		switch c := r.Change(); {
		case c > 0:
			o.Gainers++
		case c < 0:
			o.Losers++
		default:
			o.Unchanged++
		}
		o.TotalVolume += r.Volume
		pctSum += r.ChangePercent()
	}

	n := float64(len(records))
	o.GainersShare = market.Round2(float64(o.Gainers) / n * 100)
	o.LosersShare = market.Round2(float64(o.Losers) / n * 100)
	o.AvgChangePercent = market.Round2(pctSum / n)
	return o
}

// Search matches term case-insensitively against symbol or name, in collection order.
// A blank term matches nothing.
func Search(records []market.StockRecord, term string, limit int) []market.StockRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return []market.StockRecord{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	hits := make([]market.StockRecord, 0, limit)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Symbol), term) || strings.Contains(strings.ToLower(r.Name), term) {
			hits = append(hits, r)
			if len(hits) == limit {
				break
			}
		}
	}
	return hits
}
