package view

import (
	"cmp"
	"math"
	"slices"

	"stocktracker/pkg/market"
)

// Derive filters records and sorts the result descending by key. The sort is stable,
// so ties keep their collection order. records is not modified.
func Derive(records []market.StockRecord, filter market.Filter, key market.SortKey, watchlist map[string]struct{}) []market.StockRecord {
	out := make([]market.StockRecord, 0, len(records))
	for _, r := range records {
		if keep(r, filter, watchlist) {
			out = append(out, r)
		}
	}

	slices.SortStableFunc(out, func(a, b market.StockRecord) int {
		return cmp.Compare(sortValue(b, key), sortValue(a, key))
	})
	return out
}

func keep(r market.StockRecord, filter market.Filter, watchlist map[string]struct{}) bool {
	switch filter {
	case market.FilterGainers:
		return r.Change() > 0
	case market.FilterLosers:
		return r.Change() < 0
	case market.FilterWatchlist:
		_, ok := watchlist[r.Symbol]
		return ok
	default:
		return true
	}
}

// sortValue ranks by magnitude for change, so a -8% mover outranks a +3% one.
func sortValue(r market.StockRecord, key market.SortKey) float64 {
	switch key {
	case market.SortByPrice:
		return r.Price
	case market.SortByVolume:
		return float64(r.Volume)
	default:
		return math.Abs(r.ChangePercent())
	}
}
