package view

import "stocktracker/pkg/market"

// PageSize is the number of records shown per dashboard page.
const PageSize = 50

// Paginate returns the 1-based page of records. A page below 1 is treated as 1 and a
// page past the end is empty.
func Paginate(records []market.StockRecord, page, size int) []market.StockRecord {
	if size <= 0 {
		size = PageSize
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start >= len(records) {
		return []market.StockRecord{}
	}
	end := min(start+size, len(records))
	return records[start:end]
}

// PageCount returns how many pages n records fill.
func PageCount(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	return (n + size - 1) / size
}
