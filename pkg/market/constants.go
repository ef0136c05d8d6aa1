package market

import (
	"errors"
	"fmt"
	"strings"
)

// Filter selects which records the dashboard shows.
type Filter string

// SortKey selects the descending order of the dashboard.
type SortKey string

const (
	FilterAll       Filter = "all"
	FilterGainers   Filter = "gainers"
	FilterLosers    Filter = "losers"
	FilterWatchlist Filter = "watchlist"

	SortByPrice  SortKey = "price"
	SortByChange SortKey = "change"
	SortByVolume SortKey = "volume"
)

// Defaults used when a request leaves the control unset.
const (
	DefaultFilter  = FilterAll
	DefaultSortKey = SortByChange
)

var (
	ErrInvalidFilter  = errors.New("invalid filter")
	ErrInvalidSortKey = errors.New("invalid sort key")
)

var validFilters = map[Filter]struct{}{
	FilterAll:       {},
	FilterGainers:   {},
	FilterLosers:    {},
	FilterWatchlist: {},
}

var validSortKeys = map[SortKey]struct{}{
	SortByPrice:  {},
	SortByChange: {},
	SortByVolume: {},
}

// IsValid checks if the Filter is one of the predefined values.
func (f Filter) IsValid() bool {
	_, ok := validFilters[f]
	return ok
}

// IsValid checks if the SortKey is one of the predefined values.
func (k SortKey) IsValid() bool {
	_, ok := validSortKeys[k]
	return ok
}

// ParseFilter parses s case-insensitively. An empty string yields DefaultFilter.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFilter, nil
	}
	f := Filter(s)
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}

// ParseSortKey parses s case-insensitively. An empty string yields DefaultSortKey.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortKey, nil
	}
	k := SortKey(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
	}
	return k, nil
}

// NormalizeSymbol trims and upper-cases a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
