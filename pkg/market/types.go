package market

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord is a snapshot of one tradable instrument.
// Change and ChangePercent are derived from Price and PreviousClose and are never stored.
type StockRecord struct {
	Symbol        string       `json:"symbol"`               // e.g., "AAPL"
	Name          string       `json:"name"`                 // e.g., "Apple Inc."
	Sector        string       `json:"sector,omitempty"`     // optional
	Price         float64      `json:"price"`                // last simulated price
	PreviousClose float64      `json:"previousClose"`        // close of the previous session
	DayHigh       float64      `json:"dayHigh"`              // session high (not revised by ticks)
	DayLow        float64      `json:"dayLow"`               // session low (not revised by ticks)
	Volume        int64        `json:"volume"`               // traded units
	MarketCap     float64      `json:"marketCap,omitempty"`  // optional
	ChartData     []ChartPoint `json:"chartData"`            // oldest first, fixed for the session
	LastUpdated   time.Time    `json:"lastUpdated"`          // time of the last price mutation
}

// ChartPoint is one day of a synthetic price history.
type ChartPoint struct {
	Timestamp string  `json:"timestamp"` // calendar date, "2006-01-02"
	Price     float64 `json:"price"`
	Volume    int64   `json:"volume"`
}

// ChartDateLayout is the layout of ChartPoint.Timestamp.
const ChartDateLayout = "2006-01-02"

// Change returns Price - PreviousClose rounded to 2 decimal places.
func (s StockRecord) Change() float64 {
	return s.change().Round(2).InexactFloat64()
}

// ChangePercent returns Change / PreviousClose * 100 rounded to 2 decimal places.
// A zero PreviousClose yields 0.
func (s StockRecord) ChangePercent() float64 {
	if s.PreviousClose == 0 {
		return 0
	}
	prev := decimal.NewFromFloat(s.PreviousClose)
	return s.change().Div(prev).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}

func (s StockRecord) change() decimal.Decimal {
	return decimal.NewFromFloat(s.Price).Sub(decimal.NewFromFloat(s.PreviousClose))
}

// Clone returns a copy that shares no slices with s.
func (s StockRecord) Clone() StockRecord {
	if s.ChartData != nil {
		cp := make([]ChartPoint, len(s.ChartData))
		copy(cp, s.ChartData)
		s.ChartData = cp
	}
	return s
}

// MarshalJSON adds the derived change fields to the encoded record.
func (s StockRecord) MarshalJSON() ([]byte, error) {
	type plain StockRecord
	return json.Marshal(struct {
		plain
		Change        float64 `json:"change"`
		ChangePercent float64 `json:"changePercent"`
	}{
		plain:         plain(s),
		Change:        s.Change(),
		ChangePercent: s.ChangePercent(),
	})
}

// Round2 rounds v to 2 decimal places (half away from zero).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// CloneAll deep-copies a collection of records.
func CloneAll(records []StockRecord) []StockRecord {
	if records == nil {
		return nil
	}
	out := make([]StockRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
