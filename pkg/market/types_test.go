package market_test

import (
	"encoding/json"
	"errors"
	"testing"

	"stocktracker/pkg/market"
)

func TestChangeDerivedFromPrice(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		prevClose  float64
		wantChange float64
		wantPct    float64
	}{
		{"gain", 101.00, 98, 3.00, 3.06},
		{"loss", 142.56, 143.79, -1.23, -0.86},
		{"flat", 50, 50, 0, 0},
		{"zero previous close", 10, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := market.StockRecord{Price: tt.price, PreviousClose: tt.prevClose}
			if got := r.Change(); got != tt.wantChange {
				t.Errorf("Change() = %v, want %v", got, tt.wantChange)
			}
			if got := r.ChangePercent(); got != tt.wantPct {
				t.Errorf("ChangePercent() = %v, want %v", got, tt.wantPct)
			}
		})
	}
}

func TestMarshalIncludesDerivedFields(t *testing.T) {
	r := market.StockRecord{Symbol: "AAPL", Price: 101, PreviousClose: 98}

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["change"] != 3.0 {
		t.Errorf("change = %v, want 3", decoded["change"])
	}
	if decoded["changePercent"] != 3.06 {
		t.Errorf("changePercent = %v, want 3.06", decoded["changePercent"])
	}
	if decoded["symbol"] != "AAPL" {
		t.Errorf("symbol = %v, want AAPL", decoded["symbol"])
	}
	if _, ok := decoded["sector"]; ok {
		t.Error("empty sector should be omitted")
	}
}

func TestCloneDoesNotShareChart(t *testing.T) {
	r := market.StockRecord{ChartData: []market.ChartPoint{{Timestamp: "2026-10-17", Price: 1}}}
	cp := r.Clone()
	cp.ChartData[0].Price = 2

	if r.ChartData[0].Price != 1 {
		t.Error("clone shares chart data with the original")
	}
}

func TestParseFilterAndSortKey(t *testing.T) {
	if f, err := market.ParseFilter(" Gainers "); err != nil || f != market.FilterGainers {
		t.Errorf("ParseFilter = %v, %v", f, err)
	}
	if f, err := market.ParseFilter(""); err != nil || f != market.FilterAll {
		t.Errorf("empty filter = %v, %v", f, err)
	}
	if _, err := market.ParseFilter("movers"); !errors.Is(err, market.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}

	if k, err := market.ParseSortKey("VOLUME"); err != nil || k != market.SortByVolume {
		t.Errorf("ParseSortKey = %v, %v", k, err)
	}
	if k, err := market.ParseSortKey(""); err != nil || k != market.SortByChange {
		t.Errorf("empty sort = %v, %v", k, err)
	}
	if _, err := market.ParseSortKey("name"); !errors.Is(err, market.ErrInvalidSortKey) {
		t.Errorf("expected ErrInvalidSortKey, got %v", err)
	}
}
