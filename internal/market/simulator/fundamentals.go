package simulator

import "stocktracker/pkg/market"

// Metrics are mock fundamentals shown on the stock detail view.
type Metrics struct {
	PE            float64 `json:"pe"`
	EPS           float64 `json:"eps"`
	Dividend      float64 `json:"dividend"`
	DividendYield float64 `json:"dividendYield"`
	Beta          float64 `json:"beta"`
	Week52High    float64 `json:"week52High"`
	Week52Low     float64 `json:"week52Low"`
}

// Fundamentals draws a fresh set of mock metrics for r.
func Fundamentals(rnd Rand, r market.StockRecord) Metrics {
	return Metrics{
		PE:            market.Round2(rnd.Uniform(15, 40)),
		EPS:           market.Round2(r.Price / 20),
		Dividend:      market.Round2(rnd.Uniform(1.5, 4.5)),
		DividendYield: market.Round2(rnd.Uniform(1, 6)),
		Beta:          market.Round2(rnd.Uniform(0.8, 1.6)),
		Week52High:    market.Round2(r.Price * rnd.Uniform(1.1, 1.4)),
		Week52Low:     market.Round2(r.Price * rnd.Uniform(0.7, 0.9)),
	}
}
