package simulator

import (
	"stocktracker/pkg/market"
)

// tickVolatility bounds the relative move of a single live update.
const tickVolatility = 0.005

// PriceSimulator perturbs live prices of a collection.
type PriceSimulator struct {
	rand  Rand
	clock Clock
}

func NewPriceSimulator(rnd Rand, clock Clock) *PriceSimulator {
	return &PriceSimulator{rand: rnd, clock: clock}
}

// Tick returns a new collection, same length and order as records, with every price
// moved by at most 0.5% and LastUpdated set to now. The input is not modified.
// Day high/low, volume and chart history pass through unchanged.
func (p *PriceSimulator) Tick(records []market.StockRecord) []market.StockRecord {
	now := p.clock.Now()
	out := make([]market.StockRecord, len(records))

	for i, r := range records {
		next := r.Clone()
		noise := p.rand.Uniform(-tickVolatility, tickVolatility)
		next.Price = market.Round2(r.Price * (1 + noise))
		next.LastUpdated = now
		out[i] = next
	}
	return out
}
