package simulator

import (
	"stocktracker/pkg/market"
)

const (
	// DefaultChartDays is the history length generated for each seed record.
	DefaultChartDays = 30

	chartVolatility = 0.02
	minChartVolume  = 1_000_000
	maxChartVolume  = 11_000_000
)

// GenerateChart produces days+1 daily points ending today via a compounding random walk
// starting at basePrice. The walk drifts without bound over long horizons.
func GenerateChart(rnd Rand, clock Clock, basePrice float64, days int) []market.ChartPoint {
	if days < 0 {
		days = 0
	}

	now := clock.Now()
	current := basePrice
	points := make([]market.ChartPoint, 0, days+1)

	for i := days; i >= 0; i-- {
		current *= 1 + rnd.Uniform(-chartVolatility, chartVolatility)

		points = append(points, market.ChartPoint{
			Timestamp: now.AddDate(0, 0, -i).Format(market.ChartDateLayout),
			Price:     market.Round2(current),
			Volume:    rnd.Int63Range(minChartVolume, maxChartVolume),
		})
	}
	return points
}
