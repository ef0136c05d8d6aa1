package export

import "stocktracker/pkg/market"

// Row is one chart point of one symbol, flattened for file formats.
type Row struct {
	Symbol string  `json:"symbol" parquet:"symbol"`
	Date   string  `json:"date" parquet:"date"`
	Price  float64 `json:"price" parquet:"price"`
	Volume int64   `json:"volume" parquet:"volume"`
}

// ChartRows flattens a chart series, oldest first.
func ChartRows(symbol string, points []market.ChartPoint) []Row {
	rows := make([]Row, len(points))
	for i, p := range points {
		rows[i] = Row{Symbol: symbol, Date: p.Timestamp, Price: p.Price, Volume: p.Volume}
	}
	return rows
}
