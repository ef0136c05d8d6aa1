package export

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVSaver writes rows with a symbol,date,price,volume header.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(rows []Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"symbol", "date", "price", "volume"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			r.Symbol,
			r.Date,
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.FormatInt(r.Volume, 10),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
