package export_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"stocktracker/pkg/export"
	"stocktracker/pkg/market"

	"github.com/parquet-go/parquet-go"
)

func rows() []export.Row {
	return export.ChartRows("AAPL", []market.ChartPoint{
		{Timestamp: "2026-10-16", Price: 188.5, Volume: 1_200_000},
		{Timestamp: "2026-10-17", Price: 189.79, Volume: 2_400_000},
	})
}

func TestNewSaver(t *testing.T) {
	for _, f := range []string{"csv", " JSON ", "parquet"} {
		if _, err := export.NewSaver(f); err != nil {
			t.Errorf("%q: %v", f, err)
		}
	}
	if _, err := export.NewSaver("xlsx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestCSV(t *testing.T) {
	path, err := export.WriteRows(export.CSVSaver{}, t.TempDir(), "AAPL", rows())
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 3 || records[0][0] != "symbol" || records[2][2] != "189.79" {
		t.Errorf("unexpected csv: %v", records)
	}
}

func TestJSON(t *testing.T) {
	path, err := export.WriteRows(export.JSONSaver{}, t.TempDir(), "AAPL", rows())
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	b, _ := os.ReadFile(path)
	var got []export.Row
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[1].Date != "2026-10-17" {
		t.Errorf("unexpected rows: %+v", got)
	}
}

func TestParquet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path, err := export.WriteRows(export.ParquetSaver{}, dir, "AAPL", rows())
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := parquet.ReadFile[export.Row](path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].Symbol != "AAPL" || got[1].Volume != 2_400_000 {
		t.Errorf("unexpected rows: %+v", got)
	}
}
