package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Saver writes rows to a file in one format.
type Saver interface {
	Save(rows []Row, path string) error
	Extension() string
}

// Formats lists the accepted values of NewSaver.
var Formats = []string{"csv", "json", "parquet"}

// NewSaver returns the saver for format (csv, json or parquet).
func NewSaver(format string) (Saver, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}, nil
	case "json":
		return JSONSaver{}, nil
	case "parquet":
		return ParquetSaver{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use: %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteRows saves rows as <dir>/<name>.<ext> and returns the written path.
func WriteRows(s Saver, dir, name string, rows []Row) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name+"."+s.Extension())
	if err := s.Save(rows, path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}
