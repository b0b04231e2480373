package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Record is one flat row, keyed by column name. Values come straight from the
// decoder: strings for CSV fields, and whatever encoding/json produced for
// JSON input (nil, bool, float64, string).
type Record map[string]any

// Dataset is a fully materialized tabular input. Columns carries the column
// order explicitly (CSV header order, or key order of the first JSON record)
// because Record is a map and map iteration order is not reproducible.
type Dataset struct {
	FileName string
	Columns  []string
	Rows     []Record
}

// Format selects the decoder for raw file content.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned when the caller asks for a format the
// decoding layer does not know about.
var ErrUnsupportedFormat = fmt.Errorf("unsupported format")

// DetectFormat maps a file path to a Format based on its extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
