// Package source reads numeric attribute columns from CSV, XLSX, and
// shapefile inputs and screens them down to finite float samples.
package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Column is one attribute field read from a data source. Values holds the
// screened finite samples in record order; Invalid holds the zero-based
// record indexes whose value was missing or non-numeric, so a renderer can
// suppress those features.
type Column struct {
	Field   string
	Values  []float64
	Invalid []int
	Total   int
}

// ParseValue coerces a raw attribute string to a finite float. Empty strings,
// unparseable text, NaN, and ±Inf are all invalid.
func ParseValue(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Screen builds a Column from raw per-record strings.
func Screen(field string, raw []string) *Column {
	col := &Column{Field: field, Total: len(raw)}
	for i, r := range raw {
		v, ok := ParseValue(r)
		if !ok {
			col.Invalid = append(col.Invalid, i)
			continue
		}
		col.Values = append(col.Values, v)
	}
	return col
}

// Reader reads one named attribute column from an input file. Implementations
// exist for CSV, XLSX, and shapefile DBF attributes.
type Reader interface {
	Fields() ([]string, error)
	Column(field string) (*Column, error)
}

// Open picks a reader by file extension.
func Open(path string) (Reader, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return NewCSVReader(path), nil
	case strings.HasSuffix(lower, ".xlsx"):
		return NewXLSXReader(path), nil
	case strings.HasSuffix(lower, ".shp"):
		return NewShapefileReader(path), nil
	default:
		return nil, eris.Errorf("source: unsupported input %s (want .csv, .xlsx, or .shp)", path)
	}
}
