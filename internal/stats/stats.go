// Package stats computes summary statistics for an attribute field.
package stats

import (
	"sort"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the field statistics shown before classification.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Range  float64 `json:"range"`
}

// Summarize computes statistics over screened values. The input slice is not
// modified.
func Summarize(values []float64) (*Summary, error) {
	if len(values) == 0 {
		return nil, eris.New("stats: no valid numeric data")
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	minVal := sorted[0]
	maxVal := sorted[len(sorted)-1]

	return &Summary{
		Count:  len(sorted),
		Min:    minVal,
		Max:    maxVal,
		Mean:   stat.Mean(sorted, nil),
		Median: median(sorted),
		StdDev: stat.PopStdDev(sorted, nil),
		Range:  maxVal - minVal,
	}, nil
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
