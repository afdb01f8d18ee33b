package theme

import (
	"fmt"

	"github.com/sells-group/choropleth-cli/internal/palette"
)

// epsilon is the amount a zero-width interval is widened by so every class
// stays a valid half-open range.
const epsilon = 0.0001

// Range is one class interval with its assigned color and legend label.
type Range struct {
	Lower float64       `json:"lower"`
	Upper float64       `json:"upper"`
	Color palette.Color `json:"color"`
	Label string        `json:"label"`
}

// BuildRanges zips break boundaries and colors into class ranges. Zero-width
// intervals are widened upward by epsilon, with the widening carried forward
// so consecutive degenerate classes stay disjoint. Colors index with
// wraparound in case the caller supplied fewer colors than intervals.
func BuildRanges(breaks []float64, colors []palette.Color) []Range {
	if len(breaks) < 2 || len(colors) == 0 {
		return nil
	}

	ranges := make([]Range, 0, len(breaks)-1)
	for i := 0; i+1 < len(breaks); i++ {
		lower := breaks[i]
		if n := len(ranges); n > 0 && ranges[n-1].Upper > lower {
			lower = ranges[n-1].Upper
		}
		upper := breaks[i+1]
		if lower >= upper {
			upper = lower + epsilon
		}

		var label string
		if lower == upper {
			label = fmt.Sprintf("%.2f", lower)
		} else {
			label = fmt.Sprintf("%.2f - %.2f", lower, upper)
		}

		ranges = append(ranges, Range{
			Lower: lower,
			Upper: upper,
			Color: colors[i%len(colors)],
			Label: label,
		})
	}
	return ranges
}

// padBreaks extends a collapsed break list back to numClasses+1 boundaries by
// repeating the final value. Happens when deduplication removed boundaries
// (all-equal inputs); BuildRanges then widens each repeated boundary.
func padBreaks(breaks []float64, numClasses int) []float64 {
	if len(breaks) >= numClasses+1 {
		return breaks
	}
	out := make([]float64, 0, numClasses+1)
	out = append(out, breaks...)
	if len(out) == 0 {
		return out
	}
	last := out[len(out)-1]
	for len(out) < numClasses+1 {
		out = append(out, last)
	}
	return out
}
