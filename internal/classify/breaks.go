// Package classify computes class break values for graduated choropleth symbology.
package classify

import (
	"math"
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"gonum.org/v1/gonum/stat"
)

// Method selects a break computation strategy.
type Method string

// Supported classification methods.
const (
	EqualIntervals    Method = "equal_intervals"
	Quantiles         Method = "quantiles"
	NaturalBreaks     Method = "natural_breaks"
	PrettyBreaks      Method = "pretty_breaks"
	StandardDeviation Method = "standard_deviation"
)

// methodAliases maps user-facing spellings to canonical methods.
var methodAliases = map[string]Method{
	"equal_intervals":        EqualIntervals,
	"equal-intervals":        EqualIntervals,
	"equal intervals":        EqualIntervals,
	"quantiles":              Quantiles,
	"natural_breaks":         NaturalBreaks,
	"natural-breaks":         NaturalBreaks,
	"natural breaks (jenks)": NaturalBreaks,
	"jenks":                  NaturalBreaks,
	"pretty_breaks":          PrettyBreaks,
	"pretty-breaks":          PrettyBreaks,
	"pretty breaks":          PrettyBreaks,
	"standard_deviation":     StandardDeviation,
	"standard-deviation":     StandardDeviation,
	"standard deviation":     StandardDeviation,
	"stddev":                 StandardDeviation,
}

// ParseMethod resolves a method name, accepting the canonical identifiers as
// well as the spellings used in saved style documents.
func ParseMethod(s string) (Method, error) {
	if m, ok := methodAliases[normalize(s)]; ok {
		return m, nil
	}
	return "", eris.Errorf("classify: unknown method %q", s)
}

func normalize(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b = append(b, c)
	}
	return string(b)
}

// Breaks computes numClasses+1 class boundaries for values using the given
// method. Values need not be sorted; the input slice is not modified. The
// returned breaks are sorted ascending with duplicates removed, so degenerate
// inputs (all values equal) yield fewer boundaries than requested. Callers
// widen zero-width intervals downstream.
func Breaks(values []float64, numClasses int, method Method) ([]float64, error) {
	if len(values) == 0 {
		return nil, eris.New("classify: no values")
	}
	if numClasses < 1 {
		return nil, eris.Errorf("classify: class count must be >= 1 (got %d)", numClasses)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	strat, err := Lookup(method)
	if err != nil {
		return nil, err
	}

	raw := strat.compute(sorted, numClasses)
	return limitBreaks(raw, numClasses), nil
}

// EffectiveClasses caps the requested class count when there are fewer valid
// samples than classes. Never returns less than 2.
func EffectiveClasses(sampleCount, requested int) int {
	if sampleCount >= requested {
		return requested
	}
	n := sampleCount
	if n < 2 {
		n = 2
	}
	return n
}

// equalIntervalBreaks divides [min, max] into numClasses equal-width intervals.
func equalIntervalBreaks(sorted []float64, numClasses int) []float64 {
	minVal := sorted[0]
	maxVal := sorted[len(sorted)-1]
	interval := (maxVal - minVal) / float64(numClasses)

	breaks := make([]float64, numClasses+1)
	for i := range breaks {
		breaks[i] = minVal + float64(i)*interval
	}
	return breaks
}

// quantileBreaks places boundaries at the i/numClasses quantiles using linear
// interpolation between order statistics. Gonum's CumulantKinds implement
// different quantile definitions, so the interpolation is done directly here.
func quantileBreaks(sorted []float64, numClasses int) []float64 {
	breaks := make([]float64, numClasses+1)
	for i := range breaks {
		p := float64(i) / float64(numClasses)
		breaks[i] = percentile(sorted, p)
	}
	return breaks
}

// percentile returns the p-quantile of sorted, p in [0, 1], linearly
// interpolating between adjacent order statistics.
func percentile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// prettyBreaks rounds the data range outward to multiples of a power-of-ten
// unit before dividing into equal intervals. The unit is derived from the
// decimal digit count of the truncated range, so ranges below 1 truncate to
// zero digits "0" and always use a unit of 1. Known quirk, kept for
// compatibility with existing styles.
func prettyBreaks(sorted []float64, numClasses int) []float64 {
	minVal := sorted[0]
	maxVal := sorted[len(sorted)-1]

	rangeVal := maxVal - minVal
	digits := len(strconv.Itoa(int(rangeVal)))
	unit := math.Pow(10, float64(digits-1))

	prettyMin := math.Trunc(minVal/unit) * unit
	prettyMax := (math.Trunc(maxVal/unit) + 1) * unit

	interval := (prettyMax - prettyMin) / float64(numClasses)
	breaks := make([]float64, numClasses+1)
	for i := range breaks {
		breaks[i] = prettyMin + float64(i)*interval
	}
	return breaks
}

// stdDevBreaks centers boundaries on the mean, spaced one population standard
// deviation apart. Breaks may extend past the data range; that is the point of
// the method.
func stdDevBreaks(sorted []float64, numClasses int) []float64 {
	mean := stat.Mean(sorted, nil)
	std := stat.PopStdDev(sorted, nil)

	breaks := make([]float64, numClasses+1)
	for i := range breaks {
		breaks[i] = mean + (float64(i)-float64(numClasses)/2)*std
	}
	sort.Float64s(breaks)
	return breaks
}

// limitBreaks deduplicates and sorts raw breaks, then downsamples by evenly
// spaced index selection when more than numClasses+1 unique boundaries remain.
func limitBreaks(raw []float64, numClasses int) []float64 {
	seen := make(map[float64]struct{}, len(raw))
	unique := make([]float64, 0, len(raw))
	for _, b := range raw {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		unique = append(unique, b)
	}
	sort.Float64s(unique)

	if len(unique) <= numClasses+1 {
		return unique
	}

	out := make([]float64, numClasses+1)
	for i := range out {
		idx := int(math.Round(float64(i) * float64(len(unique)-1) / float64(numClasses)))
		out[i] = unique[idx]
	}
	return out
}
