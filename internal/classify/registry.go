package classify

import (
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// breakFunc computes raw breaks over sorted values. Output may contain
// duplicates or unordered entries; limitBreaks cleans it up.
type breakFunc func(sorted []float64, numClasses int) []float64

// strategy is a registered classification method. A strategy may be
// unavailable (its implementation missing in this build), in which case
// Lookup transparently resolves its fallback instead of failing at call time.
type strategy struct {
	method    Method
	compute   breakFunc
	available bool
	fallback  Method
}

var registry = map[Method]strategy{
	EqualIntervals:    {method: EqualIntervals, compute: equalIntervalBreaks, available: true},
	Quantiles:         {method: Quantiles, compute: quantileBreaks, available: true},
	NaturalBreaks:     {method: NaturalBreaks, compute: jenksBreaks, available: true, fallback: Quantiles},
	PrettyBreaks:      {method: PrettyBreaks, compute: prettyBreaks, available: true},
	StandardDeviation: {method: StandardDeviation, compute: stdDevBreaks, available: true},
}

// Lookup resolves a method to its strategy, following the fallback chain for
// unavailable strategies. An unregistered method is an error; an unavailable
// one is not.
func Lookup(method Method) (strategy, error) {
	s, ok := registry[method]
	if !ok {
		return strategy{}, eris.Errorf("classify: unknown method %q", method)
	}
	if !s.available {
		if s.fallback == "" {
			return strategy{}, eris.Errorf("classify: method %q unavailable with no fallback", method)
		}
		zap.L().Warn("classification method unavailable, using fallback",
			zap.String("method", string(method)),
			zap.String("fallback", string(s.fallback)),
		)
		return Lookup(s.fallback)
	}
	return s, nil
}

// Available returns the methods that can actually be selected in this build,
// sorted by name.
func Available() []Method {
	var out []Method
	for m, s := range registry {
		if s.available {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
