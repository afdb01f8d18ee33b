package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Method
		wantErr  bool
	}{
		{name: "canonical", input: "quantiles", expected: Quantiles},
		{name: "hyphenated", input: "equal-intervals", expected: EqualIntervals},
		{name: "spaced", input: "pretty breaks", expected: PrettyBreaks},
		{name: "jenks alias", input: "jenks", expected: NaturalBreaks},
		{name: "style document spelling", input: "Natural Breaks (Jenks)", expected: NaturalBreaks},
		{name: "stddev shorthand", input: "stddev", expected: StandardDeviation},
		{name: "mixed case", input: "Quantiles", expected: Quantiles},
		{name: "unknown", input: "fisher", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBreaksEqualIntervals(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	breaks, err := Breaks(values, 4, EqualIntervals)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3.25, 5.5, 7.75, 10}, breaks)
}

func TestBreaksQuantiles(t *testing.T) {
	values := []float64{15, 2, 8, 4, 23, 16, 42, 4}

	breaks, err := Breaks(values, 4, Quantiles)
	require.NoError(t, err)

	require.Len(t, breaks, 5)
	assert.Equal(t, 2.0, breaks[0])
	assert.Equal(t, 42.0, breaks[4])
	// Median of the sorted set via linear interpolation.
	assert.InDelta(t, 11.5, breaks[2], 1e-9)
	for i := 1; i < len(breaks); i++ {
		assert.GreaterOrEqual(t, breaks[i], breaks[i-1])
	}
}

func TestBreaksQuantilesUnsortedInputUntouched(t *testing.T) {
	values := []float64{9, 1, 5, 3, 7}

	_, err := Breaks(values, 2, Quantiles)
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 1, 5, 3, 7}, values)
}

func TestBreaksPretty(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		numClasses int
		expected   []float64
	}{
		{
			name:       "two digit range uses unit 10",
			values:     []float64{12, 87},
			numClasses: 3,
			// range 75 -> unit 10, pretty bounds [10, 90].
			expected: []float64{10, 110.0 / 3, 190.0 / 3, 90},
		},
		{
			name:       "sub-unit range uses unit 1",
			values:     []float64{0.2, 0.9},
			numClasses: 2,
			// range 0.7 truncates to 0, one digit, unit 1, bounds [0, 1].
			expected: []float64{0, 0.5, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaks, err := Breaks(tt.values, tt.numClasses, PrettyBreaks)
			require.NoError(t, err)
			require.Len(t, breaks, len(tt.expected))
			for i := range tt.expected {
				assert.InDelta(t, tt.expected[i], breaks[i], 1e-9)
			}
		})
	}
}

func TestBreaksStandardDeviation(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	breaks, err := Breaks(values, 4, StandardDeviation)
	require.NoError(t, err)
	require.Len(t, breaks, 5)

	// Population std of this set is exactly 2, mean is 5.
	assert.InDelta(t, 1.0, breaks[0], 1e-9)
	assert.InDelta(t, 5.0, breaks[2], 1e-9)
	assert.InDelta(t, 9.0, breaks[4], 1e-9)

	// Symmetric around the mean.
	for i := range breaks {
		assert.InDelta(t, breaks[i]+breaks[len(breaks)-1-i], 10.0, 1e-9)
	}
}

func TestBreaksDegenerate(t *testing.T) {
	breaks, err := Breaks([]float64{10, 10, 10, 10}, 3, Quantiles)
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, breaks)
}

func TestBreaksErrors(t *testing.T) {
	_, err := Breaks(nil, 5, Quantiles)
	assert.Error(t, err)

	_, err = Breaks([]float64{1, 2, 3}, 0, Quantiles)
	assert.Error(t, err)

	_, err = Breaks([]float64{1, 2, 3}, 3, Method("bogus"))
	assert.Error(t, err)
}

func TestEffectiveClasses(t *testing.T) {
	tests := []struct {
		name      string
		samples   int
		requested int
		expected  int
	}{
		{name: "enough samples", samples: 100, requested: 5, expected: 5},
		{name: "exactly enough", samples: 5, requested: 5, expected: 5},
		{name: "capped to samples", samples: 3, requested: 5, expected: 3},
		{name: "floor of two", samples: 1, requested: 5, expected: 2},
		{name: "zero samples", samples: 0, requested: 5, expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EffectiveClasses(tt.samples, tt.requested))
		})
	}
}

func TestLimitBreaksDownsamples(t *testing.T) {
	raw := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	got := limitBreaks(raw, 5)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, got)
}

func TestLimitBreaksDeduplicates(t *testing.T) {
	raw := []float64{3, 1, 1, 2, 3, 2}

	got := limitBreaks(raw, 5)
	assert.Equal(t, []float64{1, 2, 3}, got)
}
