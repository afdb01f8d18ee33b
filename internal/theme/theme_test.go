package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth-cli/internal/classify"
	"github.com/sells-group/choropleth-cli/internal/palette"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func TestBuild(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	style := DefaultStyle()
	style.Method = "equal_intervals"
	style.NumClasses = 4

	cls, err := Build(context.Background(), values, style)
	require.NoError(t, err)

	assert.Equal(t, classify.EqualIntervals, cls.Method)
	assert.Equal(t, 4, cls.Classes)
	assert.Equal(t, 4, cls.RequestedClasses)
	assert.Equal(t, 10, cls.ValidCount)
	assert.Equal(t, []float64{1, 3.25, 5.5, 7.75, 10}, cls.Breaks)

	require.Len(t, cls.Ranges, 4)
	assert.Equal(t, 1.0, cls.Ranges[0].Lower)
	assert.Equal(t, 10.0, cls.Ranges[3].Upper)
	assert.Equal(t, "1.00 - 3.25", cls.Ranges[0].Label)
	// Four classes from the nine Blue anchors: first four, light to dark.
	assert.Equal(t, palette.RGB(247, 251, 255), cls.Ranges[0].Color)
	assert.Equal(t, palette.RGB(158, 202, 225), cls.Ranges[3].Color)
}

func TestBuildCapsClassCount(t *testing.T) {
	style := DefaultStyle()
	style.NumClasses = 5

	cls, err := Build(context.Background(), []float64{3, 1, 2}, style)
	require.NoError(t, err)

	assert.Equal(t, 5, cls.RequestedClasses)
	assert.Equal(t, 3, cls.Classes)
	assert.Len(t, cls.Ranges, 3)
}

func TestBuildAllEqualValues(t *testing.T) {
	style := DefaultStyle()
	style.NumClasses = 3

	cls, err := Build(context.Background(), []float64{10, 10, 10, 10}, style)
	require.NoError(t, err)

	// Breaks collapse to the one distinct value but every class still gets a
	// disjoint non-empty interval.
	assert.Equal(t, []float64{10}, cls.Breaks)
	require.Len(t, cls.Ranges, 3)
	for i, r := range cls.Ranges {
		assert.Less(t, r.Lower, r.Upper, "range %d must have positive width", i)
		if i > 0 {
			assert.Equal(t, cls.Ranges[i-1].Upper, r.Lower)
		}
	}
	assert.InDelta(t, 10.0003, cls.Ranges[2].Upper, 1e-9)
}

func TestBuildErrors(t *testing.T) {
	style := DefaultStyle()

	_, err := Build(context.Background(), nil, style)
	assert.Error(t, err)

	bad := style
	bad.Method = "fisher"
	_, err = Build(context.Background(), []float64{1, 2, 3}, bad)
	assert.Error(t, err)

	neg := style
	neg.Opacity = 150
	_, err = Build(context.Background(), []float64{1, 2, 3}, neg)
	assert.Error(t, err)
}

func TestBuildCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, []float64{1, 2, 3}, DefaultStyle())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildRanges(t *testing.T) {
	colors := []palette.Color{
		palette.RGB(10, 10, 10),
		palette.RGB(20, 20, 20),
	}

	ranges := BuildRanges([]float64{0, 5, 10, 15}, colors)
	require.Len(t, ranges, 3)

	assert.Equal(t, "0.00 - 5.00", ranges[0].Label)
	assert.Equal(t, colors[0], ranges[0].Color)
	assert.Equal(t, colors[1], ranges[1].Color)
	// Wraparound when colors run short.
	assert.Equal(t, colors[0], ranges[2].Color)
}

func TestBuildRangesWidensZeroWidth(t *testing.T) {
	colors := []palette.Color{palette.RGB(0, 0, 0)}

	ranges := BuildRanges([]float64{5, 5, 5}, colors)
	require.Len(t, ranges, 2)

	assert.Equal(t, 5.0, ranges[0].Lower)
	assert.InDelta(t, 5.0001, ranges[0].Upper, 1e-12)
	assert.Equal(t, ranges[0].Upper, ranges[1].Lower)
	assert.InDelta(t, 5.0002, ranges[1].Upper, 1e-12)
}

func TestBuildRangesDegenerateInput(t *testing.T) {
	colors := []palette.Color{palette.RGB(0, 0, 0)}

	assert.Nil(t, BuildRanges([]float64{1}, colors))
	assert.Nil(t, BuildRanges([]float64{1, 2}, nil))
}

func TestPadBreaks(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3, 4}, padBreaks([]float64{1, 2, 3, 4}, 3))
	assert.Equal(t, []float64{10, 10, 10, 10}, padBreaks([]float64{10}, 3))
	assert.Empty(t, padBreaks(nil, 3))
}

func TestStyleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Style)
		wantErr bool
	}{
		{name: "defaults valid", mutate: func(*Style) {}},
		{name: "unknown method", mutate: func(s *Style) { s.Method = "mystery" }, wantErr: true},
		{name: "zero classes", mutate: func(s *Style) { s.NumClasses = 0 }, wantErr: true},
		{name: "opacity out of range", mutate: func(s *Style) { s.Opacity = 101 }, wantErr: true},
		{name: "negative border", mutate: func(s *Style) { s.BorderWidth = -1 }, wantErr: true},
		{name: "labels need font size", mutate: func(s *Style) { s.FontSize = 0 }, wantErr: true},
		{name: "no labels no font size", mutate: func(s *Style) { s.ShowLabels = false; s.FontSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStyleFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")

	s := DefaultStyle()
	s.Method = "jenks"
	s.NumClasses = 7
	s.ColorScheme = palette.SchemeHeat
	s.ReverseColors = true
	require.NoError(t, s.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadFilePartialDocumentKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")
	doc := []byte(`{"classification_method": "pretty_breaks", "num_classes": 8}`)
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "pretty_breaks", loaded.Method)
	assert.Equal(t, 8, loaded.NumClasses)
	// Untouched keys fall back to defaults.
	assert.Equal(t, palette.SchemeBlue, loaded.ColorScheme)
	assert.Equal(t, 100, loaded.Opacity)
	assert.True(t, loaded.ShowLabels)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestSymbology(t *testing.T) {
	style := DefaultStyle()
	style.Opacity = 80
	style.LabelField = "NAME"

	cls, err := Build(context.Background(), []float64{1, 2, 3, 4, 5, 6}, style)
	require.NoError(t, err)

	sym := style.Symbology(cls)
	require.Len(t, sym.Classes, 5)

	first := sym.Classes[0].Symbol
	assert.Equal(t, cls.Ranges[0].Color.Hex(), first.FillColor)
	assert.InDelta(t, 0.8, first.FillOpacity, 1e-12)
	assert.Equal(t, "#323232", first.OutlineColor)
	assert.Equal(t, 0.2, first.OutlineWidth)

	assert.Equal(t, 0.0, sym.Suppressed.FillOpacity)
	assert.Equal(t, 0.0, sym.Suppressed.OutlineWidth)

	require.NotNil(t, sym.Labels)
	assert.Equal(t, "NAME", sym.Labels.Field)
	assert.Equal(t, 10, sym.Labels.FontSize)
	assert.True(t, sym.Labels.Buffer)
}

func TestSymbologyLabelsOff(t *testing.T) {
	style := DefaultStyle()
	style.ShowLabels = false

	cls, err := Build(context.Background(), []float64{1, 2, 3, 4, 5, 6}, style)
	require.NoError(t, err)

	assert.Nil(t, style.Symbology(cls).Labels)
}
