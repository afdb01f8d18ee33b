package theme

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth-cli/internal/classify"
	"github.com/sells-group/choropleth-cli/internal/palette"
)

// Classification is the result of running the full break/color pipeline over
// one attribute field.
type Classification struct {
	Field            string            `json:"field,omitempty"`
	Method           classify.Method   `json:"method"`
	RequestedClasses int               `json:"requested_classes"`
	Classes          int               `json:"classes"`
	Breaks           []float64         `json:"breaks"`
	Ranges           []Range           `json:"ranges"`
	ValidCount       int               `json:"valid_count"`
	InvalidCount     int               `json:"invalid_count"`
}

// Build runs the classification pipeline: cap the class count to the sample
// count, compute breaks, resolve colors, assemble ranges. The context is
// checked between the coarse stages; on cancellation nothing partial is
// returned. Values must already be screened to finite floats.
func Build(ctx context.Context, values []float64, style Style) (*Classification, error) {
	if len(values) == 0 {
		return nil, eris.New("theme: no valid numeric data")
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "theme: canceled")
	}

	method, err := classify.ParseMethod(style.Method)
	if err != nil {
		return nil, err
	}

	numClasses := classify.EffectiveClasses(len(values), style.NumClasses)
	if numClasses != style.NumClasses {
		zap.L().Warn("reduced class count to valid sample count",
			zap.Int("requested", style.NumClasses),
			zap.Int("effective", numClasses),
			zap.Int("valid_values", len(values)),
		)
	}

	breaks, err := classify.Breaks(values, numClasses, method)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "theme: canceled")
	}

	colors := palette.ForScheme(style.ColorScheme, numClasses, style.ReverseColors, style.MinColor, style.MaxColor)
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "theme: canceled")
	}

	ranges := BuildRanges(padBreaks(breaks, numClasses), colors)

	return &Classification{
		Method:           method,
		RequestedClasses: style.NumClasses,
		Classes:          numClasses,
		Breaks:           breaks,
		Ranges:           ranges,
		ValidCount:       len(values),
	}, nil
}
