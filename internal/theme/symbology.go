package theme

// Symbol describes how a single class (or suppressed feature) is drawn.
// Opacity is 0.0-1.0.
type Symbol struct {
	FillColor    string  `json:"fill_color"`
	FillOpacity  float64 `json:"fill_opacity"`
	OutlineColor string  `json:"outline_color"`
	OutlineWidth float64 `json:"outline_width"`
}

// ClassSymbol pairs a class range with its drawing instructions.
type ClassSymbol struct {
	Range  Range  `json:"range"`
	Symbol Symbol `json:"symbol"`
}

// LabelSettings carries feature label styling. Placement is the renderer's
// decision.
type LabelSettings struct {
	Field       string `json:"field"`
	FontSize    int    `json:"font_size"`
	FontColor   string `json:"font_color"`
	Buffer      bool   `json:"buffer"`
	BufferColor string `json:"buffer_color"`
}

// Symbology is the renderer-facing output: one symbol per class, an invisible
// symbol for features whose attribute value was invalid, and optional labels.
type Symbology struct {
	Classes    []ClassSymbol  `json:"classes"`
	Suppressed Symbol         `json:"suppressed"`
	Labels     *LabelSettings `json:"labels,omitempty"`
}

// Symbology applies the style's border, opacity, and label settings to a
// computed classification.
func (s Style) Symbology(c *Classification) Symbology {
	opacity := float64(s.Opacity) / 100.0

	classes := make([]ClassSymbol, 0, len(c.Ranges))
	for _, r := range c.Ranges {
		classes = append(classes, ClassSymbol{
			Range: r,
			Symbol: Symbol{
				FillColor:    r.Color.Hex(),
				FillOpacity:  opacity,
				OutlineColor: s.BorderColor.Hex(),
				OutlineWidth: s.BorderWidth,
			},
		})
	}

	sym := Symbology{
		Classes: classes,
		// Invalid features are hidden, not drawn in a fallback color.
		Suppressed: Symbol{
			FillColor:    "#ffffff",
			FillOpacity:  0,
			OutlineColor: "#ffffff",
			OutlineWidth: 0,
		},
	}

	if s.ShowLabels {
		sym.Labels = &LabelSettings{
			Field:       s.LabelField,
			FontSize:    s.FontSize,
			FontColor:   s.FontColor.Hex(),
			Buffer:      s.BgEnabled,
			BufferColor: s.BgColor.Hex(),
		}
	}
	return sym
}
