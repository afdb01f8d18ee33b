// Package theme assembles classification breaks and palette colors into
// labeled, symbolized class ranges for a choropleth renderer.
package theme

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/choropleth-cli/internal/classify"
	"github.com/sells-group/choropleth-cli/internal/palette"
)

// Style is the full set of user-facing thematic map settings. The JSON keys
// match the saved style documents written by earlier versions of the tool, so
// existing style files keep loading.
type Style struct {
	Method        string        `json:"classification_method" yaml:"classification_method"`
	NumClasses    int           `json:"num_classes" yaml:"num_classes"`
	ColorScheme   string        `json:"color_scheme" yaml:"color_scheme"`
	ReverseColors bool          `json:"reverse_colors" yaml:"reverse_colors"`
	MinColor      palette.Color `json:"min_color" yaml:"min_color"`
	MaxColor      palette.Color `json:"max_color" yaml:"max_color"`
	BorderColor   palette.Color `json:"border_color" yaml:"border_color"`
	BorderWidth   float64       `json:"border_width" yaml:"border_width"`
	Opacity       int           `json:"opacity" yaml:"opacity"`
	ShowLabels    bool          `json:"show_labels" yaml:"show_labels"`
	LabelField    string        `json:"label_field" yaml:"label_field"`
	FontSize      int           `json:"font_size" yaml:"font_size"`
	FontColor     palette.Color `json:"font_color" yaml:"font_color"`
	BgColor       palette.Color `json:"bg_color" yaml:"bg_color"`
	BgEnabled     bool          `json:"bg_enabled" yaml:"bg_enabled"`
}

// DefaultStyle returns the settings a fresh dialog would show: quantiles,
// five classes, the Blue scheme, light-to-dark blue custom anchors.
func DefaultStyle() Style {
	return Style{
		Method:        string(classify.Quantiles),
		NumClasses:    5,
		ColorScheme:   palette.SchemeBlue,
		ReverseColors: false,
		MinColor:      palette.RGB(173, 216, 230),
		MaxColor:      palette.RGB(8, 81, 156),
		BorderColor:   palette.RGB(50, 50, 50),
		BorderWidth:   0.2,
		Opacity:       100,
		ShowLabels:    true,
		FontSize:      10,
		FontColor:     palette.RGB(0, 0, 0),
		BgColor:       palette.RGB(255, 255, 255),
		BgEnabled:     true,
	}
}

// Validate checks that the style can drive a classification.
func (s Style) Validate() error {
	if _, err := classify.ParseMethod(s.Method); err != nil {
		return err
	}
	if s.NumClasses < 1 {
		return eris.Errorf("theme: num_classes must be >= 1 (got %d)", s.NumClasses)
	}
	if s.Opacity < 0 || s.Opacity > 100 {
		return eris.Errorf("theme: opacity must be 0-100 (got %d)", s.Opacity)
	}
	if s.BorderWidth < 0 {
		return eris.Errorf("theme: border_width must be >= 0 (got %g)", s.BorderWidth)
	}
	if s.ShowLabels && s.FontSize <= 0 {
		return eris.Errorf("theme: font_size must be positive (got %d)", s.FontSize)
	}
	return nil
}

// SaveFile writes the style as an indented JSON document.
func (s Style) SaveFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return eris.Wrap(err, "theme: marshal style")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "theme: write style %s", path)
	}
	return nil
}

// LoadFile reads a style JSON document. Missing keys keep their defaults so
// documents from older versions load cleanly.
func LoadFile(path string) (Style, error) {
	s := DefaultStyle()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, eris.Wrapf(err, "theme: read style %s", path)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, eris.Wrapf(err, "theme: parse style %s", path)
	}
	return s, nil
}
