package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/choropleth-cli/internal/classify"
	"github.com/sells-group/choropleth-cli/internal/palette"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

// addStyleFlags registers the classification/palette flags shared by the
// classify, map, and batch commands.
func addStyleFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("method", "", "classification method: equal_intervals, quantiles, jenks, pretty_breaks, stddev")
	f.Int("classes", 0, "number of classes (default from config)")
	f.String("scheme", "", "color scheme: Blue, Red, Green, Rainbow, Purple, Heat, Orange, Custom")
	f.Bool("reverse", false, "reverse the color scheme")
	f.String("min-color", "", "custom scheme minimum color (hex)")
	f.String("max-color", "", "custom scheme maximum color (hex)")
	f.String("style", "", "load a saved style JSON file as the base settings")
}

// styleFromFlags builds the effective style: defaults, then config, then an
// optional --style document, then explicit flag overrides.
func styleFromFlags(cmd *cobra.Command) (theme.Style, error) {
	style := theme.DefaultStyle()

	// Config-level defaults.
	if cfg.Classify.Method != "" {
		m, err := classify.ParseMethod(cfg.Classify.Method)
		if err != nil {
			return style, err
		}
		style.Method = string(m)
	}
	if cfg.Classify.NumClasses > 0 {
		style.NumClasses = cfg.Classify.NumClasses
	}
	if cfg.Palette.Scheme != "" {
		style.ColorScheme = cfg.Palette.Scheme
	}
	style.ReverseColors = cfg.Palette.Reverse
	if cfg.Palette.MinColor != "" {
		c, err := palette.ParseHex(cfg.Palette.MinColor)
		if err != nil {
			return style, err
		}
		style.MinColor = c
	}
	if cfg.Palette.MaxColor != "" {
		c, err := palette.ParseHex(cfg.Palette.MaxColor)
		if err != nil {
			return style, err
		}
		style.MaxColor = c
	}

	// Saved style document as base.
	if path, _ := cmd.Flags().GetString("style"); path != "" {
		loaded, err := theme.LoadFile(path)
		if err != nil {
			return style, err
		}
		style = loaded
	}

	// Flag overrides.
	if cmd.Flags().Changed("method") {
		v, _ := cmd.Flags().GetString("method")
		m, err := classify.ParseMethod(v)
		if err != nil {
			return style, err
		}
		style.Method = string(m)
	}
	if cmd.Flags().Changed("classes") {
		v, _ := cmd.Flags().GetInt("classes")
		style.NumClasses = v
	}
	if cmd.Flags().Changed("scheme") {
		style.ColorScheme, _ = cmd.Flags().GetString("scheme")
	}
	if cmd.Flags().Changed("reverse") {
		style.ReverseColors, _ = cmd.Flags().GetBool("reverse")
	}
	if cmd.Flags().Changed("min-color") {
		v, _ := cmd.Flags().GetString("min-color")
		c, err := palette.ParseHex(v)
		if err != nil {
			return style, err
		}
		style.MinColor = c
	}
	if cmd.Flags().Changed("max-color") {
		v, _ := cmd.Flags().GetString("max-color")
		c, err := palette.ParseHex(v)
		if err != nil {
			return style, err
		}
		style.MaxColor = c
	}

	if err := style.Validate(); err != nil {
		return style, err
	}
	return style, nil
}

// requireInputField reads the shared --input/--field flags.
func requireInputField(cmd *cobra.Command) (string, string, error) {
	input, _ := cmd.Flags().GetString("input")
	field, _ := cmd.Flags().GetString("field")
	if input == "" {
		return "", "", eris.New("--input is required")
	}
	if field == "" {
		return "", "", eris.New("--field is required")
	}
	return input, field, nil
}
