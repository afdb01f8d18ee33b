package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/choropleth-cli/internal/export"
	"github.com/sells-group/choropleth-cli/internal/source"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Write a classified GeoJSON choropleth from a shapefile",
	Long: `Classifies a shapefile attribute and writes a GeoJSON FeatureCollection
with per-feature fill colors. Features with missing or non-numeric values get
a fully transparent symbol so they are hidden, not miscolored.

Example:
  map --input counties.shp --field population --method jenks --scheme Heat --output counties.geojson`,
	RunE: runMap,
}

func init() {
	f := mapCmd.Flags()
	f.String("input", "", "input shapefile (.shp)")
	f.String("field", "", "numeric attribute field to classify")
	f.String("output", "", "destination GeoJSON path")
	addStyleFlags(mapCmd)

	rootCmd.AddCommand(mapCmd)
}

func runMap(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, field, err := requireInputField(cmd)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(input), ".shp") {
		return eris.Errorf("map: input must be a shapefile (got %s)", input)
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return eris.New("--output is required")
	}

	style, err := styleFromFlags(cmd)
	if err != nil {
		return err
	}

	col, err := source.NewShapefileReader(input).Column(field)
	if err != nil {
		return err
	}
	if len(col.Values) == 0 {
		return eris.Errorf("map: no valid numeric data in field %q", field)
	}

	cls, err := theme.Build(ctx, col.Values, style)
	if err != nil {
		return err
	}
	cls.Field = field
	cls.InvalidCount = len(col.Invalid)

	if err := export.WriteGeoJSON(input, field, cls, style.Symbology(cls), output); err != nil {
		return err
	}

	fmt.Printf("Choropleth written: %s (%d classes, %d features classified, %d hidden)\n",
		output, cls.Classes, cls.ValidCount, cls.InvalidCount)
	return nil
}
