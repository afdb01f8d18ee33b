package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/choropleth-cli/internal/source"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a numeric field into graduated class ranges",
	Long: `Reads one attribute column, screens out missing and non-numeric values,
computes class breaks with the selected method, assigns palette colors, and
prints the resulting class ranges.

Examples:
  # Five quantile classes over a CSV column
  classify --input counties.csv --field population

  # Jenks natural breaks with the Heat scheme, reversed
  classify --input counties.shp --field median_income --method jenks --scheme Heat --reverse

  # Custom two-color ramp, JSON output
  classify --input data.xlsx --field density --scheme Custom --min-color "#add8e6" --max-color "#08519c" --format json`,
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.String("input", "", "input file (.csv, .xlsx, or .shp)")
	f.String("field", "", "numeric attribute field to classify")
	f.String("format", "table", "output format: table, csv, or json")
	f.String("output", "", "output file path (default: stdout)")
	addStyleFlags(classifyCmd)

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, field, err := requireInputField(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	style, err := styleFromFlags(cmd)
	if err != nil {
		return err
	}

	reader, err := source.Open(input)
	if err != nil {
		return err
	}
	col, err := reader.Column(field)
	if err != nil {
		return err
	}
	if len(col.Values) == 0 {
		return eris.Errorf("classify: no valid numeric data in field %q (%d records, all missing or non-numeric)", field, col.Total)
	}

	zap.L().Info("read attribute column",
		zap.String("input", input),
		zap.String("field", field),
		zap.Int("valid", len(col.Values)),
		zap.Int("invalid", len(col.Invalid)),
	)

	cls, err := theme.Build(ctx, col.Values, style)
	if err != nil {
		return err
	}
	cls.Field = field
	cls.InvalidCount = len(col.Invalid)

	if err := outputClassification(cls, format, outputPath); err != nil {
		return err
	}

	if format == "table" && outputPath == "" {
		fmt.Printf("\nMethod: %s  Classes: %d  Valid: %d  Hidden: %d\n",
			cls.Method, cls.Classes, cls.ValidCount, cls.InvalidCount)
	}
	return nil
}
