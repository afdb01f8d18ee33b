package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/choropleth-cli/internal/source"
	"github.com/sells-group/choropleth-cli/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics for a numeric field",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, field, err := requireInputField(cmd)
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
			return eris.Errorf("stats: no valid numeric data in field %q", field)
		}

		summary, err := stats.Summarize(col.Values)
		if err != nil {
			return err
		}

		p := message.NewPrinter(language.English)
		p.Printf("Statistics for %q:\n\n", field)
		p.Printf("  Count:   %d features\n", summary.Count)
		if len(col.Invalid) > 0 {
			p.Printf("  Invalid: %d features (hidden)\n", len(col.Invalid))
		}
		fmt.Printf("  Min:     %.2f\n", summary.Min)
		fmt.Printf("  Max:     %.2f\n", summary.Max)
		fmt.Printf("  Mean:    %.2f\n", summary.Mean)
		fmt.Printf("  Median:  %.2f\n", summary.Median)
		fmt.Printf("  Std Dev: %.2f\n", summary.StdDev)
		fmt.Printf("  Range:   %.2f\n", summary.Range)
		return nil
	},
}

func init() {
	f := statsCmd.Flags()
	f.String("input", "", "input file (.csv, .xlsx, or .shp)")
	f.String("field", "", "numeric attribute field")

	rootCmd.AddCommand(statsCmd)
}
