package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/choropleth-cli/internal/classify"
	"github.com/sells-group/choropleth-cli/internal/palette"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List color schemes or preview the colors for a class count",
	RunE: func(cmd *cobra.Command, _ []string) error {
		scheme, _ := cmd.Flags().GetString("scheme")
		classes, _ := cmd.Flags().GetInt("classes")
		reverse, _ := cmd.Flags().GetBool("reverse")

		if scheme == "" {
			fmt.Println("Schemes:")
			for _, name := range palette.SchemeNames() {
				if name == palette.SchemeCustom {
					fmt.Printf("  %-8s (2 anchors: user min/max colors)\n", name)
					continue
				}
				fmt.Printf("  %-8s (%d anchors)\n", name, len(palette.Anchors(name)))
			}
			fmt.Println("\nMethods:")
			for _, m := range classify.Available() {
				fmt.Printf("  %s\n", m)
			}
			return nil
		}

		minColor, err := palette.ParseHex(cfg.Palette.MinColor)
		if err != nil {
			return err
		}
		maxColor, err := palette.ParseHex(cfg.Palette.MaxColor)
		if err != nil {
			return err
		}

		colors := palette.ForScheme(scheme, classes, reverse, minColor, maxColor)
		for i, c := range colors {
			fmt.Printf("%2d  %s\n", i+1, c.Hex())
		}
		return nil
	},
}

func init() {
	f := paletteCmd.Flags()
	f.String("scheme", "", "scheme to preview (empty: list all schemes and methods)")
	f.Int("classes", 9, "number of colors to produce")
	f.Bool("reverse", false, "reverse the scheme")

	rootCmd.AddCommand(paletteCmd)
}
