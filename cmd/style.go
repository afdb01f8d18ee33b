package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/choropleth-cli/internal/export"
	"github.com/sells-group/choropleth-cli/internal/store"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Manage the saved style library",
}

var styleSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the current settings as a named style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := styleFromFlags(cmd)
		if err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("file"); path != "" {
			if err := style.SaveFile(path); err != nil {
				return err
			}
			fmt.Printf("Style saved: %s\n", path)
			return nil
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		saved, err := s.SaveStyle(cmd.Context(), args[0], style)
		if err != nil {
			return err
		}
		fmt.Printf("Style saved: %s (%s)\n", saved.Name, saved.ID)
		return nil
	},
}

var styleShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a saved style as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		saved, err := s.GetStyle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(saved.Style), "encode style")
	},
}

var styleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved styles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		styles, err := s.ListStyles(cmd.Context())
		if err != nil {
			return err
		}
		if len(styles) == 0 {
			fmt.Println("No saved styles.")
			return nil
		}
		for _, saved := range styles {
			fmt.Printf("%-24s %s/%d classes/%s  updated %s\n",
				saved.Name, saved.Style.Method, saved.Style.NumClasses,
				saved.Style.ColorScheme, saved.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var styleDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved style",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		if err := s.DeleteStyle(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Style deleted: %s\n", args[0])
		return nil
	},
}

var styleExportCmd = &cobra.Command{
	Use:   "export NAME",
	Short: "Export a saved style as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return eris.New("--output is required")
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		saved, err := s.GetStyle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := export.WriteStyleYAML(saved.Style, output); err != nil {
			return err
		}
		fmt.Printf("Style exported: %s\n", output)
		return nil
	},
}

var styleImportCmd = &cobra.Command{
	Use:   "import NAME",
	Short: "Import a style from a JSON or YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if path == "" {
			return eris.New("--file is required")
		}

		var style theme.Style
		var err error
		if isYAMLPath(path) {
			style, err = export.ReadStyleYAML(path)
		} else {
			style, err = theme.LoadFile(path)
		}
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close() //nolint:errcheck

		saved, err := s.SaveStyle(cmd.Context(), args[0], style)
		if err != nil {
			return err
		}
		fmt.Printf("Style imported: %s (%s)\n", saved.Name, saved.ID)
		return nil
	},
}

func isYAMLPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}

// openStore opens the configured style library backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var s store.Store
	var err error
	switch cfg.Store.Driver {
	case "sqlite", "":
		s, err = store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q (want sqlite or postgres)", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}

func init() {
	addStyleFlags(styleSaveCmd)
	styleSaveCmd.Flags().String("file", "", "write to a JSON file instead of the style library")
	styleExportCmd.Flags().String("output", "", "destination YAML path")
	styleImportCmd.Flags().String("file", "", "style document to import (.json, .yaml)")

	styleCmd.AddCommand(styleSaveCmd, styleShowCmd, styleListCmd, styleDeleteCmd, styleExportCmd, styleImportCmd)
	rootCmd.AddCommand(styleCmd)
}
