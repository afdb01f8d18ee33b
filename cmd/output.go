package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/choropleth-cli/internal/theme"
)

// openOutput returns the destination file for a command's --output flag,
// defaulting to stdout. The cleanup func is a no-op for stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

func outputClassification(cls *theme.Classification, format, outputPath string) error {
	w, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	switch format {
	case "table":
		return writeRangeTable(w, cls)
	case "csv":
		return writeRangeCSV(w, cls)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(cls), "encode classification")
	default:
		return eris.Errorf("unsupported format %q (want table, csv, or json)", format)
	}
}

func writeRangeTable(w io.Writer, cls *theme.Classification) error {
	header := fmt.Sprintf("%-5s %15s %15s %-9s %s\n", "Class", "Lower", "Upper", "Color", "Label")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 70)); err != nil {
		return eris.Wrap(err, "write table separator")
	}
	for i, r := range cls.Ranges {
		line := fmt.Sprintf("%-5d %15.4f %15.4f %-9s %s\n", i+1, r.Lower, r.Upper, r.Color.Hex(), r.Label)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "write table row")
		}
	}
	return nil
}

func writeRangeCSV(w io.Writer, cls *theme.Classification) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"class", "lower", "upper", "color", "label"}); err != nil {
		return eris.Wrap(err, "write CSV header")
	}
	for i, r := range cls.Ranges {
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%g", r.Lower),
			fmt.Sprintf("%g", r.Upper),
			r.Color.Hex(),
			r.Label,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "write CSV row")
		}
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
