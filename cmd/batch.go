package main

import (
	"encoding/json"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/choropleth-cli/internal/source"
	"github.com/sells-group/choropleth-cli/internal/theme"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify several fields of one input concurrently",
	Long: `Runs the classification pipeline over multiple attribute fields of the
same input in parallel and prints one classification per field as JSON.
Individual field failures are logged and skipped rather than aborting the
batch.

Example:
  batch --input counties.csv --fields population,median_income,density --concurrency 4`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "input file (.csv, .xlsx, or .shp)")
	f.String("fields", "", "comma-separated numeric fields to classify")
	f.Int("concurrency", 4, "number of fields classified in parallel")
	f.String("output", "", "output file path (default: stdout)")
	addStyleFlags(batchCmd)

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return eris.New("--input is required")
	}
	fieldsFlag, _ := cmd.Flags().GetString("fields")
	fields := splitAndTrim(fieldsFlag)
	if len(fields) == 0 {
		return eris.New("--fields is required")
	}
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency < 1 {
		concurrency = 1
	}
	outputPath, _ := cmd.Flags().GetString("output")

	style, err := styleFromFlags(cmd)
	if err != nil {
		return err
	}

	zap.L().Info("classifying fields",
		zap.String("input", input),
		zap.Strings("fields", fields),
		zap.Int("concurrency", concurrency),
	)

	var mu sync.Mutex
	results := make(map[string]*theme.Classification, len(fields))
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, field := range fields {
		g.Go(func() error {
			log := zap.L().With(zap.String("field", field))

			// Each worker opens its own reader; readers are not shared.
			reader, err := source.Open(input)
			if err != nil {
				failed.Add(1)
				log.Error("open input failed", zap.Error(err))
				return nil
			}
			col, err := reader.Column(field)
			if err != nil {
				failed.Add(1)
				log.Error("read column failed", zap.Error(err))
				return nil
			}
			if len(col.Values) == 0 {
				failed.Add(1)
				log.Error("no valid numeric data")
				return nil
			}

			cls, err := theme.Build(gctx, col.Values, style)
			if err != nil {
				failed.Add(1)
				log.Error("classification failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}
			cls.Field = field
			cls.InvalidCount = len(col.Invalid)

			mu.Lock()
			results[field] = cls
			mu.Unlock()

			succeeded.Add(1)
			log.Info("field classified",
				zap.Int("classes", cls.Classes),
				zap.Int("valid", cls.ValidCount),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch classification")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)

	w, cleanup, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer cleanup()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(results), "encode batch results")
}
