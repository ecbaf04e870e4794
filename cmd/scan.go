package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/pipeline"
)

var (
	scanInput          string
	scanLimit          int
	scanStartFrom      int
	scanOutput         string
	scanSkipExtraction bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the full discovery and extraction pipeline on a market list",
	Long: `Reads a market list (CSV or XLSX), crawls each market website for its
vendor page, extracts vendor records via Claude, and writes per-market results.

Examples:
  # Full run over a market list
  vendor-scout scan --input markets.csv --output results.json

  # Resume a batch from market 40
  vendor-scout scan --input markets.csv --start-from 40

  # Discovery only, no API calls
  vendor-scout scan --input markets.csv --skip-extraction`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		markets, err := fetcher.LoadMarkets(scanInput)
		if err != nil {
			return eris.Wrap(err, "scan: load markets")
		}
		zap.L().Info("loaded market list",
			zap.String("path", scanInput),
			zap.Int("markets", len(markets)),
		)

		var env *pipelineEnv
		if scanSkipExtraction {
			env, err = initDiscoveryEnv(ctx)
		} else {
			env, err = initPipeline(ctx)
		}
		if err != nil {
			return eris.Wrap(err, "scan: init pipeline")
		}
		defer env.Close()

		results, summary, err := env.Pipeline.RunBatch(ctx, markets, pipeline.BatchOptions{
			Source:         scanInput,
			StartFrom:      scanStartFrom,
			Limit:          scanLimit,
			SkipExtraction: scanSkipExtraction,
		})
		if err != nil {
			return eris.Wrap(err, "scan: run batch")
		}
		if summary == nil {
			zap.L().Warn("scan: nothing to process",
				zap.Int("start_from", scanStartFrom),
				zap.Int("markets", len(markets)),
			)
			return nil
		}

		return writeOutputJSON(scanOutput, results)
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanInput, "input", "", "path to market list CSV or XLSX (required)")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "max markets to process (0 = all)")
	scanCmd.Flags().IntVar(&scanStartFrom, "start-from", 0, "zero-based market index to resume from")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "write results JSON to file (default: stdout)")
	scanCmd.Flags().BoolVar(&scanSkipExtraction, "skip-extraction", false, "discovery only, no LLM calls")
	_ = scanCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(scanCmd)
}
