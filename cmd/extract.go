package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/pipeline"
	"github.com/sells-group/vendor-scout/internal/scorer"
	"github.com/sells-group/vendor-scout/internal/vendor"
	"github.com/sells-group/vendor-scout/pkg/anthropic"
)

var (
	extractDiscovery string
	extractOutput    string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract vendor records from previously discovered pages",
	Long: `Runs the extraction stage over a discovery file produced by the discover
command: each candidate page is refetched and sent to Claude, and the parsed
vendor records are merged per market.

Example:
  vendor-scout extract --discovery discovery.json --output results.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := validateAPIKey(); err != nil {
			return err
		}

		results, err := readResultsJSON(extractDiscovery)
		if err != nil {
			return eris.Wrap(err, "extract: load discovery")
		}
		zap.L().Info("loaded discovery file",
			zap.String("path", extractDiscovery),
			zap.Int("markets", len(results)),
		)

		f := fetcher.NewClient(time.Duration(cfg.Crawl.TimeoutSecs)*time.Second, cfg.Crawl.UserAgent)
		ai := anthropic.NewClient(cfg.Anthropic.Key)
		ext := pipeline.NewExtractor(ai, f, cfg.Extract)
		scoring := scorer.Default()

		maxPages := cfg.Extract.PagesPerMarket
		if maxPages <= 0 {
			maxPages = 1
		}

		for _, result := range results {
			if ctx.Err() != nil {
				break
			}
			if result.Error != "" || len(result.Candidates) == 0 {
				continue
			}

			var collected []model.Vendor
			for i, cand := range result.Candidates {
				if i >= maxPages {
					break
				}

				patternVendors := scorer.ExtractVendors(cand.ContentSample, cand.PageURL)
				if len(patternVendors) > 0 &&
					scorer.PageConfidence(scoring, cand.ContentSample, len(patternVendors)) > 0.3 {
					collected = append(collected, patternVendors...)
				}

				extraction := ext.ExtractPage(ctx, result.Market.Name, cand.PageURL)
				result.Extractions = append(result.Extractions, extraction)
				collected = append(collected, extraction.Vendors...)
			}

			result.Vendors = vendor.Merge(vendor.Filter(collected), vendor.DedupeOptions{})
			zap.L().Info("market extracted",
				zap.String("market", result.Market.Name),
				zap.Int("pages", len(result.Extractions)),
				zap.Int("vendors", len(result.Vendors)),
			)
		}

		return writeOutputJSON(extractOutput, results)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractDiscovery, "discovery", "", "path to discovery JSON from the discover command (required)")
	extractCmd.Flags().StringVar(&extractOutput, "output", "", "write results JSON to file (default: stdout)")
	_ = extractCmd.MarkFlagRequired("discovery")
	rootCmd.AddCommand(extractCmd)
}
