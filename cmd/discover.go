package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/fetcher"
	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/pipeline"
)

var (
	discoverInput  string
	discoverURL    string
	discoverName   string
	discoverLimit  int
	discoverOutput string
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Crawl market websites and locate vendor pages (no LLM calls)",
	Long: `Runs the discovery stage only: crawls each market site, scores links and
page content, and reports the best vendor-page candidates. The output file
feeds the extract command.

Examples:
  # One site
  vendor-scout discover --url https://westfieldmarket.org

  # Whole list
  vendor-scout discover --input markets.csv --output discovery.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if discoverInput == "" && discoverURL == "" {
			return eris.New("discover: either --input or --url is required")
		}

		var markets []model.Market
		if discoverURL != "" {
			name := discoverName
			if name == "" {
				name = discoverURL
			}
			markets = []model.Market{{ID: 1, Name: name, URL: discoverURL}}
		} else {
			var err error
			markets, err = fetcher.LoadMarkets(discoverInput)
			if err != nil {
				return eris.Wrap(err, "discover: load markets")
			}
			zap.L().Info("loaded market list",
				zap.String("path", discoverInput),
				zap.Int("markets", len(markets)),
			)
		}

		env, err := initDiscoveryEnv(ctx)
		if err != nil {
			return eris.Wrap(err, "discover: init pipeline")
		}
		defer env.Close()

		results, _, err := env.Pipeline.RunBatch(ctx, markets, pipeline.BatchOptions{
			Source:         discoverInput,
			Limit:          discoverLimit,
			SkipExtraction: true,
		})
		if err != nil {
			return eris.Wrap(err, "discover: run batch")
		}

		return writeOutputJSON(discoverOutput, results)
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverInput, "input", "", "path to market list CSV or XLSX")
	discoverCmd.Flags().StringVar(&discoverURL, "url", "", "single market website URL")
	discoverCmd.Flags().StringVar(&discoverName, "name", "", "market name for --url mode")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 0, "max markets to process (0 = all)")
	discoverCmd.Flags().StringVar(&discoverOutput, "output", "", "write discovery JSON to file (default: stdout)")
	rootCmd.AddCommand(discoverCmd)
}
