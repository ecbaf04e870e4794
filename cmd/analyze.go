package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/model"
	"github.com/sells-group/vendor-scout/internal/vendor"
	"github.com/sells-group/vendor-scout/pkg/gazetteer"
)

var (
	analyzeResults  string
	analyzeOutput   string
	analyzeFoldCase bool
)

// analyzedVendor is a vendor record annotated with its estimated travel
// distance to the market.
type analyzedVendor struct {
	model.Vendor
	DistanceMiles  float64 `json:"distance_miles"`
	DistanceMethod string  `json:"distance_method"` // "geocoded" or "estimated"
}

// marketAnalysis is the cleaned per-market vendor roster.
type marketAnalysis struct {
	Market      string           `json:"market"`
	MarketURL   string           `json:"market_url"`
	MarketPlace string           `json:"market_place,omitempty"`
	Vendors     []analyzedVendor `json:"vendors"`
}

// analysisStats aggregates the whole results file.
type analysisStats struct {
	TotalMarkets        int            `json:"total_markets"`
	MarketsWithVendors  int            `json:"markets_with_vendors"`
	FailedMarkets       int            `json:"failed_markets"`
	TotalVendors        int            `json:"total_vendors"`
	BySource            map[string]int `json:"by_source"`
	ByBusinessType      map[string]int `json:"by_business_type"`
	AverageConfidence   float64        `json:"average_confidence"`
	GeocodedDistances   int            `json:"geocoded_distances"`
	EstimatedDistances  int            `json:"estimated_distances"`
	TotalMilesPerSeason float64        `json:"total_miles_per_season"`
}

// analysisReport is the analyze command's output document.
type analysisReport struct {
	Markets []marketAnalysis `json:"markets"`
	Stats   analysisStats    `json:"stats"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Clean extracted vendors and report roster statistics",
	Long: `Re-filters and deduplicates vendor records from a results file, annotates
each vendor with its distance to the market, and reports aggregate statistics.

Seasonal mileage assumes twenty market days per season.

Example:
  vendor-scout analyze --results results.json --output analysis.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		results, err := readResultsJSON(analyzeResults)
		if err != nil {
			return eris.Wrap(err, "analyze: load results")
		}

		resolver := gazetteer.NewStatic()
		report := analysisReport{
			Stats: analysisStats{
				TotalMarkets:   len(results),
				BySource:       make(map[string]int),
				ByBusinessType: make(map[string]int),
			},
		}

		var confidenceSum float64

		for _, result := range results {
			if result.Error != "" {
				report.Stats.FailedMarkets++
				continue
			}

			cleaned := vendor.Merge(vendor.Filter(result.Vendors), vendor.DedupeOptions{FoldCase: analyzeFoldCase})
			if len(cleaned) == 0 {
				continue
			}
			report.Stats.MarketsWithVendors++

			marketRes, err := resolver.Resolve(ctx, result.Market.Name)
			if err != nil {
				return eris.Wrap(err, "analyze: resolve market location")
			}

			locations := make([]string, len(cleaned))
			for i, v := range cleaned {
				locations[i] = v.Location
			}
			vendorCoords, err := resolver.BatchResolve(ctx, locations)
			if err != nil {
				return eris.Wrap(err, "analyze: resolve vendor locations")
			}

			ma := marketAnalysis{
				Market:    result.Market.Name,
				MarketURL: result.Market.URL,
			}
			if marketRes.Matched {
				ma.MarketPlace = marketRes.Place
			}

			for i, v := range cleaned {
				av := analyzedVendor{Vendor: v}

				if marketRes.Matched && vendorCoords[i].Matched {
					av.DistanceMiles = gazetteer.Distance(
						gazetteer.Coord{Lat: vendorCoords[i].Latitude, Lon: vendorCoords[i].Longitude},
						gazetteer.Coord{Lat: marketRes.Latitude, Lon: marketRes.Longitude},
					)
					av.DistanceMethod = "geocoded"
					report.Stats.GeocodedDistances++
				} else {
					av.DistanceMiles = gazetteer.EstimateDistance(v.Location, result.Market.Name)
					av.DistanceMethod = "estimated"
					report.Stats.EstimatedDistances++
				}

				// 20 market days per season.
				report.Stats.TotalMilesPerSeason += av.DistanceMiles * 20

				report.Stats.TotalVendors++
				report.Stats.BySource[v.Source]++
				if v.BusinessType != "" {
					report.Stats.ByBusinessType[v.BusinessType]++
				}
				confidenceSum += v.Confidence

				ma.Vendors = append(ma.Vendors, av)
			}

			report.Markets = append(report.Markets, ma)
		}

		if report.Stats.TotalVendors > 0 {
			report.Stats.AverageConfidence = confidenceSum / float64(report.Stats.TotalVendors)
		}

		zap.L().Info("analysis complete",
			zap.Int("markets", report.Stats.TotalMarkets),
			zap.Int("markets_with_vendors", report.Stats.MarketsWithVendors),
			zap.Int("vendors", report.Stats.TotalVendors),
			zap.Float64("avg_confidence", report.Stats.AverageConfidence),
		)

		return writeOutputJSON(analyzeOutput, report)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResults, "results", "", "path to results JSON from scan or extract (required)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "write analysis JSON to file (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeFoldCase, "fold-case", false, "merge vendors whose names differ only by case or spacing")
	_ = analyzeCmd.MarkFlagRequired("results")
	rootCmd.AddCommand(analyzeCmd)
}
