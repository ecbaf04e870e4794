package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/vendor-scout/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "vendor-scout",
	Short: "Farmers market vendor discovery pipeline",
	Long:  "Crawls farmers market websites, scores pages for vendor listings, extracts structured vendor records via Claude, and aggregates them per market.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
