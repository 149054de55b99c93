package commands

import (
	"github.com/spf13/cobra"

	"github.com/overlaylab/georisk/internal/overlayconfig"
	"github.com/overlaylab/georisk/pkg/config"
	"github.com/overlaylab/georisk/pkg/logger"
)

var (
	// Global flags
	strategyPath string
	verbose      bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "georisk",
	Short: "Geopolitical risk overlay for fund portfolios",
	Long: `georisk detects notable events in a daily geopolitical-risk index,
maps fund holdings to risk-sensitive industries, and scores the impact
of a chosen event on the portfolio.

Examples:
  go run ./cmd/georisk detect --gpr-csv data/gpr_daily_recent.csv
  go run ./cmd/georisk exposure --portfolio-csv data/holdings.csv
  go run ./cmd/georisk report --target-date 2024-04-15`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyPath, "strategy", "", "strategy config YAML (default: built-in thresholds)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup loads env config, the logger and the strategy config shared by
// every subcommand.
func setup() (*config.Config, *logger.Logger, *overlayconfig.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	path := strategyPath
	if path == "" {
		path = cfg.Paths.StrategyYAML
	}
	strategy, err := overlayconfig.LoadOrDefault(path)
	if err != nil {
		return nil, nil, nil, err
	}
	if path != "" {
		if hash, err := overlayconfig.Hash(strategy); err == nil {
			log.WithFields(map[string]interface{}{
				"strategy": strategy.Meta.StrategyID,
				"hash":     hash,
			}).Info("Loaded strategy config")
		}
	}

	return cfg, log, strategy, nil
}
