package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/internal/ingest"
	"github.com/overlaylab/georisk/internal/overlay"
	"github.com/overlaylab/georisk/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full overlay and write an advisory report",
	Long: `Runs the whole pipeline: ingest the index series and the portfolio,
detect events, select the one most relevant to the target date, score
the portfolio impact and compose the advisory report.

Example:
  go run ./cmd/georisk report --target-date 2024-04-15
  go run ./cmd/georisk report --target-date 2024-04-15 --include-regimes --out advisory.json`,
	RunE: runReport,
}

var (
	reportGPRCSV         string
	reportPortfolioCSV   string
	reportFund           string
	reportAsOf           string
	reportTargetDate     string
	reportIncludeRegimes bool
	reportOut            string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportGPRCSV, "gpr-csv", "", "daily risk index CSV (default: GPR_CSV_PATH)")
	reportCmd.Flags().StringVar(&reportPortfolioCSV, "portfolio-csv", "", "fund holdings CSV (default: PORTFOLIO_CSV_PATH)")
	reportCmd.Flags().StringVar(&reportFund, "fund", "", "restrict to this fund name")
	reportCmd.Flags().StringVar(&reportAsOf, "as-of", "", "restrict to this as-of date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTargetDate, "target-date", "", "event target date (YYYY-MM-DD, default: today)")
	reportCmd.Flags().BoolVar(&reportIncludeRegimes, "include-regimes", false, "also detect episodes and regimes")
	reportCmd.Flags().StringVar(&reportOut, "out", "advisory_report.json", "output JSON file (relative paths go under OUTPUT_DIR)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, log, strategy, err := setup()
	if err != nil {
		return err
	}

	gprPath := reportGPRCSV
	if gprPath == "" {
		gprPath = cfg.Paths.GPRCSV
	}
	portfolioPath := reportPortfolioCSV
	if portfolioPath == "" {
		portfolioPath = cfg.Paths.PortfolioCSV
	}

	targetDate := contracts.DateOf(time.Now())
	if reportTargetDate != "" {
		targetDate, err = contracts.ParseDate(reportTargetDate)
		if err != nil {
			return err
		}
	}

	points, err := ingest.LoadGPRSeries(gprPath, log)
	if err != nil {
		return err
	}
	snapshot, err := ingest.LoadPortfolio(portfolioPath, ingest.PortfolioFilter{
		FundName: reportFund,
		AsOfDate: reportAsOf,
	}, log)
	if err != nil {
		return err
	}

	pipeline := overlay.New(strategy, log)
	result, err := pipeline.Run(context.Background(), points, snapshot, targetDate, reportIncludeRegimes)
	if err != nil {
		if errors.Is(err, overlay.ErrNoEvents) {
			// Valid business outcome, not a failure.
			fmt.Printf("Nothing to report for %s: no risk events detected.\n", targetDate)
			return nil
		}
		return err
	}

	rep := result.Report
	fmt.Printf("=== Advisory Report: %s (as of %s) ===\n\n", rep.FundName, rep.AsOfDate)
	fmt.Println(rep.Summary)
	fmt.Println()
	for _, kp := range rep.KeyPoints {
		fmt.Printf("  - %s\n", kp)
	}

	out := reportOut
	if filepath.Dir(out) == "." {
		out = filepath.Join(cfg.Paths.OutputDir, out)
	}
	if err := report.WriteJSON(out, rep); err != nil {
		return err
	}
	fmt.Printf("\nWrote %s\n", out)
	return nil
}
