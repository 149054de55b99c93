package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/overlaylab/georisk/internal/exposure"
	"github.com/overlaylab/georisk/internal/ingest"
	"github.com/overlaylab/georisk/internal/report"
)

var exposureCmd = &cobra.Command{
	Use:   "exposure",
	Short: "Aggregate portfolio holdings into industry exposures",
	Long: `Groups fund holdings by risk-sensitive industry, computes weighted
betas and the portfolio vulnerability baseline.

Example:
  go run ./cmd/georisk exposure --portfolio-csv data/holdings.csv
  go run ./cmd/georisk exposure --fund "Example Fund" --json-out output/exposures.json`,
	RunE: runExposure,
}

var (
	exposureCSV     string
	exposureFund    string
	exposureAsOf    string
	exposureJSONOut string
)

func init() {
	rootCmd.AddCommand(exposureCmd)

	exposureCmd.Flags().StringVar(&exposureCSV, "portfolio-csv", "", "fund holdings CSV (default: PORTFOLIO_CSV_PATH)")
	exposureCmd.Flags().StringVar(&exposureFund, "fund", "", "restrict to this fund name")
	exposureCmd.Flags().StringVar(&exposureAsOf, "as-of", "", "restrict to this as-of date (YYYY-MM-DD)")
	exposureCmd.Flags().StringVar(&exposureJSONOut, "json-out", "", "write exposures to this JSON file")
}

func runExposure(cmd *cobra.Command, args []string) error {
	cfg, log, _, err := setup()
	if err != nil {
		return err
	}

	csvPath := exposureCSV
	if csvPath == "" {
		csvPath = cfg.Paths.PortfolioCSV
	}

	snapshot, err := ingest.LoadPortfolio(csvPath, ingest.PortfolioFilter{
		FundName: exposureFund,
		AsOfDate: exposureAsOf,
	}, log)
	if err != nil {
		return err
	}

	aggregator := exposure.NewAggregator(log)
	exposures := aggregator.Aggregate(context.Background(), snapshot)
	vulnerability, annotated := exposure.ComputeVulnerability(exposures)

	fmt.Printf("Fund: %s (as of %s), %d holdings, %d mapped industries\n",
		snapshot.FundName, snapshot.AsOfDate, len(snapshot.Holdings), len(annotated))
	for _, e := range annotated {
		contrib := 0.0
		if e.ContributionToVulnerability != nil {
			contrib = *e.ContributionToVulnerability
		}
		fmt.Printf("  %-40s weight=%6.2f%% beta=%+.4f contrib=%+.5f\n",
			e.IndustryName, e.PortfolioWeightPct, e.Beta, contrib)
	}
	fmt.Printf("Portfolio vulnerability baseline: %+.5f\n", vulnerability)

	if exposureJSONOut != "" {
		if err := report.WriteJSON(exposureJSONOut, annotated); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", exposureJSONOut)
	}
	return nil
}
