package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/overlaylab/georisk/internal/detect"
	"github.com/overlaylab/georisk/internal/ingest"
	"github.com/overlaylab/georisk/internal/report"
	"github.com/overlaylab/georisk/internal/series"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect risk events in the daily index series",
	Long: `Runs the spike/episode/regime detectors over a daily risk index CSV
and prints the detected events.

Example:
  go run ./cmd/georisk detect --gpr-csv data/gpr_daily_recent.csv --include-regimes
  go run ./cmd/georisk detect --json-out output/events.json`,
	RunE: runDetect,
}

var (
	detectGPRCSV         string
	detectIncludeRegimes bool
	detectJSONOut        string
)

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().StringVar(&detectGPRCSV, "gpr-csv", "", "daily risk index CSV (default: GPR_CSV_PATH)")
	detectCmd.Flags().BoolVar(&detectIncludeRegimes, "include-regimes", false, "also detect episodes and regimes")
	detectCmd.Flags().StringVar(&detectJSONOut, "json-out", "", "write the event list to this JSON file")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, log, strategy, err := setup()
	if err != nil {
		return err
	}

	csvPath := detectGPRCSV
	if csvPath == "" {
		csvPath = cfg.Paths.GPRCSV
	}

	points, err := ingest.LoadGPRSeries(csvPath, log)
	if err != nil {
		return err
	}

	normalized, err := series.NewNormalizer(log).Normalize(points)
	if err != nil {
		return err
	}

	detector := detect.NewDetectorWithThresholds(strategy.Thresholds(), log)
	events := detector.Detect(context.Background(), normalized, detectIncludeRegimes)

	if len(events) == 0 {
		fmt.Println("No risk events detected.")
		return nil
	}

	fmt.Printf("Detected %d risk events:\n", len(events))
	for _, e := range events {
		fmt.Printf("  %-16s peak=%s level=%.2f severity=%.3f pct=%.3f  %s\n",
			e.Type, e.PeakDate, e.LevelAtPeak, e.SeverityOr(0), e.Percentile, e.ID)
	}

	if detectJSONOut != "" {
		out := detectJSONOut
		if filepath.Dir(out) == "." {
			out = filepath.Join(cfg.Paths.OutputDir, out)
		}
		if err := report.WriteJSON(out, events); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	}
	return nil
}
