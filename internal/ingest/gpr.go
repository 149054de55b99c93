package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

// GPR CSV column names (after upper-casing the header). DATE and GPRD
// are required; everything else is optional.
const (
	colDate   = "DATE"
	colGPRD   = "GPRD"
	colN10D   = "N10D"
	colAct    = "GPRD_ACT"
	colThreat = "GPRD_THREAT"
	colMA7    = "GPRD_MA7"
	colMA30   = "GPRD_MA30"
	colEvent  = "EVENT"
)

// LoadGPRSeries reads a daily risk index CSV (Caldara & Iacoviello
// export layout) into raw daily points. Column names are matched
// case-insensitively. Rows with a missing or unparseable GPRD value are
// dropped with a warning; an empty or structurally invalid file is a
// validation error.
func LoadGPRSeries(path string, log *logger.Logger) ([]contracts.DailyPoint, error) {
	log = log.Component("ingest.gpr")

	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols := indexColumns(header)
	for _, required := range []string{colDate, colGPRD} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %s in %s", contracts.ErrValidation, required, path)
		}
	}

	points := make([]contracts.DailyPoint, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		date, err := contracts.ParseDate(strings.TrimSpace(cell(row, cols, colDate)))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", contracts.ErrValidation, i+2, err)
		}

		value := parseFloat(cell(row, cols, colGPRD))
		if value == nil {
			dropped++
			log.WithField("date", date.String()).Warn("Dropping row with missing GPRD value")
			continue
		}

		points = append(points, contracts.DailyPoint{
			Date:       date,
			Value:      *value,
			N10D:       parseFloat(cell(row, cols, colN10D)),
			Act:        parseFloat(cell(row, cols, colAct)),
			Threat:     parseFloat(cell(row, cols, colThreat)),
			MA7:        parseFloat(cell(row, cols, colMA7)),
			MA30:       parseFloat(cell(row, cols, colMA30)),
			EventLabel: strings.TrimSpace(cell(row, cols, colEvent)),
		})
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in %s", contracts.ErrValidation, path)
	}

	log.WithFields(map[string]interface{}{
		"path":    path,
		"rows":    len(points),
		"dropped": dropped,
	}).Info("Loaded daily risk index series")

	return points, nil
}

// readCSV reads a CSV file, strips markdown code fence lines that
// sometimes wrap exported files, and returns header plus data rows.
func readCSV(path string) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cleaned []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(cleaned, "\n")))
	reader.FieldsPerRecord = -1 // tolerate irregular rows
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: parse %s: %v", contracts.ErrValidation, path, err)
	}
	if len(records) < 2 {
		return nil, nil, fmt.Errorf("%w: no rows found in %s", contracts.ErrValidation, path)
	}
	return records[0], records[1:], nil
}

// indexColumns maps upper-cased trimmed column names to their position.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	return cols
}

// cell returns the named column's value for a row, or "" when the
// column is absent or the row is short.
func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseFloat converts a CSV cell to a float, treating empty cells and
// common missing-value markers as nil. Apostrophe thousands separators
// (Swiss formatting, e.g. 2'847'611.40) are stripped.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "unknown", "na", "n/a", "-", "nan":
		return nil
	}
	s = strings.ReplaceAll(s, "'", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
