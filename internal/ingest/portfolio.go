package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

// Portfolio CSV column names (lower-case, as exported by the mapping
// pipeline).
const (
	colFundName     = "fund_name"
	colAsOfDate     = "as_of_date"
	colSecurityName = "security_name_report"
	colTicker       = "ticker_guess"
	colISIN         = "isin_guess"
	colSectorRaw    = "sector_raw"
	colWeightPct    = "weight_pct"
	colMarketValue  = "market_value_raw"
	colIndustryName = "fed_industry_name"
	colIndustryID   = "fed_industry_id"
	colBeta         = "gpr_beta"
	colSentiment    = "gpr_sentiment"
	colRegion       = "region_guess"
	colCountry      = "country_guess"
	colMapConf      = "mapping_confidence"
	colMapRationale = "mapping_rationale_short"
)

// PortfolioFilter optionally restricts the rows loaded from a multi-fund
// CSV export.
type PortfolioFilter struct {
	FundName string // exact match, empty = no filter
	AsOfDate string // exact match on the raw cell, empty = no filter
}

// LoadPortfolio reads a fund holdings CSV (with industry mapping and
// betas) into a snapshot. The file must resolve to exactly one fund
// name and one as-of date after filtering. Unparseable weights become
// 0.0 with a warning; a total weight outside [95, 105] percent is
// flagged but not fatal.
func LoadPortfolio(path string, filter PortfolioFilter, log *logger.Logger) (*contracts.PortfolioSnapshot, error) {
	log = log.Component("ingest.portfolio")

	header, rawRows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	cols := indexLowerColumns(header)
	for _, required := range []string{colSecurityName, colWeightPct} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column %s in %s", contracts.ErrValidation, required, path)
		}
	}

	rows := filterRows(rawRows, cols, filter)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows found in %s for fund=%q as_of_date=%q",
			contracts.ErrValidation, path, filter.FundName, filter.AsOfDate)
	}

	fundName, err := uniqueValue(rows, cols, colFundName, path)
	if err != nil {
		return nil, err
	}
	asOfRaw, err := uniqueValue(rows, cols, colAsOfDate, path)
	if err != nil {
		return nil, err
	}
	asOfDate, err := contracts.ParseDate(asOfRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: as_of_date: %v", contracts.ErrValidation, err)
	}

	holdings := make([]contracts.Holding, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(cell(row, cols, colSecurityName))

		weight := parseFloat(cell(row, cols, colWeightPct))
		if weight == nil {
			log.WithField("security", name).Warn("Unparseable weight_pct, treating as 0.0")
			zero := 0.0
			weight = &zero
		}

		holdings = append(holdings, contracts.Holding{
			SecurityName:      name,
			Ticker:            strings.TrimSpace(cell(row, cols, colTicker)),
			ISIN:              strings.TrimSpace(cell(row, cols, colISIN)),
			SectorRaw:         strings.TrimSpace(cell(row, cols, colSectorRaw)),
			WeightPct:         *weight,
			MarketValueRaw:    strings.TrimSpace(cell(row, cols, colMarketValue)),
			IndustryID:        strings.TrimSpace(cell(row, cols, colIndustryID)),
			IndustryName:      strings.TrimSpace(cell(row, cols, colIndustryName)),
			Beta:              parseFloat(cell(row, cols, colBeta)),
			Sentiment:         parseFloat(cell(row, cols, colSentiment)),
			Region:            strings.TrimSpace(cell(row, cols, colRegion)),
			Country:           strings.TrimSpace(cell(row, cols, colCountry)),
			MappingConfidence: parseFloat(cell(row, cols, colMapConf)),
			MappingRationale:  strings.TrimSpace(cell(row, cols, colMapRationale)),
		})
	}

	snapshot := &contracts.PortfolioSnapshot{
		FundName: fundName,
		AsOfDate: asOfDate,
		Holdings: holdings,
	}

	total := snapshot.TotalWeightPct()
	if total < 95.0 || total > 105.0 {
		log.WithField("total_weight_pct", total).
			Warn("Total portfolio weight outside [95, 105], check the input CSV for missing or extra rows")
	}

	log.WithFields(map[string]interface{}{
		"fund":             fundName,
		"as_of_date":       asOfDate.String(),
		"holdings":         len(holdings),
		"total_weight_pct": total,
	}).Info("Loaded portfolio snapshot")

	return snapshot, nil
}

func indexLowerColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func filterRows(rows [][]string, cols map[string]int, filter PortfolioFilter) [][]string {
	out := rows[:0:0]
	for _, row := range rows {
		if filter.FundName != "" && strings.TrimSpace(cell(row, cols, colFundName)) != filter.FundName {
			continue
		}
		if filter.AsOfDate != "" && strings.TrimSpace(cell(row, cols, colAsOfDate)) != filter.AsOfDate {
			continue
		}
		out = append(out, row)
	}
	return out
}

// uniqueValue requires exactly one distinct non-empty value for a column
// across the rows.
func uniqueValue(rows [][]string, cols map[string]int, column, path string) (string, error) {
	seen := make(map[string]bool)
	for _, row := range rows {
		v := strings.TrimSpace(cell(row, cols, column))
		if v != "" {
			seen[v] = true
		}
	}
	if len(seen) != 1 {
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		return "", fmt.Errorf("%w: expected exactly one %s in %s, got %v", contracts.ErrValidation, column, path, values)
	}
	for v := range seen {
		return v, nil
	}
	return "", nil
}
