package contracts

// IndustryExposure is the aggregated portfolio exposure to a single
// risk-sensitive industry: combined weight and weighted-average beta of
// all holdings mapped to that industry.
type IndustryExposure struct {
	IndustryID   string `json:"industry_id"`
	IndustryName string `json:"industry_name"`

	// Total portfolio weight in this industry, percent (0-100).
	PortfolioWeightPct float64  `json:"portfolio_weight_pct"`
	BenchmarkWeightPct *float64 `json:"benchmark_weight_pct,omitempty"`

	// Weight-fraction-weighted average beta across the industry's holdings.
	Beta      float64  `json:"beta"`
	Sentiment *float64 `json:"sentiment,omitempty"`

	// Filled by the vulnerability computation: weightFraction * beta.
	ContributionToVulnerability *float64 `json:"contribution_to_vulnerability,omitempty"`
}

// WeightFraction returns the portfolio weight as a fraction (0-1).
func (e *IndustryExposure) WeightFraction() float64 {
	return e.PortfolioWeightPct / 100.0
}
