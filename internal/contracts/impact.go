package contracts

// Direction is the sign of an industry's response to a risk event,
// derived from the sign of its beta.
type Direction string

const (
	DirectionNegative Direction = "negative"
	DirectionPositive Direction = "positive"
	DirectionNeutral  Direction = "neutral"
)

// Composition summary keys. The composition map always carries exactly
// this key set; counts are stored as float64 for a flat numeric map.
const (
	CompVulnerableWeightShare    = "vulnerable_weight_share"
	CompNonVulnerableWeightShare = "non_vulnerable_weight_share"
	CompVulnerableIndustryCount  = "vulnerable_industry_count"
	CompTotalIndustryCount       = "total_industry_count"
	CompVulnerableIndustryShare  = "vulnerable_industry_share"
	CompNonVulnerableShare       = "non_vulnerable_industry_share"
)

// IndustryImpact is the impact of one risk event on one portfolio
// industry: severity x weight fraction x beta, plus share metrics.
type IndustryImpact struct {
	IndustryID   string `json:"industry_id"`
	IndustryName string `json:"industry_name"`

	PortfolioWeightPct float64 `json:"portfolio_weight_pct"`
	Beta               float64 `json:"beta"`

	ImpactScore float64   `json:"impact_score"`
	Direction   Direction `json:"direction"`

	Sentiment                   *float64 `json:"sentiment,omitempty"`
	ContributionToVulnerability float64  `json:"contribution_to_vulnerability"`

	// Share of this industry's weight relative to all scored industries (0-1).
	WeightShareOfPortfolio float64 `json:"weight_share_of_portfolio"`
	// Share relative to total vulnerable weight; 0 unless Direction is negative.
	WeightShareOfVulnerable float64 `json:"weight_share_of_vulnerable"`
}

// ImpactProfile is the full impact picture of a single risk event on a
// portfolio: per-industry impacts, vulnerable/resilient partitions and
// scalar totals. Read-only once built by the scorer.
type ImpactProfile struct {
	Event RiskEvent `json:"event"`

	Industries []IndustryImpact `json:"industries"`

	// Partitions sorted by |ImpactScore| descending (stable).
	Vulnerable []IndustryImpact `json:"vulnerable_industries"`
	Resilient  []IndustryImpact `json:"resilient_industries"`

	TotalNegative float64 `json:"total_negative_impact"`
	TotalPositive float64 `json:"total_positive_impact"`
	Net           float64 `json:"net_impact"`

	// Exposure-weighted sensitivity at severity 1.0; severity-independent
	// normalization reference for Net.
	BaselineVulnerability float64 `json:"portfolio_vulnerability_baseline"`

	Composition map[string]float64 `json:"vulnerability_composition"`
}

// NetResilient reports whether the portfolio nets out positive under
// this event.
func (p *ImpactProfile) NetResilient() bool {
	return p.Net > 0.0
}
