package contracts

// Holding is a single portfolio position row as extracted from a fund
// report, together with its industry mapping and risk sensitivities.
// Optional numeric fields are pointers so that a missing beta or
// sentiment never leaks a placeholder value into aggregation math.
type Holding struct {
	SecurityName   string  `json:"security_name"`
	Ticker         string  `json:"ticker,omitempty"`
	ISIN           string  `json:"isin,omitempty"`
	SectorRaw      string  `json:"sector_raw,omitempty"`
	WeightPct      float64 `json:"weight_pct"`
	MarketValueRaw string  `json:"market_value_raw,omitempty"`

	IndustryID   string   `json:"industry_id,omitempty"`
	IndustryName string   `json:"industry_name,omitempty"`
	Beta         *float64 `json:"beta,omitempty"`
	Sentiment    *float64 `json:"sentiment,omitempty"`

	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`

	MappingConfidence *float64 `json:"mapping_confidence,omitempty"`
	MappingRationale  string   `json:"mapping_rationale,omitempty"`
}

// Mappable reports whether the holding carries both an industry mapping
// and a beta, i.e. whether it can participate in exposure aggregation.
func (h *Holding) Mappable() bool {
	return h.IndustryID != "" && h.Beta != nil
}

// PortfolioSnapshot is a single fund snapshot as of a date.
type PortfolioSnapshot struct {
	FundName string    `json:"fund_name"`
	AsOfDate Date      `json:"as_of_date"`
	Holdings []Holding `json:"holdings"`
}

// TotalWeightPct sums the raw holding weights (percent).
func (s *PortfolioSnapshot) TotalWeightPct() float64 {
	var total float64
	for i := range s.Holdings {
		total += s.Holdings[i].WeightPct
	}
	return total
}
