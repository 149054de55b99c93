package contracts

// ActionType classifies an advisory suggestion.
type ActionType string

const (
	ActionTiltDown ActionType = "tilt_down"
	ActionTiltUp   ActionType = "tilt_up"
	ActionHedge    ActionType = "hedge"
	ActionMonitor  ActionType = "monitor"
)

// AdvisoryAction is one suggested consideration. Advisory in tone,
// never an order.
type AdvisoryAction struct {
	Type             ActionType `json:"action_type"`
	Description      string     `json:"description"`
	Rationale        string     `json:"rationale"`
	TargetIndustries []string   `json:"target_industries"`
	Priority         string     `json:"priority,omitempty"` // high, medium, low
}

// AdvisoryReport is the final narrative output: snapshot identity, the
// selected event, the impact profile and human-readable findings.
type AdvisoryReport struct {
	FundName string `json:"fund_name"`
	AsOfDate Date   `json:"as_of_date"`

	Event  RiskEvent     `json:"event"`
	Impact ImpactProfile `json:"impact_profile"`

	BaselineVulnerability float64 `json:"portfolio_vulnerability_baseline"`
	NetEventImpact        float64 `json:"net_event_impact"`

	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`

	TopVulnerableIndustries []string `json:"top_vulnerable_industries"`
	TopResilientIndustries  []string `json:"top_resilient_industries"`

	Actions []AdvisoryAction `json:"actions"`
}
