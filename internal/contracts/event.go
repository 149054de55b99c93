package contracts

// EventType classifies a risk event detected from the daily index series.
// The string tags double as the sort key for same-day events (lexicographic),
// so the detector output order is a stable total order.
type EventType string

const (
	EventShortTermSpike EventType = "short_term_spike"
	EventEpisode        EventType = "episode"
	EventRegime         EventType = "regime"
	EventElevatedSpike  EventType = "elevated_spike"
	EventExtremeSpike   EventType = "extreme_spike"
)

// IsSpike reports whether the type is one of the quantile spike types.
// Quantile spikes take precedence over everything else during selection.
func (t EventType) IsSpike() bool {
	return t == EventElevatedSpike || t == EventExtremeSpike
}

// RiskEvent is a period of elevated geopolitical risk derived from the
// index series: a one-day spike, a multi-week episode, or a structural
// regime. Produced once by the detector and never mutated.
type RiskEvent struct {
	ID   string    `json:"event_id"`
	Type EventType `json:"event_type"`

	StartDate Date  `json:"start_date"`
	EndDate   *Date `json:"end_date,omitempty"` // equals StartDate for one-day events
	PeakDate  Date  `json:"peak_date"`

	LevelAtPeak       float64 `json:"level_at_peak"`
	DeltaFromBaseline float64 `json:"delta_from_baseline"`

	// Severity is a normalized [0,1] intensity score. All downstream
	// scoring assumes this range; a missing value is treated as worst case.
	Severity   *float64 `json:"severity_score"`
	Percentile float64  `json:"percentile"` // peak percentile in the historical distribution [0,1]

	Label string `json:"label,omitempty"`
}

// Contains reports whether the event interval [StartDate, EndDate]
// contains the given date (inclusive). A missing EndDate collapses the
// interval to StartDate.
func (e *RiskEvent) Contains(d Date) bool {
	end := e.StartDate
	if e.EndDate != nil {
		end = *e.EndDate
	}
	return !d.Before(e.StartDate.Time) && !d.After(end.Time)
}

// SeverityOr returns the severity score, or def when missing.
func (e *RiskEvent) SeverityOr(def float64) float64 {
	if e.Severity == nil {
		return def
	}
	return *e.Severity
}
