package contracts

// DailyPoint is one raw daily observation of the geopolitical risk index,
// as handed over by the ingestion layer. Moving averages are optional;
// the series normalizer fills them when absent.
type DailyPoint struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"` // daily index level (GPRD)

	N10D       *float64 `json:"n10d,omitempty"`
	Act        *float64 `json:"act,omitempty"`    // acts sub-index
	Threat     *float64 `json:"threat,omitempty"` // threats sub-index
	MA7        *float64 `json:"ma7,omitempty"`
	MA30       *float64 `json:"ma30,omitempty"`
	EventLabel string   `json:"event_label,omitempty"`
}

// Observation is one normalized daily observation: sorted by date,
// unique dates, moving averages always present. Immutable after the
// normalizer builds it.
type Observation struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
	MA7   float64 `json:"ma7"`
	MA30  float64 `json:"ma30"`
}

// Series is the normalized daily index table the detectors operate on.
type Series struct {
	Points []Observation `json:"points"`
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Points)
}

// Values returns the primary value column.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// MA7Values returns the 7-day moving average column.
func (s *Series) MA7Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.MA7
	}
	return out
}

// MA30Values returns the 30-day moving average column.
func (s *Series) MA30Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.MA30
	}
	return out
}
