package series

import (
	"fmt"
	"math"
	"sort"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

// ErrEmptySeries is returned when no usable observations remain after
// dropping rows with a missing primary value.
var ErrEmptySeries = fmt.Errorf("%w: series is empty", contracts.ErrValidation)

// Normalizer turns raw daily observations into a sorted, gap-tolerant
// table with the 7/30-day trailing means filled.
type Normalizer struct {
	logger *logger.Logger
}

// NewNormalizer creates a new normalizer.
func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{logger: log.Component("series.normalizer")}
}

// Normalize sorts the raw points by date, drops rows with a missing or
// non-finite primary value, deduplicates dates (first occurrence wins)
// and fills the moving-average columns.
//
// Moving averages are column-level: a provided column is used as-is only
// when every row carries it; otherwise the whole column is recomputed as
// a trailing rolling mean by row position, with a shrinking window at
// the start of the series (minimum window 1).
func (n *Normalizer) Normalize(raw []contracts.DailyPoint) (*contracts.Series, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("normalize: %w", ErrEmptySeries)
	}

	points := make([]contracts.DailyPoint, 0, len(raw))
	dropped := 0
	for _, p := range raw {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			dropped++
			continue
		}
		points = append(points, p)
	}
	if dropped > 0 {
		n.logger.WithField("dropped_rows", dropped).Warn("Dropped observations with a missing primary value")
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("normalize: all %d rows missing primary value: %w", len(raw), ErrEmptySeries)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date.Time)
	})

	// Unique dates: keep the first occurrence per date.
	deduped := points[:0]
	for i, p := range points {
		if i > 0 && p.Date.Equal(deduped[len(deduped)-1].Date.Time) {
			n.logger.WithField("date", p.Date.String()).Warn("Duplicate observation date, keeping first occurrence")
			continue
		}
		deduped = append(deduped, p)
	}
	points = deduped

	out := &contracts.Series{Points: make([]contracts.Observation, len(points))}
	for i, p := range points {
		out.Points[i] = contracts.Observation{Date: p.Date, Value: p.Value}
	}

	fillColumn(out, points, 7, func(p *contracts.DailyPoint) *float64 { return p.MA7 },
		func(o *contracts.Observation, v float64) { o.MA7 = v })
	fillColumn(out, points, 30, func(p *contracts.DailyPoint) *float64 { return p.MA30 },
		func(o *contracts.Observation, v float64) { o.MA30 = v })

	n.logger.WithFields(map[string]interface{}{
		"rows":    len(out.Points),
		"from":    out.Points[0].Date.String(),
		"to":      out.Points[len(out.Points)-1].Date.String(),
		"dropped": dropped,
	}).Info("Normalized daily series")

	return out, nil
}

// fillColumn copies a fully-provided moving-average column or recomputes
// it as a trailing mean over the last `window` rows.
func fillColumn(out *contracts.Series, points []contracts.DailyPoint, window int,
	get func(*contracts.DailyPoint) *float64, set func(*contracts.Observation, float64)) {

	complete := true
	for i := range points {
		v := get(&points[i])
		if v == nil || math.IsNaN(*v) {
			complete = false
			break
		}
	}

	if complete {
		for i := range points {
			set(&out.Points[i], *get(&points[i]))
		}
		return
	}

	means := trailingMean(values(points), window)
	for i := range out.Points {
		set(&out.Points[i], means[i])
	}
}

func values(points []contracts.DailyPoint) []float64 {
	out := make([]float64, len(points))
	for i := range points {
		out[i] = points[i].Value
	}
	return out
}

// trailingMean computes the rolling mean over the last `window` values
// by row position, shrinking at the start of the series.
func trailingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	var sum float64
	for i, v := range vals {
		sum += v
		if i >= window {
			sum -= vals[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}
