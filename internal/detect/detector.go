package detect

import (
	"context"
	"fmt"
	"sort"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

// Detector finds risk events in a normalized daily index series.
// Detection is deterministic and pure: the same series always yields
// the same event list, in the same order.
type Detector struct {
	thresholds contracts.DetectionThresholds
	logger     *logger.Logger
}

// NewDetector creates a detector with production default thresholds.
func NewDetector(log *logger.Logger) *Detector {
	return NewDetectorWithThresholds(contracts.DefaultDetectionThresholds(), log)
}

// NewDetectorWithThresholds creates a detector with custom thresholds.
func NewDetectorWithThresholds(thresholds contracts.DetectionThresholds, log *logger.Logger) *Detector {
	return &Detector{
		thresholds: thresholds,
		logger:     log.Component("detect.detector"),
	}
}

// Detect runs all detectors over the series and returns the combined
// event list sorted by (peak date, event type tag). Quantile spikes and
// short-term spikes always run; episodes and regimes only when
// includeRegimes is set. Short or degenerate series produce zero events,
// never an error.
func (d *Detector) Detect(ctx context.Context, series *contracts.Series, includeRegimes bool) []contracts.RiskEvent {
	if series == nil || series.Len() == 0 {
		return nil
	}

	quantileSpikes := d.detectQuantileSpikes(series)
	shortTermSpikes := d.detectShortTermSpikes(series)

	var episodes, regimes []contracts.RiskEvent
	if includeRegimes {
		episodes = d.detectRuns(series, series.MA7Values(), runParams{
			eventType:           contracts.EventEpisode,
			idPrefix:            "episode",
			label:               "Elevated episode",
			minRunLength:        d.thresholds.MinEpisodeDays,
			thresholdPercentile: d.thresholds.EpisodePercentile,
			severityBase:        10.0,
		})
		regimes = d.detectRuns(series, series.MA30Values(), runParams{
			eventType:           contracts.EventRegime,
			idPrefix:            "regime",
			label:               "Structural regime",
			minRunLength:        d.thresholds.MinRegimeDays,
			thresholdPercentile: d.thresholds.RegimePercentile,
			severityBase:        50.0,
		})
	}

	events := make([]contracts.RiskEvent, 0,
		len(quantileSpikes)+len(shortTermSpikes)+len(episodes)+len(regimes))
	events = append(events, quantileSpikes...)
	events = append(events, shortTermSpikes...)
	events = append(events, episodes...)
	events = append(events, regimes...)

	// Total order: peak date ascending, then event type tag ascending.
	// Detectors may emit overlapping events for the same peak; all are kept.
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].PeakDate.Equal(events[j].PeakDate.Time) {
			return events[i].PeakDate.Before(events[j].PeakDate.Time)
		}
		return events[i].Type < events[j].Type
	})

	d.logger.WithFields(map[string]interface{}{
		"total":             len(events),
		"quantile_spikes":   len(quantileSpikes),
		"short_term_spikes": len(shortTermSpikes),
		"episodes":          len(episodes),
		"regimes":           len(regimes),
	}).Info("Detected risk events")

	return events
}

// detectQuantileSpikes emits one event for every day whose value sits in
// the elevated or extreme tail of the full-history distribution.
func (d *Detector) detectQuantileSpikes(series *contracts.Series) []contracts.RiskEvent {
	vals := series.Values()
	baseline := median(vals)

	var events []contracts.RiskEvent
	for _, p := range series.Points {
		pct := percentileOf(p.Value, vals)

		var eventType contracts.EventType
		var label string
		switch {
		case pct >= d.thresholds.ExtremeSpikeQuantile:
			eventType = contracts.EventExtremeSpike
			label = "Extreme spike"
		case pct >= d.thresholds.ElevatedSpikeQuantile:
			eventType = contracts.EventElevatedSpike
			label = "Elevated spike"
		default:
			continue
		}

		endDate := p.Date.AddDays(d.thresholds.BufferPostDays)
		severity := clamp01(pct)
		events = append(events, contracts.RiskEvent{
			ID:                fmt.Sprintf("quantile-spike-%s", p.Date),
			Type:              eventType,
			StartDate:         p.Date.AddDays(-d.thresholds.BufferPreDays),
			EndDate:           &endDate,
			PeakDate:          p.Date,
			LevelAtPeak:       p.Value,
			DeltaFromBaseline: p.Value - baseline,
			Severity:          &severity,
			Percentile:        pct,
			Label:             label,
		})
	}
	return events
}

// detectShortTermSpikes flags local maxima whose z-score against the
// trailing 30-observation window is at least the threshold. Rows without
// a full window or with zero dispersion are skipped.
func (d *Detector) detectShortTermSpikes(series *contracts.Series) []contracts.RiskEvent {
	vals := series.Values()
	means, stds, ok := rollingMeanStd(vals, 30)

	var events []contracts.RiskEvent
	for i, p := range series.Points {
		if !ok[i] || stds[i] == 0 {
			continue
		}

		z := (p.Value - means[i]) / stds[i]
		if z < d.thresholds.ZThreshold {
			continue
		}

		// Local-maximum filter over +-LocalMaxWindow rows; ties count.
		if !isLocalMax(vals, i, d.thresholds.LocalMaxWindow) {
			continue
		}

		endDate := p.Date.AddDays(d.thresholds.BufferPostDays)
		severity := clamp01(z / 5.0)
		events = append(events, contracts.RiskEvent{
			ID:                fmt.Sprintf("spike-%s", p.Date),
			Type:              contracts.EventShortTermSpike,
			StartDate:         p.Date.AddDays(-d.thresholds.BufferPreDays),
			EndDate:           &endDate,
			PeakDate:          p.Date,
			LevelAtPeak:       p.Value,
			DeltaFromBaseline: p.Value - means[i],
			Severity:          &severity,
			Percentile:        percentileOf(p.Value, vals),
			Label:             "Short-term spike",
		})
	}
	return events
}

// isLocalMax reports whether vals[i] is the maximum within the symmetric
// window of `half` rows on each side (clamped at the edges).
func isLocalMax(vals []float64, i, half int) bool {
	left := i - half
	if left < 0 {
		left = 0
	}
	right := i + half
	if right > len(vals)-1 {
		right = len(vals) - 1
	}
	for j := left; j <= right; j++ {
		if vals[j] > vals[i] {
			return false
		}
	}
	return true
}

type runParams struct {
	eventType           contracts.EventType
	idPrefix            string
	label               string
	minRunLength        int
	thresholdPercentile float64
	severityBase        float64
}

// detectRuns implements the episode/regime detectors: group consecutive
// rows where the smoothed column is at or above its percentile
// threshold, discard short runs, and score the survivors by
// length x height against the column median.
func (d *Detector) detectRuns(series *contracts.Series, column []float64, params runParams) []contracts.RiskEvent {
	if len(column) == 0 {
		return nil
	}

	threshold := percentileLinear(column, params.thresholdPercentile*100.0)
	baseline := median(column)

	var events []contracts.RiskEvent
	runStart := -1
	for i := 0; i <= len(column); i++ {
		inRun := i < len(column) && column[i] >= threshold
		if inRun && runStart < 0 {
			runStart = i
			continue
		}
		if inRun || runStart < 0 {
			continue
		}

		// Run closed at [runStart, i-1].
		events = d.appendRunEvent(events, series, column, runStart, i-1, baseline, params)
		runStart = -1
	}
	return events
}

func (d *Detector) appendRunEvent(events []contracts.RiskEvent, series *contracts.Series,
	column []float64, start, end int, baseline float64, params runParams) []contracts.RiskEvent {

	length := end - start + 1
	if length < params.minRunLength {
		return events
	}

	peakIdx := start
	for j := start + 1; j <= end; j++ {
		if column[j] > column[peakIdx] {
			peakIdx = j
		}
	}
	peakVal := column[peakIdx]

	height := peakVal - baseline
	if height < 0 {
		height = 0
	}
	raw := float64(length) * height / (params.severityBase + baseline)
	if raw > 10.0 {
		raw = 10.0
	}
	severity := clamp01(raw / 10.0)

	startDate := series.Points[start].Date
	endDate := series.Points[end].Date
	events = append(events, contracts.RiskEvent{
		ID:                fmt.Sprintf("%s-%s-%s", params.idPrefix, startDate, endDate),
		Type:              params.eventType,
		StartDate:         startDate,
		EndDate:           &endDate,
		PeakDate:          series.Points[peakIdx].Date,
		LevelAtPeak:       peakVal,
		DeltaFromBaseline: peakVal - baseline,
		Severity:          &severity,
		Percentile:        percentileOf(peakVal, column),
		Label:             params.label,
	})
	return events
}
