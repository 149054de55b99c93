package exposure

import (
	"context"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

// epsilon below which a total weight fraction is treated as zero.
const epsilon = 1e-8

// Aggregator groups portfolio holdings by industry and computes the
// weighted-average beta and summary sentiment per industry.
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a new aggregator.
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log.Component("exposure.aggregator")}
}

// Aggregate computes one IndustryExposure per distinct industry among
// the mappable holdings. Holdings missing an industry id or a beta are
// excluded with a warning. Industries whose total weight fraction is
// effectively zero are skipped entirely rather than emitting a
// divide-by-zero beta. Output order is first-encounter order of the
// industry ids in the holdings list.
func (a *Aggregator) Aggregate(ctx context.Context, snapshot *contracts.PortfolioSnapshot) []contracts.IndustryExposure {
	groups := make(map[string][]*contracts.Holding)
	names := make(map[string]string)
	var order []string

	excluded := 0
	for i := range snapshot.Holdings {
		h := &snapshot.Holdings[i]
		if !h.Mappable() {
			excluded++
			a.logger.WithFields(map[string]interface{}{
				"security":    h.SecurityName,
				"industry_id": h.IndustryID,
				"has_beta":    h.Beta != nil,
			}).Warn("Excluding holding without industry mapping or beta")
			continue
		}
		if _, seen := groups[h.IndustryID]; !seen {
			order = append(order, h.IndustryID)
		}
		groups[h.IndustryID] = append(groups[h.IndustryID], h)
		if _, ok := names[h.IndustryID]; !ok && h.IndustryName != "" {
			names[h.IndustryID] = h.IndustryName
		}
	}

	exposures := make([]contracts.IndustryExposure, 0, len(order))
	for _, id := range order {
		holdings := groups[id]

		var weightPct, weightedNum, weightedDen float64
		var sentiments []float64
		for _, h := range holdings {
			weightPct += h.WeightPct
			frac := h.WeightPct / 100.0
			weightedNum += frac * *h.Beta
			weightedDen += frac
			if h.Sentiment != nil {
				sentiments = append(sentiments, *h.Sentiment)
			}
		}

		if weightedDen <= epsilon {
			// Weighted beta is undefined for a zero total weight fraction.
			a.logger.WithField("industry_id", id).
				Warn("Skipping industry with zero total weight fraction, cannot compute weighted beta")
			continue
		}

		name := names[id]
		if name == "" {
			name = id
		}

		exp := contracts.IndustryExposure{
			IndustryID:         id,
			IndustryName:       name,
			PortfolioWeightPct: weightPct,
			Beta:               weightedNum / weightedDen,
		}
		if len(sentiments) > 0 {
			var sum float64
			for _, s := range sentiments {
				sum += s
			}
			avg := sum / float64(len(sentiments))
			exp.Sentiment = &avg
		}
		exposures = append(exposures, exp)
	}

	a.logger.WithFields(map[string]interface{}{
		"industries":        len(exposures),
		"holdings":          len(snapshot.Holdings),
		"excluded_holdings": excluded,
	}).Info("Aggregated industry exposures")

	return exposures
}

// ComputeVulnerability returns the portfolio's exposure-weighted
// sensitivity, sum(weightFraction * beta) across exposures, together
// with a copy of the exposures annotated with each industry's own
// contribution. The input slice is never mutated, so the same exposure
// list can be reused across event evaluations.
func ComputeVulnerability(exposures []contracts.IndustryExposure) (float64, []contracts.IndustryExposure) {
	annotated := make([]contracts.IndustryExposure, len(exposures))
	copy(annotated, exposures)

	var total float64
	for i := range annotated {
		contrib := 0.0
		if frac := annotated[i].WeightFraction(); frac != 0.0 {
			contrib = frac * annotated[i].Beta
			total += contrib
		}
		c := contrib
		annotated[i].ContributionToVulnerability = &c
	}
	return total, annotated
}
