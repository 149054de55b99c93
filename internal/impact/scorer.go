package impact

import (
	"context"
	"math"
	"sort"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/internal/exposure"
	"github.com/overlaylab/georisk/pkg/logger"
)

// epsilon is the beta dead zone treated as neutral.
const epsilon = 1e-8

// Scorer combines one event's severity with per-industry weights and
// betas into a full impact profile.
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new impact scorer.
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{logger: log.Component("impact.scorer")}
}

// Score computes the impact profile for one event over the aggregated
// exposures:
//
//	impactScore = severity * (weightPct / 100) * beta
//
// Direction follows the sign of beta. Exposures with zero weight are
// excluded from scoring but still count toward the baseline
// vulnerability. A missing severity falls back to 1.0 (worst case).
func (s *Scorer) Score(ctx context.Context, event contracts.RiskEvent, exposures []contracts.IndustryExposure) *contracts.ImpactProfile {
	severity := event.SeverityOr(1.0)
	if event.Severity == nil {
		s.logger.WithField("event_id", event.ID).
			Warn("Event severity missing, defaulting to 1.0 for impact calculation")
	}

	baseline, annotated := exposure.ComputeVulnerability(exposures)

	industries := make([]contracts.IndustryImpact, 0, len(annotated))
	var totalNegative, totalPositive float64

	for i := range annotated {
		e := &annotated[i]
		if e.PortfolioWeightPct <= 0.0 {
			continue
		}

		score := severity * e.WeightFraction() * e.Beta

		var direction contracts.Direction
		switch {
		case e.Beta < -epsilon:
			direction = contracts.DirectionNegative
			totalNegative += score
		case e.Beta > epsilon:
			direction = contracts.DirectionPositive
			totalPositive += score
		default:
			direction = contracts.DirectionNeutral
		}

		contrib := e.WeightFraction() * e.Beta
		if e.ContributionToVulnerability != nil {
			contrib = *e.ContributionToVulnerability
		}

		industries = append(industries, contracts.IndustryImpact{
			IndustryID:                  e.IndustryID,
			IndustryName:                e.IndustryName,
			PortfolioWeightPct:          e.PortfolioWeightPct,
			Beta:                        e.Beta,
			ImpactScore:                 score,
			Direction:                   direction,
			Sentiment:                   e.Sentiment,
			ContributionToVulnerability: contrib,
		})
	}

	vulnerable := partition(industries, contracts.DirectionNegative)
	resilient := partition(industries, contracts.DirectionPositive)

	profile := &contracts.ImpactProfile{
		Event:                 event,
		Industries:            industries,
		Vulnerable:            vulnerable,
		Resilient:             resilient,
		TotalNegative:         totalNegative,
		TotalPositive:         totalPositive,
		Net:                   totalPositive + totalNegative,
		BaselineVulnerability: baseline,
	}

	fillShares(profile)

	s.logger.WithFields(map[string]interface{}{
		"event_id":   event.ID,
		"severity":   severity,
		"industries": len(industries),
		"vulnerable": len(vulnerable),
		"resilient":  len(resilient),
		"net":        profile.Net,
	}).Info("Scored event impact")

	return profile
}

// partition extracts impacts of one direction, sorted by |impact|
// descending; equal magnitudes keep the aggregator's emission order.
func partition(industries []contracts.IndustryImpact, dir contracts.Direction) []contracts.IndustryImpact {
	out := make([]contracts.IndustryImpact, 0, len(industries))
	for _, it := range industries {
		if it.Direction == dir {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].ImpactScore) > math.Abs(out[j].ImpactScore)
	})
	return out
}

// fillShares computes weight shares and the composition summary.
func fillShares(profile *contracts.ImpactProfile) {
	var totalWeight, vulnerableWeight float64
	for i := range profile.Industries {
		totalWeight += profile.Industries[i].PortfolioWeightPct
	}
	for i := range profile.Vulnerable {
		vulnerableWeight += profile.Vulnerable[i].PortfolioWeightPct
	}

	setShares := func(impacts []contracts.IndustryImpact) {
		for i := range impacts {
			it := &impacts[i]
			if totalWeight > 0 {
				it.WeightShareOfPortfolio = it.PortfolioWeightPct / totalWeight
			}
			if vulnerableWeight > 0 && it.Direction == contracts.DirectionNegative {
				it.WeightShareOfVulnerable = it.PortfolioWeightPct / vulnerableWeight
			}
		}
	}
	setShares(profile.Industries)
	setShares(profile.Vulnerable)
	setShares(profile.Resilient)

	vulnerableCount := len(profile.Vulnerable)
	totalCount := len(profile.Industries)

	weightShare := 0.0
	if totalWeight > 0 {
		weightShare = vulnerableWeight / totalWeight
	}
	countShare := 0.0
	nonCountShare := 0.0
	if totalCount > 0 {
		countShare = float64(vulnerableCount) / float64(totalCount)
		nonCountShare = 1.0 - countShare
	}

	profile.Composition = map[string]float64{
		contracts.CompVulnerableWeightShare:    weightShare,
		contracts.CompNonVulnerableWeightShare: 1.0 - weightShare,
		contracts.CompVulnerableIndustryCount:  float64(vulnerableCount),
		contracts.CompTotalIndustryCount:       float64(totalCount),
		contracts.CompVulnerableIndustryShare:  countShare,
		contracts.CompNonVulnerableShare:       nonCountShare,
	}
}
