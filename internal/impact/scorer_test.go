package impact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

func fptr(v float64) *float64 { return &v }

func eventWithSeverity(severity *float64) contracts.RiskEvent {
	return contracts.RiskEvent{
		ID:       "spike-2024-02-10",
		Type:     contracts.EventShortTermSpike,
		PeakDate: contracts.NewDate(2024, 2, 10),
		Severity: severity,
	}
}

func exposureOf(id string, weightPct, beta float64) contracts.IndustryExposure {
	return contracts.IndustryExposure{
		IndustryID:         id,
		IndustryName:       id,
		PortfolioWeightPct: weightPct,
		Beta:               beta,
	}
}

func TestScore_SingleIndustry(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{exposureOf("energy", 5.0, -0.1)}

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(0.4)), exposures)

	require.Len(t, profile.Industries, 1)
	it := profile.Industries[0]
	// 0.4 * 0.05 * -0.1 = -0.002
	assert.InDelta(t, -0.002, it.ImpactScore, 1e-12)
	assert.Equal(t, contracts.DirectionNegative, it.Direction)
	assert.InDelta(t, -0.002, profile.TotalNegative, 1e-12)
	assert.Zero(t, profile.TotalPositive)
	assert.InDelta(t, -0.002, profile.Net, 1e-12)
	assert.False(t, profile.NetResilient())
}

func TestScore_SeverityProportionality(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{
		exposureOf("energy", 40.0, -0.2),
		exposureOf("defense", 5.0, 0.8),
	}

	half := scorer.Score(context.Background(), eventWithSeverity(fptr(0.5)), exposures)
	full := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), exposures)

	assert.InDelta(t, 2*half.Net, full.Net, 1e-12)
	assert.InDelta(t, 2*half.TotalNegative, full.TotalNegative, 1e-12)
	assert.InDelta(t, 2*half.TotalPositive, full.TotalPositive, 1e-12)
	for i := range half.Industries {
		assert.InDelta(t, 2*half.Industries[i].ImpactScore, full.Industries[i].ImpactScore, 1e-12)
	}
	// The baseline ignores severity entirely.
	assert.InDelta(t, half.BaselineVulnerability, full.BaselineVulnerability, 1e-12)
}

func TestScore_MissingSeverityDefaultsToWorstCase(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{exposureOf("energy", 10.0, -0.5)}

	profile := scorer.Score(context.Background(), eventWithSeverity(nil), exposures)

	// severity 1.0: 1.0 * 0.10 * -0.5 = -0.05
	require.Len(t, profile.Industries, 1)
	assert.InDelta(t, -0.05, profile.Industries[0].ImpactScore, 1e-12)
}

func TestScore_PartitionsByBetaSign(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{
		exposureOf("energy", 10.0, -0.5),
		exposureOf("defense", 10.0, 0.8),
		exposureOf("utilities", 10.0, 0.0),
	}

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), exposures)

	require.Len(t, profile.Vulnerable, 1)
	assert.Equal(t, "energy", profile.Vulnerable[0].IndustryID)
	require.Len(t, profile.Resilient, 1)
	assert.Equal(t, "defense", profile.Resilient[0].IndustryID)

	require.Len(t, profile.Industries, 3)
	assert.Equal(t, contracts.DirectionNeutral, profile.Industries[2].Direction)
	assert.Zero(t, profile.Industries[2].ImpactScore)
}

func TestScore_PartitionsSortedByMagnitude(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{
		exposureOf("small", 10.0, -0.1),
		exposureOf("big", 10.0, -0.9),
		exposureOf("mid", 10.0, -0.5),
	}

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), exposures)

	require.Len(t, profile.Vulnerable, 3)
	assert.Equal(t, "big", profile.Vulnerable[0].IndustryID)
	assert.Equal(t, "mid", profile.Vulnerable[1].IndustryID)
	assert.Equal(t, "small", profile.Vulnerable[2].IndustryID)
}

func TestScore_SkipsZeroWeightButKeepsBaseline(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{
		exposureOf("energy", 10.0, -0.5),
		exposureOf("phantom", 0.0, 3.0),
	}

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), exposures)

	require.Len(t, profile.Industries, 1)
	assert.Equal(t, "energy", profile.Industries[0].IndustryID)
	// Baseline comes from all exposures; the phantom contributes 0 anyway.
	assert.InDelta(t, -0.05, profile.BaselineVulnerability, 1e-12)
}

func TestScore_CompositionKeys(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{
		exposureOf("energy", 30.0, -0.5),
		exposureOf("defense", 10.0, 0.8),
	}

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), exposures)

	comp := profile.Composition
	require.Len(t, comp, 6)
	assert.InDelta(t, 0.75, comp[contracts.CompVulnerableWeightShare], 1e-12)
	assert.InDelta(t, 0.25, comp[contracts.CompNonVulnerableWeightShare], 1e-12)
	assert.InDelta(t, 1.0, comp[contracts.CompVulnerableIndustryCount], 1e-12)
	assert.InDelta(t, 2.0, comp[contracts.CompTotalIndustryCount], 1e-12)
	assert.InDelta(t, 0.5, comp[contracts.CompVulnerableIndustryShare], 1e-12)
	assert.InDelta(t, 0.5, comp[contracts.CompNonVulnerableShare], 1e-12)
}

func TestScore_CompositionOnEmptyExposures(t *testing.T) {
	scorer := NewScorer(logger.Nop())

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), nil)

	comp := profile.Composition
	require.Len(t, comp, 6)
	assert.Zero(t, comp[contracts.CompVulnerableWeightShare])
	assert.InDelta(t, 1.0, comp[contracts.CompNonVulnerableWeightShare], 1e-12)
	assert.Zero(t, comp[contracts.CompTotalIndustryCount])
	assert.Zero(t, comp[contracts.CompVulnerableIndustryShare])
	assert.Zero(t, comp[contracts.CompNonVulnerableShare])
}

func TestScore_WeightShares(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{
		exposureOf("energy", 30.0, -0.5),
		exposureOf("shipping", 10.0, -0.2),
		exposureOf("defense", 10.0, 0.8),
	}

	profile := scorer.Score(context.Background(), eventWithSeverity(fptr(1.0)), exposures)

	require.Len(t, profile.Vulnerable, 2)
	energy := profile.Vulnerable[0]
	assert.Equal(t, "energy", energy.IndustryID)
	assert.InDelta(t, 0.6, energy.WeightShareOfPortfolio, 1e-12)
	assert.InDelta(t, 0.75, energy.WeightShareOfVulnerable, 1e-12)

	require.Len(t, profile.Resilient, 1)
	defense := profile.Resilient[0]
	assert.InDelta(t, 0.2, defense.WeightShareOfPortfolio, 1e-12)
	assert.Zero(t, defense.WeightShareOfVulnerable)
}

func TestScore_DoesNotMutateExposures(t *testing.T) {
	scorer := NewScorer(logger.Nop())
	exposures := []contracts.IndustryExposure{exposureOf("energy", 10.0, -0.5)}

	scorer.Score(context.Background(), eventWithSeverity(fptr(0.5)), exposures)
	assert.Nil(t, exposures[0].ContributionToVulnerability)
}
