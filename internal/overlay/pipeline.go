package overlay

import (
	"context"
	"errors"
	"fmt"

	"github.com/overlaylab/georisk/internal/advisory"
	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/internal/detect"
	"github.com/overlaylab/georisk/internal/exposure"
	"github.com/overlaylab/georisk/internal/impact"
	"github.com/overlaylab/georisk/internal/overlayconfig"
	"github.com/overlaylab/georisk/internal/series"
	"github.com/overlaylab/georisk/pkg/logger"
)

// ErrNoEvents signals the clean "nothing to report" outcome: the series
// produced no events, or none was relevant to the target date.
var ErrNoEvents = errors.New("no risk events detected")

// Pipeline runs the full overlay as one atomic unit of work per
// (series, holdings, target date) triple: normalize, detect, select,
// aggregate, score, compose. Single-threaded and synchronous; callers
// needing parallelism run independent pipelines over disjoint inputs.
type Pipeline struct {
	cfg        *overlayconfig.Config
	normalizer *series.Normalizer
	detector   *detect.Detector
	aggregator *exposure.Aggregator
	scorer     *impact.Scorer
	composer   *advisory.Composer
	logger     *logger.Logger
}

// New wires a pipeline from a strategy config.
func New(cfg *overlayconfig.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		normalizer: series.NewNormalizer(log),
		detector:   detect.NewDetectorWithThresholds(cfg.Thresholds(), log),
		aggregator: exposure.NewAggregator(log),
		scorer:     impact.NewScorer(log),
		composer:   advisory.NewComposer(cfg.Advisory.TopIndustries, log),
		logger:     log.Component("overlay.pipeline"),
	}
}

// Result bundles everything one run produces.
type Result struct {
	Series    *contracts.Series
	Events    []contracts.RiskEvent
	Selected  *contracts.RiskEvent
	Exposures []contracts.IndustryExposure
	Profile   *contracts.ImpactProfile
	Report    *contracts.AdvisoryReport
}

// Run executes the pipeline. Returns ErrNoEvents (wrapped) when
// detection finds nothing; structural input problems surface as
// contracts.ErrValidation.
func (p *Pipeline) Run(ctx context.Context, points []contracts.DailyPoint,
	snapshot *contracts.PortfolioSnapshot, targetDate contracts.Date, includeRegimes bool) (*Result, error) {

	normalized, err := p.normalizer.Normalize(points)
	if err != nil {
		return nil, err
	}

	events := p.detector.Detect(ctx, normalized, includeRegimes)
	if len(events) == 0 {
		return &Result{Series: normalized}, fmt.Errorf("target %s: %w", targetDate, ErrNoEvents)
	}

	selected := detect.SelectForTargetDate(events, targetDate)
	if selected == nil {
		return &Result{Series: normalized, Events: events}, fmt.Errorf("target %s: %w", targetDate, ErrNoEvents)
	}

	exposures := p.aggregator.Aggregate(ctx, snapshot)
	profile := p.scorer.Score(ctx, *selected, exposures)
	report := p.composer.BuildReport(snapshot, profile)

	p.logger.WithFields(map[string]interface{}{
		"fund":        snapshot.FundName,
		"target_date": targetDate.String(),
		"event_id":    selected.ID,
		"event_type":  string(selected.Type),
		"net_impact":  profile.Net,
	}).Info("Overlay pipeline run complete")

	return &Result{
		Series:    normalized,
		Events:    events,
		Selected:  selected,
		Exposures: exposures,
		Profile:   profile,
		Report:    report,
	}, nil
}
