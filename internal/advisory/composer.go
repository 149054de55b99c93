package advisory

import (
	"fmt"
	"strings"

	"github.com/overlaylab/georisk/internal/contracts"
	"github.com/overlaylab/georisk/pkg/logger"
)

// esgBannedIndustryIDs lists industries we never suggest tilting up
// into, regardless of resilience. Compared against lower-cased industry
// ids and names so presentation differences do not weaken the check.
var esgBannedIndustryIDs = map[string]bool{
	"coal":                      true,
	"petroleum_and_natural_gas": true,
	"oil_and_gas":               true,
	"defense":                   true,
	"weapons":                   true,
}

// Composer turns an impact profile into a narrative advisory report.
// Suggestions are phrased as considerations, never orders.
type Composer struct {
	topN   int
	logger *logger.Logger
}

// NewComposer creates a composer taking the top-N industries per list.
func NewComposer(topN int, log *logger.Logger) *Composer {
	if topN <= 0 {
		topN = 5
	}
	return &Composer{topN: topN, logger: log.Component("advisory.composer")}
}

// BuildReport builds the advisory report for one snapshot and one impact
// profile. When the profile carries no industries at all it produces a
// degraded "no mapped holdings" report with empty top lists instead of
// failing.
func (c *Composer) BuildReport(snapshot *contracts.PortfolioSnapshot, profile *contracts.ImpactProfile) *contracts.AdvisoryReport {
	event := profile.Event
	severity := event.SeverityOr(1.0)
	baseline := profile.BaselineVulnerability
	net := profile.Net

	report := &contracts.AdvisoryReport{
		FundName:              snapshot.FundName,
		AsOfDate:              snapshot.AsOfDate,
		Event:                 event,
		Impact:                *profile,
		BaselineVulnerability: baseline,
		NetEventImpact:        net,
	}

	eventPhrase := strings.ReplaceAll(string(event.Type), "_", " ")

	if len(profile.Industries) == 0 {
		report.Summary = fmt.Sprintf(
			"On %s, the risk index experienced a %s with severity %.2f. "+
				"No portfolio holdings could be mapped to risk-sensitive industries for impact analysis; "+
				"generate a full industry mapping to enable per-industry suggestions.",
			event.PeakDate, eventPhrase, severity)
		report.KeyPoints = []string{
			fmt.Sprintf("Detected event type: %s on %s.", eventPhrase, event.PeakDate),
			"No mapped holdings: the portfolio snapshot contains no holdings with an industry mapping or betas.",
			"Action: monitor geopolitical developments until mapping or exposures are available.",
		}
		report.TopVulnerableIndustries = []string{}
		report.TopResilientIndustries = []string{}
		report.Actions = []contracts.AdvisoryAction{{
			Type:             contracts.ActionMonitor,
			Description:      "Monitor geopolitical developments and portfolio exposures; industry-level suggestions require a mapping.",
			Rationale:        "No per-industry exposures were available for impact computation.",
			TargetIndustries: []string{},
			Priority:         "low",
		}}

		c.logger.WithField("fund", snapshot.FundName).Warn("Composed degraded report: no mapped holdings")
		return report
	}

	topVul := topIndustryNames(profile.Vulnerable, c.topN)
	topRes := topIndustryNames(profile.Resilient, c.topN)
	report.TopVulnerableIndustries = topVul
	report.TopResilientIndustries = topRes

	netResilient := profile.NetResilient()
	tilt := "net NEGATIVE risk impact (net vulnerable)"
	if netResilient {
		tilt = "net POSITIVE risk impact (net resilient)"
	}
	report.Summary = fmt.Sprintf(
		"On %s, the risk index experienced a %s with severity %.2f. "+
			"The portfolio shows a %s relative to its baseline vulnerability.",
		event.PeakDate, eventPhrase, severity, tilt)

	report.KeyPoints = []string{
		fmt.Sprintf("Detected event type: %s on %s with percentile %.1f%%.", eventPhrase, event.PeakDate, event.Percentile*100),
		fmt.Sprintf("Portfolio vulnerability baseline (impact at severity=1.0): %.4f.", baseline),
		fmt.Sprintf("Net event impact at severity %.2f: %.4f.", severity, net),
	}
	if netResilient {
		report.KeyPoints = append(report.KeyPoints,
			"Net positive impact: portfolio tends to benefit under this event.")
	} else {
		report.KeyPoints = append(report.KeyPoints,
			"Net negative impact: portfolio is tilted towards risk-sensitive industries and is more exposed during this event.")
	}
	report.KeyPoints = append(report.KeyPoints,
		fmt.Sprintf("Top vulnerable industries in the portfolio: %s.", nameList(topVul)),
		fmt.Sprintf("Top resilient industries in the portfolio: %s.", nameList(topRes)),
	)
	if event.Severity == nil {
		report.KeyPoints = append(report.KeyPoints,
			"Note: event severity was missing in the source data; a worst-case fallback severity=1.00 was used for scoring.")
	}
	if netResilient {
		report.KeyPoints = append(report.KeyPoints,
			"Portfolio tilt: net resilient to this event; consider maintaining current positioning and monitor for reversal.")
	}

	report.Actions = c.buildActions(profile, severity, topVul)

	c.logger.WithFields(map[string]interface{}{
		"fund":          snapshot.FundName,
		"net_resilient": netResilient,
		"actions":       len(report.Actions),
	}).Info("Composed advisory report")

	return report
}

// buildActions derives advisory suggestions from the impact profile.
// Tilt-up suggestions respect the ESG banned list.
func (c *Composer) buildActions(profile *contracts.ImpactProfile, severity float64, topVul []string) []contracts.AdvisoryAction {
	priority := severityToPriority(severity)
	var actions []contracts.AdvisoryAction

	if len(profile.Vulnerable) > 0 && !profile.NetResilient() {
		actions = append(actions, contracts.AdvisoryAction{
			Type:             contracts.ActionTiltDown,
			Description:      "Consider reducing exposure to the most risk-sensitive industries while the event window is open.",
			Rationale:        "These industries carry the largest negative impact scores under the detected event.",
			TargetIndustries: topVul,
			Priority:         priority,
		})
		if severity >= 0.7 {
			actions = append(actions, contracts.AdvisoryAction{
				Type:             contracts.ActionHedge,
				Description:      "Consider hedging the aggregate negative exposure for the duration of the event window.",
				Rationale:        fmt.Sprintf("Event severity %.2f is high and the portfolio nets out vulnerable.", severity),
				TargetIndustries: topVul,
				Priority:         "high",
			})
		}
	}

	allowedResilient := make([]string, 0, len(profile.Resilient))
	for i := range profile.Resilient {
		it := &profile.Resilient[i]
		if esgBanned(it.IndustryID, it.IndustryName) {
			continue
		}
		allowedResilient = append(allowedResilient, it.IndustryName)
		if len(allowedResilient) == c.topN {
			break
		}
	}
	if len(allowedResilient) > 0 {
		actions = append(actions, contracts.AdvisoryAction{
			Type:             contracts.ActionTiltUp,
			Description:      "Consider leaning into industries that historically benefit under elevated risk, within mandate limits.",
			Rationale:        "These industries show positive impact scores and pass the ESG constraint screen.",
			TargetIndustries: allowedResilient,
			Priority:         priority,
		})
	}

	actions = append(actions, contracts.AdvisoryAction{
		Type:             contracts.ActionMonitor,
		Description:      "Monitor the risk index for follow-on spikes or a developing episode.",
		Rationale:        "Spike events cluster; a contained event today does not preclude escalation.",
		TargetIndustries: []string{},
		Priority:         "medium",
	})
	return actions
}

func esgBanned(id, name string) bool {
	return esgBannedIndustryIDs[strings.ToLower(id)] || esgBannedIndustryIDs[strings.ToLower(name)]
}

// severityToPriority maps a normalized severity score to a priority label.
func severityToPriority(severity float64) string {
	switch {
	case severity >= 0.7:
		return "high"
	case severity >= 0.3:
		return "medium"
	default:
		return "low"
	}
}

func topIndustryNames(impacts []contracts.IndustryImpact, n int) []string {
	if n > len(impacts) {
		n = len(impacts)
	}
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		names = append(names, impacts[i].IndustryName)
	}
	return names
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
