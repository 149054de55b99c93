package detect

import (
	"sort"

	"github.com/overlaylab/georisk/internal/contracts"
)

// SelectForTargetDate picks the single event most relevant to the target
// date. Quantile spikes (extreme/elevated) are preferred over every
// other type; within the pool, containment wins over proximity. The
// result depends only on event content, never on input order.
//
// Returns nil when events is empty: "no event today" is a valid outcome.
func SelectForTargetDate(events []contracts.RiskEvent, targetDate contracts.Date) *contracts.RiskEvent {
	if len(events) == 0 {
		return nil
	}

	pool := make([]contracts.RiskEvent, 0, len(events))
	for _, e := range events {
		if e.Type.IsSpike() {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, events...)
	}

	contained := make([]contracts.RiskEvent, 0, len(pool))
	for _, e := range pool {
		if e.Contains(targetDate) {
			contained = append(contained, e)
		}
	}

	if len(contained) > 0 {
		// Highest severity first; ties broken by proximity of the peak,
		// then by deterministic (peak date, id) so reordering the input
		// cannot change the winner.
		sort.Slice(contained, func(i, j int) bool {
			si, sj := contained[i].SeverityOr(0.0), contained[j].SeverityOr(0.0)
			if si != sj {
				return si > sj
			}
			di := contained[i].PeakDate.AbsDaysUntil(targetDate)
			dj := contained[j].PeakDate.AbsDaysUntil(targetDate)
			if di != dj {
				return di < dj
			}
			return lessByPeakThenID(&contained[i], &contained[j])
		})
		selected := contained[0]
		return &selected
	}

	// Nothing contains the target date: closest peak wins, earliest
	// peak on distance ties.
	sort.Slice(pool, func(i, j int) bool {
		di := pool[i].PeakDate.AbsDaysUntil(targetDate)
		dj := pool[j].PeakDate.AbsDaysUntil(targetDate)
		if di != dj {
			return di < dj
		}
		return lessByPeakThenID(&pool[i], &pool[j])
	})
	selected := pool[0]
	return &selected
}

func lessByPeakThenID(a, b *contracts.RiskEvent) bool {
	if !a.PeakDate.Equal(b.PeakDate.Time) {
		return a.PeakDate.Before(b.PeakDate.Time)
	}
	return a.ID < b.ID
}
