package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlaylab/georisk/internal/contracts"
)

func spikeEvent(id string, typ contracts.EventType, peak int, severity float64) contracts.RiskEvent {
	end := day(peak + 2)
	return contracts.RiskEvent{
		ID:        id,
		Type:      typ,
		StartDate: day(peak - 7),
		EndDate:   &end,
		PeakDate:  day(peak),
		Severity:  &severity,
	}
}

func TestSelect_EmptyList(t *testing.T) {
	assert.Nil(t, SelectForTargetDate(nil, day(10)))
}

func TestSelect_PrefersQuantileSpikes(t *testing.T) {
	// A short-term spike contains the target date, but a quantile spike
	// exists elsewhere: the quantile pool wins even without containment.
	events := []contracts.RiskEvent{
		spikeEvent("near", contracts.EventShortTermSpike, 10, 0.9),
		spikeEvent("far", contracts.EventElevatedSpike, 40, 0.5),
	}

	selected := SelectForTargetDate(events, day(10))
	require.NotNil(t, selected)
	assert.Equal(t, "far", selected.ID)
}

func TestSelect_ContainmentBySeverity(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("weak", contracts.EventElevatedSpike, 10, 0.5),
		spikeEvent("strong", contracts.EventExtremeSpike, 12, 0.9),
	}

	// Target 2024-01-11 is inside both windows.
	selected := SelectForTargetDate(events, day(10))
	require.NotNil(t, selected)
	assert.Equal(t, "strong", selected.ID)
}

func TestSelect_SeverityTieBrokenByProximity(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("far", contracts.EventElevatedSpike, 16, 0.8),
		spikeEvent("close", contracts.EventElevatedSpike, 11, 0.8),
	}

	selected := SelectForTargetDate(events, day(10))
	require.NotNil(t, selected)
	assert.Equal(t, "close", selected.ID)
}

func TestSelect_NoContainmentUsesClosestPeak(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("late", contracts.EventElevatedSpike, 60, 0.9),
		spikeEvent("early", contracts.EventExtremeSpike, 30, 0.1),
	}

	selected := SelectForTargetDate(events, day(40))
	require.NotNil(t, selected)
	assert.Equal(t, "early", selected.ID, "closest peak wins regardless of severity")
}

func TestSelect_DistanceTieBrokenByEarliestPeak(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("after", contracts.EventElevatedSpike, 50, 0.5),
		spikeEvent("before", contracts.EventElevatedSpike, 30, 0.5),
	}

	selected := SelectForTargetDate(events, day(40))
	require.NotNil(t, selected)
	assert.Equal(t, "before", selected.ID)
}

func TestSelect_FallsBackToAllTypes(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("spike", contracts.EventShortTermSpike, 10, 0.7),
		spikeEvent("episode", contracts.EventEpisode, 30, 0.9),
	}

	selected := SelectForTargetDate(events, day(10))
	require.NotNil(t, selected)
	assert.Equal(t, "spike", selected.ID, "without quantile spikes the full list is the pool")
}

func TestSelect_OrderIndependent(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("a", contracts.EventElevatedSpike, 8, 0.8),
		spikeEvent("b", contracts.EventExtremeSpike, 12, 0.8),
		spikeEvent("c", contracts.EventElevatedSpike, 14, 0.6),
		spikeEvent("d", contracts.EventShortTermSpike, 10, 0.99),
	}

	want := SelectForTargetDate(events, day(10))
	require.NotNil(t, want)

	permutations := [][]contracts.RiskEvent{
		{events[3], events[2], events[1], events[0]},
		{events[1], events[3], events[0], events[2]},
		{events[2], events[0], events[3], events[1]},
	}
	for _, perm := range permutations {
		got := SelectForTargetDate(perm, day(10))
		require.NotNil(t, got)
		assert.Equal(t, want.ID, got.ID)
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	events := []contracts.RiskEvent{
		spikeEvent("a", contracts.EventElevatedSpike, 20, 0.5),
		spikeEvent("b", contracts.EventExtremeSpike, 10, 0.9),
	}

	SelectForTargetDate(events, day(10))
	assert.Equal(t, "a", events[0].ID)
	assert.Equal(t, "b", events[1].ID)
}
