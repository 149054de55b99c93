package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlaylab/georisk/internal/contracts"
)

func TestWriteJSON_CreatesNestedDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "2024", "advisory.json")

	err := WriteJSON(path, map[string]string{"status": "ok"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestWriteJSON_EventRendersEnumsAndDates(t *testing.T) {
	severity := 0.8
	end := contracts.NewDate(2024, 2, 12)
	event := contracts.RiskEvent{
		ID:        "spike-2024-02-10",
		Type:      contracts.EventShortTermSpike,
		StartDate: contracts.NewDate(2024, 2, 3),
		EndDate:   &end,
		PeakDate:  contracts.NewDate(2024, 2, 10),
		Severity:  &severity,
	}

	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, WriteJSON(path, event))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "short_term_spike", decoded["event_type"])
	assert.Equal(t, "2024-02-10", decoded["peak_date"])
	assert.Equal(t, "2024-02-12", decoded["end_date"])
}

func TestWriteJSON_RoundTripsEvent(t *testing.T) {
	severity := 0.8
	event := contracts.RiskEvent{
		ID:        "episode-2024-01-01-2024-01-20",
		Type:      contracts.EventEpisode,
		StartDate: contracts.NewDate(2024, 1, 1),
		PeakDate:  contracts.NewDate(2024, 1, 10),
		Severity:  &severity,
	}

	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, WriteJSON(path, event))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded contracts.RiskEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.Type, decoded.Type)
	assert.True(t, decoded.PeakDate.Equal(event.PeakDate.Time))
	assert.Nil(t, decoded.EndDate)
}
