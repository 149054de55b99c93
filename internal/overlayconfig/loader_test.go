package overlayconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, Validate(cfg))
	assert.Equal(t, "gpr_overlay_v1", cfg.Meta.StrategyID)
	assert.InDelta(t, 2.0, cfg.Detection.ZThreshold, 1e-12)
	assert.Equal(t, 5, cfg.Advisory.TopIndustries)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeYAML(t, `
meta:
  strategy_id: gpr_overlay_test
detection:
  z_threshold: 2.5
  min_episode_days: 14
advisory:
  top_industries: 3
`)

	cfg, raw, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	assert.Equal(t, "gpr_overlay_test", cfg.Meta.StrategyID)
	assert.InDelta(t, 2.5, cfg.Detection.ZThreshold, 1e-12)
	assert.Equal(t, 14, cfg.Detection.MinEpisodeDays)
	assert.Equal(t, 3, cfg.Advisory.TopIndustries)

	// Untouched fields keep their defaults.
	assert.InDelta(t, 0.80, cfg.Detection.EpisodePercentile, 1e-12)
	assert.Equal(t, 60, cfg.Detection.MinRegimeDays)
}

func TestLoad_UnknownFieldFails(t *testing.T) {
	path := writeYAML(t, `
detection:
  z_treshold: 2.5
`)

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "z_treshold")
}

func TestLoad_InvalidThresholdFails(t *testing.T) {
	cases := map[string]string{
		"zero z":            "detection:\n  z_threshold: 0\n",
		"bad percentile":    "detection:\n  episode_percentile: 1.5\n",
		"inverted quantile": "detection:\n  elevated_spike_quantile: 0.999\n",
		"zero run length":   "detection:\n  min_episode_days: 0\n",
		"negative buffer":   "detection:\n  buffer_pre_days: -1\n",
		"zero top n":        "advisory:\n  top_industries: 0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Load(writeYAML(t, content))
			assert.Error(t, err)
		})
	}
}

func TestHash_DeterministicHex(t *testing.T) {
	h1, err := Hash(Default())
	require.NoError(t, err)
	h2, err := Hash(Default())
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestHash_ChangesWithConfig(t *testing.T) {
	a := Default()
	b := Default()
	b.Detection.ZThreshold = 3.0

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestThresholds_MirrorsDetectionSection(t *testing.T) {
	cfg := Default()
	cfg.Detection.ZThreshold = 2.5
	cfg.Detection.BufferPostDays = 3

	th := cfg.Thresholds()
	assert.InDelta(t, 2.5, th.ZThreshold, 1e-12)
	assert.Equal(t, 3, th.BufferPostDays)
	assert.InDelta(t, 0.995, th.ExtremeSpikeQuantile, 1e-12)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default().Meta.StrategyID, cfg.Meta.StrategyID)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
