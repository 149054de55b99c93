package overlayconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/overlaylab/georisk/internal/contracts"
)

// Load reads a strategy YAML file and returns the config plus the raw
// bytes for audit. Unknown fields fail immediately so a typo cannot
// silently fall back to a default threshold.
func Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, nil, fmt.Errorf("parse strategy config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, data, err
	}

	return cfg, data, nil
}

// Validate checks threshold sanity.
func Validate(cfg *Config) error {
	d := cfg.Detection
	switch {
	case d.ZThreshold <= 0:
		return fmt.Errorf("detection.z_threshold must be positive, got %v", d.ZThreshold)
	case d.LocalMaxWindow < 0:
		return fmt.Errorf("detection.local_max_window must be non-negative, got %d", d.LocalMaxWindow)
	case d.MinEpisodeDays < 1 || d.MinRegimeDays < 1:
		return fmt.Errorf("detection run lengths must be at least 1")
	case d.EpisodePercentile <= 0 || d.EpisodePercentile >= 1:
		return fmt.Errorf("detection.episode_percentile must be in (0, 1), got %v", d.EpisodePercentile)
	case d.RegimePercentile <= 0 || d.RegimePercentile >= 1:
		return fmt.Errorf("detection.regime_percentile must be in (0, 1), got %v", d.RegimePercentile)
	case d.ElevatedSpikeQuantile <= 0 || d.ElevatedSpikeQuantile >= 1:
		return fmt.Errorf("detection.elevated_spike_quantile must be in (0, 1), got %v", d.ElevatedSpikeQuantile)
	case d.ExtremeSpikeQuantile < d.ElevatedSpikeQuantile || d.ExtremeSpikeQuantile >= 1:
		return fmt.Errorf("detection.extreme_spike_quantile must be in [elevated, 1), got %v", d.ExtremeSpikeQuantile)
	case d.BufferPreDays < 0 || d.BufferPostDays < 0:
		return fmt.Errorf("detection buffers must be non-negative")
	}
	if cfg.Advisory.TopIndustries < 1 {
		return fmt.Errorf("advisory.top_industries must be at least 1, got %d", cfg.Advisory.TopIndustries)
	}
	return nil
}

// Hash generates a SHA256 hex digest of the config via canonical JSON.
// Structs (not maps) keep the field order deterministic.
func Hash(cfg *Config) (string, error) {
	jsonBytes, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// Thresholds converts the detection section into the contract type the
// detector consumes.
func (c *Config) Thresholds() contracts.DetectionThresholds {
	d := c.Detection
	return contracts.DetectionThresholds{
		ZThreshold:            d.ZThreshold,
		LocalMaxWindow:        d.LocalMaxWindow,
		MinEpisodeDays:        d.MinEpisodeDays,
		EpisodePercentile:     d.EpisodePercentile,
		MinRegimeDays:         d.MinRegimeDays,
		RegimePercentile:      d.RegimePercentile,
		ElevatedSpikeQuantile: d.ElevatedSpikeQuantile,
		ExtremeSpikeQuantile:  d.ExtremeSpikeQuantile,
		BufferPreDays:         d.BufferPreDays,
		BufferPostDays:        d.BufferPostDays,
	}
}

// LoadOrDefault loads the config when a path is given, otherwise the
// production defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("strategy config not found: %w", err)
	}
	cfg, _, err := Load(path)
	return cfg, err
}
