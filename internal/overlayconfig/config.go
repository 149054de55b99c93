package overlayconfig

// Config is the strategy configuration for one overlay run: detection
// thresholds plus advisory settings. Loaded from YAML; every run should
// record Hash(cfg) next to its output so results stay reproducible.
type Config struct {
	Meta      Meta            `yaml:"meta" json:"meta"`
	Detection DetectionConfig `yaml:"detection" json:"detection"`
	Advisory  AdvisoryConfig  `yaml:"advisory" json:"advisory"`
}

// Meta identifies the strategy revision.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// DetectionConfig mirrors contracts.DetectionThresholds in YAML form.
type DetectionConfig struct {
	ZThreshold     float64 `yaml:"z_threshold" json:"z_threshold"`
	LocalMaxWindow int     `yaml:"local_max_window" json:"local_max_window"`

	MinEpisodeDays    int     `yaml:"min_episode_days" json:"min_episode_days"`
	EpisodePercentile float64 `yaml:"episode_percentile" json:"episode_percentile"`
	MinRegimeDays     int     `yaml:"min_regime_days" json:"min_regime_days"`
	RegimePercentile  float64 `yaml:"regime_percentile" json:"regime_percentile"`

	ElevatedSpikeQuantile float64 `yaml:"elevated_spike_quantile" json:"elevated_spike_quantile"`
	ExtremeSpikeQuantile  float64 `yaml:"extreme_spike_quantile" json:"extreme_spike_quantile"`

	BufferPreDays  int `yaml:"buffer_pre_days" json:"buffer_pre_days"`
	BufferPostDays int `yaml:"buffer_post_days" json:"buffer_post_days"`
}

// AdvisoryConfig controls report composition.
type AdvisoryConfig struct {
	TopIndustries int `yaml:"top_industries" json:"top_industries"`
}

// Default returns the production configuration.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "gpr_overlay_v1",
			Version:    "1",
		},
		Detection: DetectionConfig{
			ZThreshold:            2.0,
			LocalMaxWindow:        3,
			MinEpisodeDays:        10,
			EpisodePercentile:     0.80,
			MinRegimeDays:         60,
			RegimePercentile:      0.75,
			ElevatedSpikeQuantile: 0.99,
			ExtremeSpikeQuantile:  0.995,
			BufferPreDays:         7,
			BufferPostDays:        2,
		},
		Advisory: AdvisoryConfig{
			TopIndustries: 5,
		},
	}
}
