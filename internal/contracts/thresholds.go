package contracts

// DetectionThresholds controls the event detectors. Defaults match the
// published calibration of the overlay; override via strategy config.
type DetectionThresholds struct {
	ZThreshold     float64 `yaml:"z_threshold"`      // min z-score for short-term spikes (default: 2.0)
	LocalMaxWindow int     `yaml:"local_max_window"` // rows on each side for the local-max filter (default: 3)

	MinEpisodeDays    int     `yaml:"min_episode_days"`   // min run length for episodes (default: 10)
	EpisodePercentile float64 `yaml:"episode_percentile"` // MA7 threshold percentile (default: 0.80)
	MinRegimeDays     int     `yaml:"min_regime_days"`    // min run length for regimes (default: 60)
	RegimePercentile  float64 `yaml:"regime_percentile"`  // MA30 threshold percentile (default: 0.75)

	ElevatedSpikeQuantile float64 `yaml:"elevated_spike_quantile"` // default: 0.99
	ExtremeSpikeQuantile  float64 `yaml:"extreme_spike_quantile"`  // default: 0.995

	BufferPreDays  int `yaml:"buffer_pre_days"`  // event window lead, calendar days (default: 7)
	BufferPostDays int `yaml:"buffer_post_days"` // event window tail, calendar days (default: 2)
}

// DefaultDetectionThresholds returns the production defaults.
func DefaultDetectionThresholds() DetectionThresholds {
	return DetectionThresholds{
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
	}
}
