package detect

import (
	"math"
	"sort"
)

// percentileOf returns the inclusive percentile (0.0-1.0) of value
// within vals: the fraction of values <= value. The series maximum
// therefore sits at percentile 1.0.
func percentileOf(value float64, vals []float64) float64 {
	if len(vals) == 0 {
		return 0.0
	}
	count := 0
	for _, v := range vals {
		if v <= value {
			count++
		}
	}
	return float64(count) / float64(len(vals))
}

// percentileLinear returns the p-th percentile (p in 0-100) using
// linear interpolation between closest ranks.
func percentileLinear(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0.0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100.0 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi > len(sorted)-1 {
		hi = len(sorted) - 1
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// median returns the 50th percentile.
func median(vals []float64) float64 {
	return percentileLinear(vals, 50.0)
}

// rollingMeanStd computes trailing mean and sample standard deviation
// (ddof=1) over a full window of `window` rows by position. Rows without
// a full window get ok=false.
func rollingMeanStd(vals []float64, window int) (means, stds []float64, ok []bool) {
	n := len(vals)
	means = make([]float64, n)
	stds = make([]float64, n)
	ok = make([]bool, n)

	for i := window - 1; i < n; i++ {
		var sum float64
		for j := i - window + 1; j <= i; j++ {
			sum += vals[j]
		}
		mean := sum / float64(window)

		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := vals[j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(window-1))

		means[i] = mean
		stds[i] = std
		ok[i] = true
	}
	return means, stds, ok
}

// clamp01 clamps v into [0, 1].
func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
