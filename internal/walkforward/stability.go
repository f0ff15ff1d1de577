package walkforward

import "math"

// Reasons a stability score is undefined
const (
	ReasonInsufficientWindows = "insufficient windows"
	ReasonZeroMean            = "undefined (zero mean)"
)

// StabilityScore is the coefficient of variation of one metric across the
// validate periods of all scored windows. Lower CV means more consistent
// out-of-sample performance. CV is rounded to 4 decimals for reporting;
// the internal computation runs at full precision.
type StabilityScore struct {
	Metric  string  `json:"metric"`
	CV      float64 `json:"cv"`
	Defined bool    `json:"defined"`
	Reason  string  `json:"reason,omitempty"`
	Samples int     `json:"samples"`
}

// ScoreStability computes CV = sample stddev / mean over the given values,
// using the unbiased (n-1) variance estimator. Fewer than 2 values or a zero
// mean yield an undefined score instead of a divide-by-zero.
func ScoreStability(metric string, values []float64) StabilityScore {
	score := StabilityScore{Metric: metric, Samples: len(values)}
	if len(values) < 2 {
		score.Reason = ReasonInsufficientWindows
		return score
	}

	mean := meanOf(values)
	if mean == 0 {
		score.Reason = ReasonZeroMean
		return score
	}

	score.CV = round4(sampleStddev(values, mean) / mean)
	score.Defined = true
	return score
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStddev uses the n-1 estimator
func sampleStddev(values []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
