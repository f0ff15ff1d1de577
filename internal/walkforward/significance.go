package walkforward

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ReasonInsufficientSamples marks a significance result with fewer than 2 pairs
const ReasonInsufficientSamples = "insufficient samples"

// SignificanceResult is the outcome of a two-sided paired t-test on
// validate[i] - train[i] for one metric. A small p-value means the
// out-of-sample series differs systematically from the in-sample series.
// No multiple-comparison correction is applied; each metric stands alone.
type SignificanceResult struct {
	Metric     string  `json:"metric"`
	PValue     float64 `json:"p_value"`
	TStatistic float64 `json:"t_statistic"`
	Defined    bool    `json:"defined"`
	Reason     string  `json:"reason,omitempty"`
	Samples    int     `json:"samples"`
}

// TestSignificance runs the paired t-test for one metric. The slices must be
// the same length; pairs are matched by index. Fewer than 2 pairs yield an
// undefined result instead of a numeric p-value.
func TestSignificance(metric string, train, validate []float64) SignificanceResult {
	n := len(train)
	if len(validate) < n {
		n = len(validate)
	}
	result := SignificanceResult{Metric: metric, Samples: n}
	if n < 2 {
		result.Reason = ReasonInsufficientSamples
		return result
	}

	diffs := make([]float64, n)
	for i := 0; i < n; i++ {
		diffs[i] = validate[i] - train[i]
	}

	mean := meanOf(diffs)
	stddev := sampleStddev(diffs, mean)
	result.Defined = true

	// Zero variance: identical series give p=1, a constant nonzero shift
	// moved every pair the same direction and is maximally significant.
	if stddev == 0 {
		if mean == 0 {
			result.PValue = 1.0
			return result
		}
		result.TStatistic = math.Inf(sign(mean))
		result.PValue = 0.0
		return result
	}

	result.TStatistic = mean / (stddev / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	result.PValue = 2 * dist.CDF(-math.Abs(result.TStatistic))
	return result
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
