package walkforward

import (
	"math"

	"github.com/yourusername/walkforward/internal/backtest"
)

// Ratio is a validate/train performance ratio for one metric. Valid is false
// when the ratio is not computable: zero or non-finite train value, or an
// infinite profit factor on either side. Invalid ratios are excluded from all
// downstream aggregate statistics.
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

func knownMetric(metric string) bool {
	for _, key := range backtest.MetricKeys() {
		if key == metric {
			return true
		}
	}
	return false
}

// ComputeRatios derives the per-metric performance ratios for one window
func ComputeRatios(train, validate backtest.MetricsBundle) map[string]Ratio {
	ratios := make(map[string]Ratio, len(backtest.MetricKeys()))
	for _, metric := range backtest.MetricKeys() {
		trainValue, trainOK := train.Value(metric)
		validateValue, validateOK := validate.Value(metric)
		ratios[metric] = computeRatio(trainValue, trainOK, validateValue, validateOK)
	}
	return ratios
}

func computeRatio(trainValue float64, trainOK bool, validateValue float64, validateOK bool) Ratio {
	if !trainOK || !validateOK {
		return Ratio{}
	}
	if trainValue == 0 {
		return Ratio{}
	}
	value := validateValue / trainValue
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Ratio{}
	}
	return Ratio{Value: value, Valid: true}
}
