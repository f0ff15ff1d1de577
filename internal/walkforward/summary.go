package walkforward

import (
	"sort"

	"github.com/yourusername/walkforward/internal/backtest"
)

// Aggregate reduces an ordered sequence of window results into the final
// Result. It is a pure fold with no side effects: aggregating the same window
// sequence twice yields identical statistics. Failed windows are represented
// in the result rather than aborting aggregation; only a run in which every
// window failed is fatal.
func Aggregate(cfg Config, windows []WindowResult) (*Result, error) {
	if len(windows) == 0 {
		return nil, ErrNoWindowsProvided
	}

	scored := 0
	failed := 0
	for _, w := range windows {
		if w.Scored() {
			scored++
		} else {
			failed++
		}
	}
	if scored == 0 {
		return nil, ErrAllWindowsFailed
	}

	result := &Result{
		Config:       cfg,
		Windows:      windows,
		Stability:    make(map[string]StabilityScore),
		Significance: make(map[string]SignificanceResult),
		Summary: SummaryStatistics{
			WindowCount:   len(windows),
			ScoredWindows: scored,
			FailedWindows: failed,
			Metrics:       make(map[string]MetricSummary),
			AverageRatio:  make(map[string]Ratio),
		},
	}

	for _, metric := range backtest.MetricKeys() {
		trainSeries, validateSeries := pairedSeries(windows, metric)
		result.Summary.Metrics[metric] = summarize(validateValues(windows, metric))
		result.Summary.AverageRatio[metric] = averageRatio(windows, metric)
		result.Stability[metric] = ScoreStability(metric, validateValues(windows, metric))
		result.Significance[metric] = TestSignificance(metric, trainSeries, validateSeries)
	}
	result.Degradation = DetectDegradation(windows, cfg.PrimaryMetric, cfg.DegradationThreshold)

	return result, nil
}

// validateValues collects the finite validate-period values of one metric
// across scored windows, in window order.
func validateValues(windows []WindowResult, metric string) []float64 {
	values := make([]float64, 0, len(windows))
	for _, w := range windows {
		if !w.Scored() || w.Validate == nil {
			continue
		}
		if v, ok := w.Validate.Value(metric); ok {
			values = append(values, v)
		}
	}
	return values
}

// pairedSeries collects (train, validate) pairs for windows where both sides
// have a finite value, keeping the pairing aligned by window.
func pairedSeries(windows []WindowResult, metric string) ([]float64, []float64) {
	train := make([]float64, 0, len(windows))
	validate := make([]float64, 0, len(windows))
	for _, w := range windows {
		if !w.Scored() || w.Train == nil || w.Validate == nil {
			continue
		}
		trainValue, trainOK := w.Train.Value(metric)
		validateValue, validateOK := w.Validate.Value(metric)
		if !trainOK || !validateOK {
			continue
		}
		train = append(train, trainValue)
		validate = append(validate, validateValue)
	}
	return train, validate
}

func averageRatio(windows []WindowResult, metric string) Ratio {
	sum := 0.0
	count := 0
	for _, w := range windows {
		if !w.Scored() {
			continue
		}
		if ratio, ok := w.Ratios[metric]; ok && ratio.Valid {
			sum += ratio.Value
			count++
		}
	}
	if count == 0 {
		return Ratio{}
	}
	return Ratio{Value: sum / float64(count), Valid: true}
}

func summarize(values []float64) MetricSummary {
	summary := MetricSummary{Samples: len(values)}
	if len(values) == 0 {
		return summary
	}

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	summary.Mean = meanOf(values)
	summary.Min = sorted[0]
	summary.Max = sorted[len(sorted)-1]
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		summary.Median = sorted[mid]
	} else {
		summary.Median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return summary
}
