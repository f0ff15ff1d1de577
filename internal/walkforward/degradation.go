package walkforward

// IsDegraded applies the per-window degradation policy: a window is degraded
// when its primary-metric ratio is computable and strictly below the
// threshold. A ratio exactly at the threshold does not degrade the window;
// a non-computable ratio makes the window unevaluable rather than degraded.
func IsDegraded(ratio Ratio, threshold float64) bool {
	return ratio.Valid && ratio.Value < threshold
}

// DetectDegradation reduces per-window degraded flags into the run-level
// summary. Windows whose primary-metric ratio was not computable (including
// failed windows) are excluded from both numerator and denominator.
func DetectDegradation(windows []WindowResult, primaryMetric string, threshold float64) DegradationSummary {
	summary := DegradationSummary{PrimaryMetric: primaryMetric, Threshold: threshold}
	for _, w := range windows {
		if !w.Scored() {
			continue
		}
		ratio, ok := w.Ratios[primaryMetric]
		if !ok || !ratio.Valid {
			continue
		}
		summary.EvaluatedWindows++
		if ratio.Value < threshold {
			summary.DegradedCount++
		}
	}
	if summary.EvaluatedWindows > 0 {
		summary.Percentage = float64(summary.DegradedCount) / float64(summary.EvaluatedWindows)
	}
	return summary
}
