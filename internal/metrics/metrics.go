// Package metrics defines walk-forward validation metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Run counter vectors
var (
	ValidationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walkforward",
		Name:      "validation_runs_total",
		Help:      "Total number of walk-forward validation runs by status",
	}, []string{"status"})

	WindowRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walkforward",
		Name:      "window_runs_total",
		Help:      "Total number of validation windows by terminal state",
	}, []string{"state"})
)

// Run histogram vectors
var (
	ValidationRunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walkforward",
		Name:      "validation_run_duration_seconds",
		Help:      "Wall-clock duration of walk-forward validation runs",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"status"})
)

// Run gauge vectors
var (
	DegradationPercentage = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "walkforward",
		Name:      "degradation_percentage",
		Help:      "Fraction of evaluated windows flagged degraded in the most recent run",
	}, []string{"primary_metric"})
)

// Register registers all walk-forward collectors with the given registry
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		ValidationRunsTotal,
		WindowRunsTotal,
		ValidationRunDuration,
		DegradationPercentage,
	)
}

// RecordValidationRun records a run outcome.
// status should be one of: "success", "partial", "failure"
func RecordValidationRun(status string, seconds float64) {
	ValidationRunsTotal.WithLabelValues(status).Inc()
	ValidationRunDuration.WithLabelValues(status).Observe(seconds)
}

// RecordWindowRun records a window reaching a terminal state.
// state should be "scored" or "failed"
func RecordWindowRun(state string) {
	WindowRunsTotal.WithLabelValues(state).Inc()
}

// UpdateDegradationPercentage publishes the latest run's degradation fraction
func UpdateDegradationPercentage(primaryMetric string, pct float64) {
	DegradationPercentage.WithLabelValues(primaryMetric).Set(pct)
}
