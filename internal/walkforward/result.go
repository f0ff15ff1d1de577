package walkforward

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/walkforward/internal/backtest"
)

// WindowState tracks a window through its run lifecycle. There is no retry
// transition; a FAILED window stays failed for the run.
type WindowState string

// Window states
const (
	WindowStatePending         WindowState = "PENDING"
	WindowStateTrainRunning    WindowState = "TRAIN_RUNNING"
	WindowStateValidateRunning WindowState = "VALIDATE_RUNNING"
	WindowStateScored          WindowState = "SCORED"
	WindowStateFailed          WindowState = "FAILED"
)

// WindowResult is the outcome of one validation window. Train and Validate
// are nil when the window failed; Error carries the failure reason.
type WindowResult struct {
	Window   ValidationWindow        `json:"window"`
	State    WindowState             `json:"state"`
	Train    *backtest.MetricsBundle `json:"train,omitempty"`
	Validate *backtest.MetricsBundle `json:"validate,omitempty"`
	Ratios   map[string]Ratio        `json:"ratios,omitempty"`
	Degraded bool                    `json:"degraded"`
	Error    string                  `json:"error,omitempty"`
}

// Scored reports whether the window completed both runs
func (w WindowResult) Scored() bool {
	return w.State == WindowStateScored
}

// MetricSummary holds the distribution of one metric's validate-period values
type MetricSummary struct {
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Samples int     `json:"samples"`
}

// SummaryStatistics aggregates validate-period performance across windows
type SummaryStatistics struct {
	WindowCount   int                      `json:"window_count"`
	ScoredWindows int                      `json:"scored_windows"`
	FailedWindows int                      `json:"failed_windows"`
	Metrics       map[string]MetricSummary `json:"metrics"`
	AverageRatio  map[string]Ratio         `json:"average_ratio"`
}

// DegradationSummary is the run-level output of the degradation detector.
// EvaluatedWindows excludes failed windows and windows whose primary-metric
// ratio was not computable; Percentage is DegradedCount / EvaluatedWindows.
type DegradationSummary struct {
	PrimaryMetric    string  `json:"primary_metric"`
	Threshold        float64 `json:"threshold"`
	DegradedCount    int     `json:"degraded_count"`
	EvaluatedWindows int     `json:"evaluated_windows"`
	Percentage       float64 `json:"percentage"`
}

// Result is the single artifact a walk-forward run emits. It is built once by
// Aggregate, never mutated afterward, and owned by the caller.
type Result struct {
	RunID        uuid.UUID                     `json:"run_id"`
	Config       Config                        `json:"config"`
	Windows      []WindowResult                `json:"windows"`
	Summary      SummaryStatistics             `json:"summary"`
	Stability    map[string]StabilityScore     `json:"stability"`
	Significance map[string]SignificanceResult `json:"significance"`
	Degradation  DegradationSummary            `json:"degradation"`
	Partial      bool                          `json:"partial"`
	StartedAt    time.Time                     `json:"started_at"`
	CompletedAt  time.Time                     `json:"completed_at"`
}
