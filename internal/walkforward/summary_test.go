package walkforward

import (
	"errors"
	"reflect"
	"testing"

	"github.com/yourusername/walkforward/internal/backtest"
)

func fullWindow(index int, train, validate backtest.MetricsBundle) WindowResult {
	return WindowResult{
		Window:   ValidationWindow{Index: index},
		State:    WindowStateScored,
		Train:    &train,
		Validate: &validate,
		Ratios:   ComputeRatios(train, validate),
	}
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate(testConfig(), nil)
	if !errors.Is(err, ErrNoWindowsProvided) {
		t.Fatalf("expected ErrNoWindowsProvided, got %v", err)
	}
}

func TestAggregateAllFailed(t *testing.T) {
	windows := []WindowResult{failedWindow(0), failedWindow(1)}
	_, err := Aggregate(testConfig(), windows)
	if !errors.Is(err, ErrAllWindowsFailed) {
		t.Fatalf("expected ErrAllWindowsFailed, got %v", err)
	}
}

func TestAggregateSummaryStatistics(t *testing.T) {
	windows := []WindowResult{
		fullWindow(0, testBundle(0.5, 0.4, 2.0), testBundle(0.4, 0.3, 1.0)),
		fullWindow(1, testBundle(0.5, 0.4, 2.0), testBundle(0.5, 0.2, 2.0)),
		fullWindow(2, testBundle(0.5, 0.4, 2.0), testBundle(0.6, 0.1, 3.0)),
		failedWindow(3),
	}

	result, err := Aggregate(testConfig(), windows)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if result.Summary.WindowCount != 4 {
		t.Errorf("expected window count 4, got %d", result.Summary.WindowCount)
	}
	if result.Summary.ScoredWindows != 3 {
		t.Errorf("expected 3 scored windows, got %d", result.Summary.ScoredWindows)
	}
	if result.Summary.FailedWindows != 1 {
		t.Errorf("expected 1 failed window, got %d", result.Summary.FailedWindows)
	}

	pf := result.Summary.Metrics[backtest.MetricProfitFactor]
	if pf.Samples != 3 {
		t.Fatalf("expected 3 profit factor samples, got %d", pf.Samples)
	}
	if pf.Mean != 2.0 || pf.Median != 2.0 || pf.Min != 1.0 || pf.Max != 3.0 {
		t.Errorf("unexpected profit factor summary: %+v", pf)
	}

	avg := result.Summary.AverageRatio[backtest.MetricProfitFactor]
	if !avg.Valid {
		t.Fatal("expected a valid average profit factor ratio")
	}
	if avg.Value != 1.0 {
		t.Errorf("expected average ratio 1.0, got %v", avg.Value)
	}
}

func TestAggregateMedianEvenCount(t *testing.T) {
	windows := []WindowResult{
		fullWindow(0, testBundle(0.5, 0.4, 2.0), testBundle(0.4, 0.3, 1.0)),
		fullWindow(1, testBundle(0.5, 0.4, 2.0), testBundle(0.5, 0.2, 2.0)),
	}

	result, err := Aggregate(testConfig(), windows)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if result.Summary.Metrics[backtest.MetricProfitFactor].Median != 1.5 {
		t.Errorf("expected median 1.5, got %v", result.Summary.Metrics[backtest.MetricProfitFactor].Median)
	}
}

func TestAggregateExcludesInfiniteProfitFactor(t *testing.T) {
	infinite := testBundle(0.5, 0.4, 0)
	infinite.ProfitFactor = backtest.InfiniteProfitFactor()

	windows := []WindowResult{
		fullWindow(0, testBundle(0.5, 0.4, 2.0), infinite),
		fullWindow(1, testBundle(0.5, 0.4, 2.0), testBundle(0.5, 0.2, 2.0)),
	}

	result, err := Aggregate(testConfig(), windows)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	pf := result.Summary.Metrics[backtest.MetricProfitFactor]
	if pf.Samples != 1 {
		t.Errorf("infinite profit factor should be excluded, got %d samples", pf.Samples)
	}
	// Win rate is unaffected by the infinite profit factor
	if result.Summary.Metrics[backtest.MetricWinRate].Samples != 2 {
		t.Errorf("expected 2 win rate samples, got %d", result.Summary.Metrics[backtest.MetricWinRate].Samples)
	}
	if result.Significance[backtest.MetricProfitFactor].Defined {
		t.Error("significance needs at least 2 pairs after exclusion")
	}
}

func TestAggregateIdempotent(t *testing.T) {
	windows := []WindowResult{
		fullWindow(0, testBundle(0.5, 0.4, 2.0), testBundle(0.4, 0.3, 1.0)),
		fullWindow(1, testBundle(0.5, 0.4, 2.0), testBundle(0.5, 0.2, 2.0)),
		failedWindow(2),
	}

	first, err := Aggregate(testConfig(), windows)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	second, err := Aggregate(testConfig(), windows)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Error("summary statistics differ between identical aggregations")
	}
	if !reflect.DeepEqual(first.Stability, second.Stability) {
		t.Error("stability scores differ between identical aggregations")
	}
	if !reflect.DeepEqual(first.Significance, second.Significance) {
		t.Error("significance results differ between identical aggregations")
	}
	if !reflect.DeepEqual(first.Degradation, second.Degradation) {
		t.Error("degradation summaries differ between identical aggregations")
	}
}
