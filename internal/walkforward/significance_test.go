package walkforward

import (
	"math"
	"testing"
)

func TestSignificanceIdenticalSeries(t *testing.T) {
	series := []float64{1.1, 1.3, 0.9, 1.2}
	result := TestSignificance("profit_factor", series, series)
	if !result.Defined {
		t.Fatalf("expected defined result, got reason %q", result.Reason)
	}
	if result.PValue != 1.0 {
		t.Errorf("expected p=1.0 for identical series, got %v", result.PValue)
	}
	if result.TStatistic != 0 {
		t.Errorf("expected t=0 for identical series, got %v", result.TStatistic)
	}
}

func TestSignificanceConstantShift(t *testing.T) {
	train := []float64{1.0, 1.2, 1.4}
	validate := []float64{0.8, 1.0, 1.2}
	result := TestSignificance("profit_factor", train, validate)
	if !result.Defined {
		t.Fatalf("expected defined result, got reason %q", result.Reason)
	}
	if result.PValue != 0 {
		t.Errorf("expected p=0 for a constant shift, got %v", result.PValue)
	}
	if !math.IsInf(result.TStatistic, -1) {
		t.Errorf("expected t=-Inf for a constant negative shift, got %v", result.TStatistic)
	}
}

func TestSignificanceInsufficientSamples(t *testing.T) {
	result := TestSignificance("win_rate", []float64{1.0}, []float64{0.9})
	if result.Defined {
		t.Fatal("expected undefined result for a single pair")
	}
	if result.Reason != ReasonInsufficientSamples {
		t.Errorf("expected reason %q, got %q", ReasonInsufficientSamples, result.Reason)
	}
}

func TestSignificanceSymmetricDiffs(t *testing.T) {
	// Differences sum to zero, so the mean difference is zero and p=1
	train := []float64{1.0, 1.0, 1.0, 1.0}
	validate := []float64{1.1, 0.9, 1.2, 0.8}
	result := TestSignificance("profit_factor", train, validate)
	if !result.Defined {
		t.Fatalf("expected defined result, got reason %q", result.Reason)
	}
	if result.TStatistic != 0 {
		t.Errorf("expected t=0 for zero mean difference, got %v", result.TStatistic)
	}
	if result.PValue != 1.0 {
		t.Errorf("expected p=1.0 for zero mean difference, got %v", result.PValue)
	}
}

func TestSignificancePValueRange(t *testing.T) {
	train := []float64{1.5, 1.4, 1.6, 1.3, 1.5}
	validate := []float64{1.2, 1.3, 1.1, 1.2, 1.0}
	result := TestSignificance("profit_factor", train, validate)
	if !result.Defined {
		t.Fatalf("expected defined result, got reason %q", result.Reason)
	}
	if result.PValue <= 0 || result.PValue >= 1 {
		t.Errorf("expected p in (0, 1), got %v", result.PValue)
	}
	if result.TStatistic >= 0 {
		t.Errorf("expected negative t for degraded validate series, got %v", result.TStatistic)
	}
}

func TestSignificanceDirectionSymmetry(t *testing.T) {
	train := []float64{1.0, 1.2, 1.1, 1.4}
	validate := []float64{0.9, 1.0, 1.05, 1.1}

	forward := TestSignificance("profit_factor", train, validate)
	reverse := TestSignificance("profit_factor", validate, train)

	if math.Abs(forward.PValue-reverse.PValue) > 1e-12 {
		t.Errorf("two-sided p should not depend on direction: %v vs %v", forward.PValue, reverse.PValue)
	}
	if math.Abs(forward.TStatistic+reverse.TStatistic) > 1e-12 {
		t.Errorf("t statistics should be opposite: %v vs %v", forward.TStatistic, reverse.TStatistic)
	}
}
