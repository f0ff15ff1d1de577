package walkforward

import (
	"math"
	"testing"
)

func TestScoreStabilityKnownValue(t *testing.T) {
	// mean 2, sample stddev 1, CV 0.5
	score := ScoreStability("win_rate", []float64{1, 2, 3})
	if !score.Defined {
		t.Fatalf("expected defined score, got reason %q", score.Reason)
	}
	if score.CV != 0.5 {
		t.Errorf("expected CV 0.5, got %v", score.CV)
	}
	if score.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", score.Samples)
	}
}

func TestScoreStabilityIdenticalValues(t *testing.T) {
	score := ScoreStability("profit_factor", []float64{1.4, 1.4, 1.4, 1.4})
	if !score.Defined {
		t.Fatalf("expected defined score, got reason %q", score.Reason)
	}
	if score.CV != 0 {
		t.Errorf("expected CV 0 for identical values, got %v", score.CV)
	}
}

func TestScoreStabilitySingleValue(t *testing.T) {
	score := ScoreStability("profit_factor", []float64{1.2})
	if score.Defined {
		t.Fatal("expected undefined score for a single value")
	}
	if score.Reason != ReasonInsufficientWindows {
		t.Errorf("expected reason %q, got %q", ReasonInsufficientWindows, score.Reason)
	}
}

func TestScoreStabilityEmpty(t *testing.T) {
	score := ScoreStability("profit_factor", nil)
	if score.Defined {
		t.Fatal("expected undefined score for no values")
	}
	if score.Reason != ReasonInsufficientWindows {
		t.Errorf("expected reason %q, got %q", ReasonInsufficientWindows, score.Reason)
	}
}

func TestScoreStabilityZeroMean(t *testing.T) {
	score := ScoreStability("avg_r_multiple", []float64{-1, 1})
	if score.Defined {
		t.Fatal("expected undefined score for zero mean")
	}
	if score.Reason != ReasonZeroMean {
		t.Errorf("expected reason %q, got %q", ReasonZeroMean, score.Reason)
	}
}

func TestScoreStabilityRounding(t *testing.T) {
	score := ScoreStability("win_rate", []float64{0.52, 0.49, 0.55, 0.47})
	if !score.Defined {
		t.Fatalf("expected defined score, got reason %q", score.Reason)
	}
	rounded := math.Round(score.CV*10000) / 10000
	if score.CV != rounded {
		t.Errorf("CV %v is not rounded to 4 decimals", score.CV)
	}
}

func TestScoreStabilityNegativeMean(t *testing.T) {
	// Mean is negative but nonzero; the score is still defined
	score := ScoreStability("avg_r_multiple", []float64{-0.2, -0.4, -0.3})
	if !score.Defined {
		t.Fatalf("expected defined score, got reason %q", score.Reason)
	}
}
