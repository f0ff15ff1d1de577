package walkforward

import (
	"testing"

	"github.com/yourusername/walkforward/internal/backtest"
)

func testBundle(winRate, avgR, pf float64) backtest.MetricsBundle {
	return backtest.MetricsBundle{
		WinRate:      winRate,
		AvgRMultiple: avgR,
		ProfitFactor: backtest.NewProfitFactor(pf),
		TotalTrades:  50,
	}
}

func TestComputeRatios(t *testing.T) {
	train := testBundle(0.5, 0.4, 1.5)
	validate := testBundle(0.4, 0.2, 1.2)

	ratios := ComputeRatios(train, validate)

	cases := map[string]float64{
		backtest.MetricWinRate:      0.8,
		backtest.MetricAvgRMultiple: 0.5,
		backtest.MetricProfitFactor: 0.8,
	}
	for metric, want := range cases {
		ratio, ok := ratios[metric]
		if !ok {
			t.Fatalf("missing ratio for %s", metric)
		}
		if !ratio.Valid {
			t.Errorf("%s ratio should be valid", metric)
		}
		if diff := ratio.Value - want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("%s ratio: expected %v, got %v", metric, want, ratio.Value)
		}
	}
}

func TestComputeRatiosZeroTrainValue(t *testing.T) {
	train := testBundle(0, 0.4, 1.5)
	validate := testBundle(0.4, 0.2, 1.2)

	ratios := ComputeRatios(train, validate)
	if ratios[backtest.MetricWinRate].Valid {
		t.Error("ratio with zero train value should not be computable")
	}
	if !ratios[backtest.MetricProfitFactor].Valid {
		t.Error("other metrics should be unaffected")
	}
}

func TestComputeRatiosInfiniteProfitFactor(t *testing.T) {
	train := testBundle(0.5, 0.4, 1.5)
	train.ProfitFactor = backtest.InfiniteProfitFactor()
	validate := testBundle(0.4, 0.2, 1.2)

	ratios := ComputeRatios(train, validate)
	if ratios[backtest.MetricProfitFactor].Valid {
		t.Error("ratio against an infinite profit factor should not be computable")
	}

	// Infinite on the validate side is equally non-computable
	validate.ProfitFactor = backtest.InfiniteProfitFactor()
	train.ProfitFactor = backtest.NewProfitFactor(1.5)
	ratios = ComputeRatios(train, validate)
	if ratios[backtest.MetricProfitFactor].Valid {
		t.Error("ratio with an infinite validate profit factor should not be computable")
	}
}

func TestComputeRatiosNegativeValues(t *testing.T) {
	// A negative average R-multiple still yields a computable ratio
	train := testBundle(0.5, -0.2, 1.5)
	validate := testBundle(0.4, -0.4, 1.2)

	ratios := ComputeRatios(train, validate)
	ratio := ratios[backtest.MetricAvgRMultiple]
	if !ratio.Valid {
		t.Fatal("negative-valued ratio should be computable")
	}
	if ratio.Value != 2.0 {
		t.Errorf("expected ratio 2.0, got %v", ratio.Value)
	}
}
