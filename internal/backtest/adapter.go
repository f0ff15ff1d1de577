// Package backtest defines the backtest adapter contract consumed by the
// walk-forward engine, plus the local, remote, and cached implementations.
package backtest

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Metric keys shared by every MetricsBundle.
const (
	MetricWinRate      = "win_rate"
	MetricAvgRMultiple = "avg_r_multiple"
	MetricProfitFactor = "profit_factor"
)

// MetricKeys lists the bundle metrics in reporting order.
func MetricKeys() []string {
	return []string{MetricWinRate, MetricAvgRMultiple, MetricProfitFactor}
}

// DateRange is a half-open [Start, End) backtest period.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// String returns the range in YYYY-MM-DD form
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// ProfitFactor is gross profit over gross loss. A run with no losing trades
// has no finite value; Infinite marks that case instead of a numeric sentinel.
type ProfitFactor struct {
	Value    float64 `json:"value"`
	Infinite bool    `json:"infinite"`
}

// NewProfitFactor builds a finite profit factor
func NewProfitFactor(v float64) ProfitFactor {
	return ProfitFactor{Value: v}
}

// InfiniteProfitFactor marks a run with gross profit and no gross loss
func InfiniteProfitFactor() ProfitFactor {
	return ProfitFactor{Infinite: true}
}

// Finite reports whether the profit factor has a usable numeric value
func (p ProfitFactor) Finite() bool {
	return !p.Infinite
}

// MetricsBundle is the per-run performance summary returned by an adapter
type MetricsBundle struct {
	WinRate      float64      `json:"win_rate"`
	AvgRMultiple float64      `json:"avg_r_multiple"`
	ProfitFactor ProfitFactor `json:"profit_factor"`
	TotalTrades  int          `json:"total_trades"`
}

// Value returns the named metric as a float. The second return is false when
// the metric has no finite value (infinite profit factor) or the key is unknown.
func (m MetricsBundle) Value(metric string) (float64, bool) {
	switch metric {
	case MetricWinRate:
		return m.WinRate, true
	case MetricAvgRMultiple:
		return m.AvgRMultiple, true
	case MetricProfitFactor:
		if !m.ProfitFactor.Finite() {
			return 0, false
		}
		return m.ProfitFactor.Value, true
	default:
		return 0, false
	}
}

// Adapter executes one backtest over a date range and returns its metrics.
// Every call must be isolated and stateless: the engine passes the same opaque
// strategy config to the train and validate runs of a window and relies on the
// adapter not carrying state between them. Implementations must be safe for
// concurrent calls on disjoint date ranges.
type Adapter interface {
	Run(ctx context.Context, period DateRange, strategyConfig json.RawMessage, symbols []string) (*MetricsBundle, error)
}

// RunKey identifies one adapter invocation for caching and deduplication
func RunKey(period DateRange, strategyConfig json.RawMessage, symbols []string) string {
	hash := sha256.Sum256(strategyConfig)
	return fmt.Sprintf("%s|%s|%x", period.String(), strings.Join(symbols, ","), hash[:8])
}
