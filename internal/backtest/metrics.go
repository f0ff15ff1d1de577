// Package backtest provides Prometheus metrics for backtest execution.
package backtest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BacktestRunsTotal tracks backtest executions by adapter and outcome
	BacktestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_runs_total",
			Help: "Total number of backtest executions",
		},
		[]string{"adapter", "status"}, // status: success, failure
	)

	// BacktestRunLatency tracks backtest execution latency
	BacktestRunLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backtest_run_latency_seconds",
			Help:    "Backtest execution latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"adapter"},
	)

	// BacktestCacheHitRatio tracks bundle cache hit ratio
	BacktestCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "backtest_cache_hit_ratio",
			Help: "Backtest metrics bundle cache hit ratio",
		},
	)

	// BacktestHTTPErrorsTotal tracks remote service errors
	BacktestHTTPErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backtest_http_errors_total",
			Help: "Total number of remote backtest service errors",
		},
		[]string{"error_type"},
	)
)
