package walkforward

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/walkforward/internal/backtest"
	"github.com/yourusername/walkforward/internal/metrics"
)

// Engine orchestrates one walk-forward validation run: fan-out of window
// backtests over a bounded worker pool, a join barrier, and aggregation.
// The engine holds no state between invocations.
type Engine struct {
	cfg     Config
	adapter backtest.Adapter
	logger  *logrus.Logger
}

// NewEngine creates a validation engine. The configuration is defaulted and
// validated here so that Run can only fail on execution, insufficient data,
// or a fully failed window set.
func NewEngine(cfg Config, adapter backtest.Adapter, logger *logrus.Logger) (*Engine, error) {
	if adapter == nil {
		return nil, ErrAdapterRequired
	}
	if logger == nil {
		logger = logrus.New()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, adapter: adapter, logger: logger}, nil
}

// Config returns the validated run configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Run executes the full walk-forward validation and returns its single
// artifact. Per-window failures (adapter errors, timeouts) are recorded on
// the result; only configuration problems, an overall range too short for one
// window, or a run in which every window failed return an error. On context
// cancellation, completed windows are retained and the partial result is
// aggregated with Partial set.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	windows, err := GenerateWindows(e.cfg)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	startedAt := time.Now().UTC()
	e.logger.WithFields(logrus.Fields{
		"run_id":      runID,
		"windows":     len(windows),
		"concurrency": e.cfg.Concurrency,
		"symbols":     e.cfg.Symbols,
	}).Info("Starting walk-forward validation")

	results := make([]WindowResult, len(windows))
	sem := make(chan struct{}, e.cfg.Concurrency)
	var wg sync.WaitGroup
	for i, window := range windows {
		wg.Add(1)
		go func(i int, window ValidationWindow) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = e.runWindow(ctx, runID, window)
		}(i, window)
	}
	// Join barrier: aggregation only sees terminal-state windows.
	wg.Wait()

	result, err := Aggregate(e.cfg, results)
	if err != nil {
		metrics.RecordValidationRun("failure", time.Since(startedAt).Seconds())
		e.logger.WithFields(logrus.Fields{"run_id": runID}).WithError(err).Error("Walk-forward validation produced no usable windows")
		return nil, err
	}

	result.RunID = runID
	result.StartedAt = startedAt
	result.CompletedAt = time.Now().UTC()
	result.Partial = ctx.Err() != nil

	status := "success"
	if result.Partial {
		status = "partial"
	}
	metrics.RecordValidationRun(status, result.CompletedAt.Sub(startedAt).Seconds())
	metrics.UpdateDegradationPercentage(result.Degradation.PrimaryMetric, result.Degradation.Percentage)

	e.logger.WithFields(logrus.Fields{
		"run_id":           runID,
		"scored_windows":   result.Summary.ScoredWindows,
		"failed_windows":   result.Summary.FailedWindows,
		"degradation_pct":  result.Degradation.Percentage,
		"degraded_windows": result.Degradation.DegradedCount,
		"partial":          result.Partial,
	}).Info("Walk-forward validation completed")

	return result, nil
}

// runWindow drives one window through its state machine. All failures are
// local: the window ends FAILED and the run continues.
func (e *Engine) runWindow(ctx context.Context, runID uuid.UUID, window ValidationWindow) WindowResult {
	result := WindowResult{Window: window, State: WindowStatePending}
	log := e.logger.WithFields(logrus.Fields{"run_id": runID, "window": window.Index})

	if err := ctx.Err(); err != nil {
		return e.failWindow(result, log, "pending", err)
	}

	wctx := ctx
	if e.cfg.WindowTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, e.cfg.WindowTimeout)
		defer cancel()
	}

	result.State = WindowStateTrainRunning
	trainStart, trainEnd := window.TrainRange()
	train, err := e.adapter.Run(wctx, backtest.DateRange{Start: trainStart, End: trainEnd}, e.cfg.StrategyConfig, e.cfg.Symbols)
	if err != nil {
		return e.failWindow(result, log, "train", err)
	}

	result.State = WindowStateValidateRunning
	validateStart, validateEnd := window.ValidateRange()
	validate, err := e.adapter.Run(wctx, backtest.DateRange{Start: validateStart, End: validateEnd}, e.cfg.StrategyConfig, e.cfg.Symbols)
	if err != nil {
		return e.failWindow(result, log, "validate", err)
	}

	result.Train = train
	result.Validate = validate
	result.Ratios = ComputeRatios(*train, *validate)
	result.Degraded = IsDegraded(result.Ratios[e.cfg.PrimaryMetric], e.cfg.DegradationThreshold)
	result.State = WindowStateScored
	metrics.RecordWindowRun("scored")

	log.WithFields(logrus.Fields{
		"train_trades":    train.TotalTrades,
		"validate_trades": validate.TotalTrades,
		"degraded":        result.Degraded,
	}).Debug("Window scored")
	return result
}

func (e *Engine) failWindow(result WindowResult, log *logrus.Entry, phase string, err error) WindowResult {
	result.State = WindowStateFailed
	result.Error = err.Error()
	metrics.RecordWindowRun("failed")
	log.WithFields(logrus.Fields{"phase": phase}).WithError(err).Warn("Window failed")
	return result
}
