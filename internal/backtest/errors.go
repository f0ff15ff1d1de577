package backtest

import "errors"

// Adapter errors
var (
	ErrNoTrades       = errors.New("no trades recorded in date range")
	ErrServiceFailure = errors.New("backtest service returned failure")
)
