package walkforward

import "errors"

// Engine errors. ErrInvalidConfig and ErrInsufficientData fail a run before
// any backtest executes; ErrAllWindowsFailed surfaces after the join barrier
// when no window produced metrics. Individual window failures are recorded on
// the WindowResult and are never returned as errors.
var (
	ErrInvalidConfig     = errors.New("invalid walk-forward configuration")
	ErrInsufficientData  = errors.New("date range too short for one train+validate window")
	ErrAllWindowsFailed  = errors.New("all validation windows failed")
	ErrAdapterRequired   = errors.New("backtest adapter is required")
	ErrNoWindowsProvided = errors.New("no window results to aggregate")
)
