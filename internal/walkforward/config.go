// Package walkforward implements walk-forward validation of trading
// strategies: rolling train/validate windows executed through a backtest
// adapter, per-window performance ratios, and statistical degradation
// analysis across windows.
package walkforward

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/yourusername/walkforward/internal/config"
)

// Defaults applied by ApplyDefaults
const (
	DefaultDegradationThreshold = 0.80
	DefaultPrimaryMetric        = "profit_factor"
	DefaultConcurrency          = 1
)

// Config configures one walk-forward run. StrategyConfig is opaque to the
// engine and passed through to the adapter untouched.
type Config struct {
	Symbols              []string        `json:"symbols"`
	StartDate            time.Time       `json:"start_date"`
	EndDate              time.Time       `json:"end_date"`
	TrainMonths          int             `json:"train_months"`
	ValidateMonths       int             `json:"validate_months"`
	DegradationThreshold float64         `json:"degradation_threshold"`
	PrimaryMetric        string          `json:"primary_metric"`
	Concurrency          int             `json:"concurrency"`
	WindowTimeout        time.Duration   `json:"window_timeout"`
	StrategyConfig       json.RawMessage `json:"strategy_config,omitempty"`
}

// FromConfig converts the app-level walk-forward section into a run config
func FromConfig(cfg *config.WalkForwardConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("%w: walk-forward config is required", ErrInvalidConfig)
	}
	start, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid start date: %v", ErrInvalidConfig, err)
	}
	end, err := time.Parse("2006-01-02", cfg.EndDate)
	if err != nil {
		return Config{}, fmt.Errorf("%w: invalid end date: %v", ErrInvalidConfig, err)
	}

	run := Config{
		Symbols:              cfg.Symbols,
		StartDate:            start,
		EndDate:              end,
		TrainMonths:          cfg.TrainMonths,
		ValidateMonths:       cfg.ValidateMonths,
		DegradationThreshold: cfg.DegradationThreshold,
		PrimaryMetric:        cfg.PrimaryMetric,
		Concurrency:          cfg.Concurrency,
		WindowTimeout:        time.Duration(cfg.WindowTimeoutSeconds) * time.Second,
	}
	if cfg.StrategyConfig != "" {
		run.StrategyConfig = json.RawMessage(cfg.StrategyConfig)
	}
	run.ApplyDefaults()

	return run, run.Validate()
}

// ApplyDefaults fills zero-valued optional fields
func (c *Config) ApplyDefaults() {
	if c.DegradationThreshold == 0 {
		c.DegradationThreshold = DefaultDegradationThreshold
	}
	if c.PrimaryMetric == "" {
		c.PrimaryMetric = DefaultPrimaryMetric
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
}

// Validate checks the configuration in a single pass before any window runs
func (c Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("%w: symbol set is empty", ErrInvalidConfig)
	}
	for _, s := range c.Symbols {
		if s == "" {
			return fmt.Errorf("%w: empty symbol", ErrInvalidConfig)
		}
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidConfig)
	}
	if !c.StartDate.Before(c.EndDate) {
		return fmt.Errorf("%w: start date must be before end date", ErrInvalidConfig)
	}
	if c.TrainMonths <= 0 {
		return fmt.Errorf("%w: train period must be a positive number of months", ErrInvalidConfig)
	}
	if c.ValidateMonths <= 0 {
		return fmt.Errorf("%w: validate period must be a positive number of months", ErrInvalidConfig)
	}
	if c.DegradationThreshold <= 0 {
		return fmt.Errorf("%w: degradation threshold must be positive", ErrInvalidConfig)
	}
	if !knownMetric(c.PrimaryMetric) {
		return fmt.Errorf("%w: unknown primary metric %q", ErrInvalidConfig, c.PrimaryMetric)
	}
	if c.WindowTimeout < 0 {
		return fmt.Errorf("%w: window timeout cannot be negative", ErrInvalidConfig)
	}
	return nil
}
