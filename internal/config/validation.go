// Package config provides configuration management for the walk-forward
// validation service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("dateformat", validateDateFormat)
	_ = v.RegisterValidation("metric", validateMetric)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateDateFormat validates YYYY-MM-DD date strings
func validateDateFormat(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// validateMetric validates the primary metric name
func validateMetric(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "win_rate", "avg_r_multiple", "profit_factor":
		return true
	default:
		return false
	}
}

// validateCrossField performs validations spanning multiple fields
func validateCrossField(cfg *Config) error {
	start, err := time.Parse("2006-01-02", cfg.WalkForward.StartDate)
	if err != nil {
		return fmt.Errorf("invalid walk_forward.start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", cfg.WalkForward.EndDate)
	if err != nil {
		return fmt.Errorf("invalid walk_forward.end_date: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("walk_forward.start_date must be before walk_forward.end_date")
	}
	if cfg.Backtest.Adapter == "remote" && cfg.Backtest.ServiceURL == "" {
		return fmt.Errorf("backtest.service_url is required for the remote adapter")
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	messages := make([]string, 0, len(errs))
	for _, fieldErr := range errs {
		messages = append(messages, fmt.Sprintf("%s failed %q validation", fieldErr.Namespace(), fieldErr.Tag()))
	}
	return fmt.Errorf("configuration invalid: %s", strings.Join(messages, "; "))
}
