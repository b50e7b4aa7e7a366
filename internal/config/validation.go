// Package config provides configuration management for tradescore.
package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("environment", validateEnvironment); err != nil {
		return nil, fmt.Errorf("failed to register environment validator: %w", err)
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, fmt.Errorf("failed to register loglevel validator: %w", err)
	}
	if err := v.RegisterValidation("monthkey", validateMonthKey); err != nil {
		return nil, fmt.Errorf("failed to register monthkey validator: %w", err)
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return err
	}
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

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
		return true
	default:
		return false
	}
}

func validateMonthKey(fl validator.FieldLevel) bool {
	return monthKeyPattern.MatchString(fl.Field().String())
}

// validateCrossField checks rules the struct tags cannot express: the
// risk-free schedule is keyed by month strings the tag validator never
// sees, and the metrics listener needs an address when enabled.
func validateCrossField(cfg *Config) error {
	for month := range cfg.Analytics.RiskFree {
		if !monthKeyPattern.MatchString(month) {
			return fmt.Errorf("analytics.risk_free: invalid month key %q (want YYYY-MM)", month)
		}
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Address == "" {
		return fmt.Errorf("metrics.address is required when metrics.enabled is true")
	}
	return nil
}

func formatValidationErrors(errs validator.ValidationErrors) error {
	msg := "configuration validation failed:"
	for _, e := range errs {
		msg += fmt.Sprintf("\n  - %s: failed %s validation", e.Namespace(), e.Tag())
	}
	return fmt.Errorf("%s", msg)
}
