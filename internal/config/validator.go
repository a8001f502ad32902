package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AthenaLink/dockronos/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "health.timeout_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateRuntime()...)
	errors = append(errors, c.validateHealth()...)
	errors = append(errors, c.validateEvents()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateServices()...)

	return errors
}

// validateRuntime validates the RuntimeConfig
func (c *Config) validateRuntime() []ValidationError {
	var errors []ValidationError

	if c.Runtime.Preference != "" && !IsValidRuntime(c.Runtime.Preference) {
		errors = append(errors, ValidationError{
			Field:   "runtime.preference",
			Value:   c.Runtime.Preference,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidRuntimes(), ", ")),
		})
	}

	if c.Runtime.RestartDelaySeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "runtime.restart_delay_seconds",
			Value:   c.Runtime.RestartDelaySeconds,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateHealth validates the HealthConfig
func (c *Config) validateHealth() []ValidationError {
	var errors []ValidationError

	if c.Health.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "health.timeout_seconds",
			Value:   c.Health.TimeoutSeconds,
			Message: "must be at least 1",
		})
	}

	if c.Health.IntervalSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "health.interval_seconds",
			Value:   c.Health.IntervalSeconds,
			Message: "must be at least 1",
		})
	}

	if c.Health.GracePeriodSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "health.grace_period_seconds",
			Value:   c.Health.GracePeriodSeconds,
			Message: "must be non-negative",
		})
	}

	if c.Health.TimeoutSeconds >= 1 && c.Health.IntervalSeconds > c.Health.TimeoutSeconds {
		errors = append(errors, ValidationError{
			Field:   "health.interval_seconds",
			Value:   c.Health.IntervalSeconds,
			Message: fmt.Sprintf("must not exceed health.timeout_seconds (%d)", c.Health.TimeoutSeconds),
		})
	}

	return errors
}

// validateEvents validates the EventsConfig
func (c *Config) validateEvents() []ValidationError {
	var errors []ValidationError

	if c.Events.ReplayLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "events.replay_limit",
			Value:   c.Events.ReplayLimit,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(logging.ValidLevels(), strings.ToUpper(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}

	return errors
}

// validateServices validates the declared service definitions
func (c *Config) validateServices() []ValidationError {
	var errors []ValidationError

	seen := make(map[string]bool, len(c.Services))
	for i, svc := range c.Services {
		field := fmt.Sprintf("services[%d]", i)

		if svc.Name == "" {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   svc.Name,
				Message: "must not be empty",
			})
			continue
		}

		if seen[svc.Name] {
			errors = append(errors, ValidationError{
				Field:   field + ".name",
				Value:   svc.Name,
				Message: "duplicate service name",
			})
		}
		seen[svc.Name] = true

		for _, dep := range svc.DependsOn {
			if dep == svc.Name {
				errors = append(errors, ValidationError{
					Field:   field + ".depends_on",
					Value:   dep,
					Message: "service must not depend on itself",
				})
			}
		}
	}

	return errors
}
