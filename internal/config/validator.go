package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tls.mode")
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
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidTLSModes returns the list of valid tls.mode values
func ValidTLSModes() []string {
	return []string{TLSModeNone, TLSModeExplicit, TLSModeImplicit}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{"text", "json"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "host",
			Value:   c.Host,
			Message: "is required (set --host, FTPSESSION_HOST or host in the config file)",
		})
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, ValidationError{Field: "port", Value: c.Port, Message: "must be between 1 and 65535"})
	}
	if c.NamingFormat != "0" && c.NamingFormat != "1" {
		errs = append(errs, ValidationError{
			Field:   "naming_format",
			Value:   c.NamingFormat,
			Message: `must be "0" (system naming) or "1" (path naming)`,
		})
	}
	if c.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "timeout", Value: c.Timeout, Message: "must not be negative"})
	}
	if c.IdleTimeout < 0 {
		errs = append(errs, ValidationError{Field: "idle_timeout", Value: c.IdleTimeout, Message: "must not be negative"})
	}
	if c.PollInterval <= 0 {
		errs = append(errs, ValidationError{Field: "poll_interval", Value: c.PollInterval, Message: "must be positive"})
	}

	errs = append(errs, c.validateTLS()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateTLS() []ValidationError {
	if slices.Contains(ValidTLSModes(), strings.ToLower(c.TLS.Mode)) {
		return nil
	}
	return []ValidationError{{
		Field:   "tls.mode",
		Value:   c.TLS.Mode,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidTLSModes(), ", ")),
	}}
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError
	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}
	if !slices.Contains(ValidLogFormats(), strings.ToLower(c.Logging.Format)) {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}
	return errs
}
