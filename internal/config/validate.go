package config

import (
	"fmt"
	"log/slog"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the config for invalid values and returns all errors found.
// Dangerous values that would break the capture loop are clamped to safe
// defaults; other validation errors are logged as warnings but do not
// prevent startup.
func (c *Config) Validate() []error {
	var errs []error

	if c.AdapterIndex < 0 {
		errs = append(errs, fmt.Errorf("adapter_index %d is negative, clamping to 0", c.AdapterIndex))
		c.AdapterIndex = 0
	}

	if c.DisplayIndex < 0 {
		errs = append(errs, fmt.Errorf("display_index %d is negative, clamping to 0", c.DisplayIndex))
		c.DisplayIndex = 0
	}

	// 0 means "derive from the display refresh rate".
	if c.AcquireTimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("acquire_timeout_ms %d is negative, clamping to 0", c.AcquireTimeoutMs))
		c.AcquireTimeoutMs = 0
	} else if c.AcquireTimeoutMs > 1000 {
		errs = append(errs, fmt.Errorf("acquire_timeout_ms %d exceeds maximum 1000, clamping", c.AcquireTimeoutMs))
		c.AcquireTimeoutMs = 1000
	}

	if c.MaxRecoveryAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_recovery_attempts %d is below minimum 1, clamping", c.MaxRecoveryAttempts))
		c.MaxRecoveryAttempts = 1
	} else if c.MaxRecoveryAttempts > 100 {
		errs = append(errs, fmt.Errorf("max_recovery_attempts %d exceeds maximum 100, clamping", c.MaxRecoveryAttempts))
		c.MaxRecoveryAttempts = 100
	}

	if c.RecoveryDelayMs < 10 {
		errs = append(errs, fmt.Errorf("recovery_delay_ms %d is below minimum 10, clamping", c.RecoveryDelayMs))
		c.RecoveryDelayMs = 10
	} else if c.RecoveryDelayMs > 10000 {
		errs = append(errs, fmt.Errorf("recovery_delay_ms %d exceeds maximum 10000, clamping", c.RecoveryDelayMs))
		c.RecoveryDelayMs = 10000
	}

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
	}

	// Log validation errors as warnings
	for _, err := range errs {
		slog.Warn("config validation", "error", err)
	}

	return errs
}
