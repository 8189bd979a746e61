package config

import (
	"fmt"
	"strings"

	"github.com/doctract/doctract/pkg/utils"
)

// ConfigValidator validates application configuration
type ConfigValidator struct{}

// NewConfigValidator creates a configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate validates the configuration
func (v *ConfigValidator) Validate(c *Config) error {
	var errs []string

	if err := v.validateToolPaths(c); err != nil {
		errs = append(errs, err.Error())
	}

	if err := v.validateLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return utils.NewValidationError("configuration validation failed",
			fmt.Errorf("validation errors: %s", strings.Join(errs, "; ")))
	}

	return nil
}

// validateToolPaths checks that no tool path is blank. Missing binaries
// are only detected when a strategy actually invokes them, so a batch that
// never needs a tool still runs.
func (v *ConfigValidator) validateToolPaths(c *Config) error {
	tools := map[string]string{
		"antiword":  c.AntiwordPath,
		"calibre":   c.CalibrePath,
		"tesseract": c.TesseractPath,
		"pdftoppm":  c.PdftoppmPath,
	}

	for name, path := range tools {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("tool path for %s cannot be empty", name)
		}
	}
	return nil
}

// validateLogLevel validates the log level value
func (v *ConfigValidator) validateLogLevel(level string) error {
	validLevels := []string{"debug", "info", "warn", "error"}

	for _, valid := range validLevels {
		if strings.ToLower(level) == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid log level: %s", level)
}
