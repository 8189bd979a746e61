package config

import (
	"fmt"
	"os"

	"github.com/doctract/doctract/pkg/constants"
)

// Config holds application configuration
type Config struct {
	// External tool paths
	AntiwordPath  string
	CalibrePath   string
	TesseractPath string
	PdftoppmPath  string

	// Runtime settings
	LogLevel      string
	EnableVerbose bool
	Silent        bool
	LogFile       string
}

// DefaultConfig returns a configuration with platform-appropriate tool
// paths
func DefaultConfig() *Config {
	platform := constants.GetPlatformConfig()

	return &Config{
		AntiwordPath:  constants.FindTool(platform.AntiwordPaths),
		CalibrePath:   constants.FindTool(platform.CalibrePaths),
		TesseractPath: constants.FindTool(platform.TesseractPaths),
		PdftoppmPath:  constants.FindTool(platform.PdftoppmPaths),
		LogLevel:      constants.DefaultLogLevel,
	}
}

// LoadConfigWithEnvOverrides loads the default config and applies
// environment variable overrides
func LoadConfigWithEnvOverrides() *Config {
	config := DefaultConfig()

	if value := os.Getenv("ANTIWORD_PATH"); value != "" {
		config.AntiwordPath = value
	}
	if value := os.Getenv("CALIBRE_PATH"); value != "" {
		config.CalibrePath = value
	}
	if value := os.Getenv("TESSERACT_PATH"); value != "" {
		config.TesseractPath = value
	}
	if value := os.Getenv("PDFTOPPM_PATH"); value != "" {
		config.PdftoppmPath = value
	}
	if value := os.Getenv("DOCTRACT_LOG_LEVEL"); value != "" {
		config.LogLevel = value
	}
	if value := os.Getenv("DOCTRACT_VERBOSE"); value != "" {
		config.EnableVerbose = value == "true" || value == "1" || value == "yes"
	}

	return config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validator := NewConfigValidator()
	return validator.Validate(c)
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{LogLevel: %s, Verbose: %v, Silent: %v}",
		c.LogLevel, c.EnableVerbose, c.Silent)
}
