package config

import "testing"

func validConfig() *Config {
	return &Config{
		AntiwordPath:  "antiword",
		CalibrePath:   "ebook-convert",
		TesseractPath: "tesseract",
		PdftoppmPath:  "pdftoppm",
		LogLevel:      "info",
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateEmptyToolPath(t *testing.T) {
	cfg := validConfig()
	cfg.TesseractPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty tool path should fail validation")
	}
}

func TestValidateLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown log level should fail validation")
	}

	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg.LogLevel = level
		if err := cfg.Validate(); err != nil {
			t.Errorf("log level %q rejected: %v", level, err)
		}
	}
}
