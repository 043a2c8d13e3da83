package commands

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/logging"
)

// Global flags shared by every command
var (
	urlFlag      string
	themeFlag    string
	logFileFlag  string
	logLevelFlag string
)

// loadSettings loads the configuration and applies the global flags on top
func loadSettings() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if urlFlag != "" {
		cfg.BaseURL = urlFlag
	}
	if themeFlag != "" {
		cfg.TUITheme = themeFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger opens the diagnostic log described by cfg
func newLogger(cfg config.Config) (zerolog.Logger, func() error, error) {
	return logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
}
