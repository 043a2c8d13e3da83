// Package config handles configuration loading for docchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/diogo/docchat/internal/models"
)

// Render modes for bot replies
const (
	RenderModeSegments = "segments"
	RenderModeMarkdown = "markdown"
)

// MarkdownConfig configures the glamour renderer used in markdown mode
type MarkdownConfig struct {
	Style            string `json:"style" env:"DOCCHAT_GLAMOUR_STYLE"` // "dark", "light", "dracula", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`                      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`                 // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`                        // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"`                // Render links inline in tables
}

// Config represents the user configuration.
// Precedence: defaults < config.json < .env < environment < command-line flags.
type Config struct {
	// BaseURL is the backend origin; /api/chat and /api/health are resolved against it.
	BaseURL string `json:"base_url" env:"DOCCHAT_BASE_URL"`
	// RequestTimeout in seconds for the chat call. 0 means no timeout:
	// a hung backend keeps the typing indicator visible.
	RequestTimeout  int            `json:"request_timeout" env:"DOCCHAT_REQUEST_TIMEOUT"`
	TUITheme        string         `json:"tui_theme,omitempty" env:"DOCCHAT_TUI_THEME"`
	RenderMode      string         `json:"render_mode,omitempty" env:"DOCCHAT_RENDER_MODE"`
	CopyToClipboard bool           `json:"copy_to_clipboard" env:"DOCCHAT_COPY_TO_CLIPBOARD"`
	LogFile         string         `json:"log_file,omitempty" env:"DOCCHAT_LOG_FILE"`
	LogLevel        string         `json:"log_level,omitempty" env:"DOCCHAT_LOG_LEVEL"`
	QuickQuestions  []string       `json:"quick_questions,omitempty" env:"DOCCHAT_QUICK_QUESTIONS" envSeparator:"|"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BaseURL:         "http://localhost:8000",
		RequestTimeout:  0,
		TUITheme:        "tokyonight",
		RenderMode:      RenderModeSegments,
		CopyToClipboard: false,
		LogFile:         filepath.Join(homeDir, ".docchat", "docchat.log"),
		LogLevel:        "info",
		QuickQuestions:  models.DefaultQuickQuestions(),
		Markdown:        DefaultMarkdownConfig(),
	}
}

// Timeout returns the chat request timeout, zero when disabled
func (c Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// Validate checks the fields that cannot be defaulted silently
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base_url %q: missing host", c.BaseURL)
	}

	switch c.RenderMode {
	case RenderModeSegments, RenderModeMarkdown:
	default:
		return fmt.Errorf("invalid render_mode %q: want %q or %q", c.RenderMode, RenderModeSegments, RenderModeMarkdown)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative")
	}

	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".docchat")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk, then applies .env and
// DOCCHAT_* environment overrides.
func LoadConfig() (Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}

	// A missing .env is the common case
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}

func loadFile() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AvailableRenderModes returns the accepted render_mode values
func AvailableRenderModes() []string {
	return []string{RenderModeSegments, RenderModeMarkdown}
}
