// Package logging sets up the diagnostic logger.
//
// The chat TUI owns the terminal, so diagnostics go to a file by default.
// A log file of "-" sends human-readable output to stderr instead.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger
type Options struct {
	File  string // path, "-" for stderr, "" to discard
	Level string // debug, info, warn, error
}

// New creates a logger and returns a closer for the underlying file.
// The closer is never nil.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	w, closer, err := openWriter(opts.File)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Str("app", "docchat").Logger()
	return logger, closer, nil
}

// ParseLevel maps a config level string to a zerolog level.
// An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func openWriter(path string) (io.Writer, func() error, error) {
	switch path {
	case "":
		return io.Discard, noop, nil
	case "-":
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}

func noop() error { return nil }
