package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, backend api.BackendInterface, opts tui.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// NewBackend builds the backend client from the effective config
	NewBackend func(cfg config.Config) (api.BackendInterface, error)

	// TUI is the terminal user interface.
	TUI TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive reports whether stdout is a terminal. One-shot answers
	// are decorated only when it is.
	Interactive func() bool
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, backend api.BackendInterface, opts tui.Options) error {
	return tui.RunChat(ctx, backend, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewBackend:  newBackend,
		TUI:         &DefaultTUI{},
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: isStdoutTTY,
	}
}

// withDefaults fills the unset fields of deps
func withDefaults(deps *Dependencies) *Dependencies {
	def := NewDependencies()
	if deps == nil {
		return def
	}
	d := *deps
	if d.NewBackend == nil {
		d.NewBackend = def.NewBackend
	}
	if d.TUI == nil {
		d.TUI = def.TUI
	}
	if d.Stdin == nil {
		d.Stdin = def.Stdin
	}
	if d.Stdout == nil {
		d.Stdout = def.Stdout
	}
	if d.Stderr == nil {
		d.Stderr = def.Stderr
	}
	if d.Interactive == nil {
		d.Interactive = def.Interactive
	}
	return &d
}

func newBackend(cfg config.Config) (api.BackendInterface, error) {
	client, err := api.NewClient(cfg.BaseURL, api.WithTimeout(cfg.Timeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}
