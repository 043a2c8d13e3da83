package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/models"
	"github.com/diogo/docchat/internal/render"
)

func TestChatCmd_Defaults(t *testing.T) {
	backend := &api.MockClient{}
	env := newTestEnv(t, backend)

	if err := env.run("chat"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !env.tui.called {
		t.Fatal("RunChat was not called")
	}
	if env.tui.backend != backend {
		t.Error("RunChat should receive the configured backend")
	}
	opts := env.tui.opts
	if opts.RenderMode != config.RenderModeSegments {
		t.Errorf("RenderMode = %q", opts.RenderMode)
	}
	if len(opts.QuickQuestions) != len(models.DefaultQuickQuestions()) {
		t.Errorf("QuickQuestions = %v", opts.QuickQuestions)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
	if opts.Markdown.Style != render.StyleDark {
		t.Errorf("Markdown.Style = %q", opts.Markdown.Style)
	}
	if env.cfg.BaseURL != config.DefaultConfig().BaseURL {
		t.Errorf("BaseURL = %q", env.cfg.BaseURL)
	}
}

func TestChatCmd_Flags(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})

	if err := env.run("chat", "--url", "http://docs:9000", "--theme", "nord"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.cfg.BaseURL != "http://docs:9000" {
		t.Errorf("BaseURL = %q", env.cfg.BaseURL)
	}
	if render.GetTUITheme().Name != "nord" {
		t.Errorf("theme = %q, want nord", render.GetTUITheme().Name)
	}
	if env.stderr.Len() != 0 {
		t.Errorf("unexpected warning: %q", env.stderr.String())
	}
}

func TestChatCmd_UnknownTheme(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})

	if err := env.run("chat", "--theme", "solarized"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(env.stderr.String(), `unknown theme "solarized"`) {
		t.Errorf("expected a warning, got %q", env.stderr.String())
	}
	if !env.tui.called {
		t.Error("an unknown theme should not prevent the chat")
	}
}

func TestChatCmd_TUIError(t *testing.T) {
	env := newTestEnv(t, &api.MockClient{})
	env.tui.err = errors.New("no tty")

	if err := env.run("chat"); err == nil || err.Error() != "no tty" {
		t.Errorf("expected the TUI error, got %v", err)
	}
}
