package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/render"
	"github.com/diogo/docchat/internal/tui"
)

// fakeTUI records the chat session it was asked to run
type fakeTUI struct {
	called  bool
	backend api.BackendInterface
	opts    tui.Options
	err     error
}

func (f *fakeTUI) RunChat(ctx context.Context, backend api.BackendInterface, opts tui.Options) error {
	f.called = true
	f.backend = backend
	f.opts = opts
	return f.err
}

type testEnv struct {
	deps    *Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	tui     *fakeTUI
	backend *api.MockClient
	// cfg is the config the backend was built from
	cfg config.Config
}

// newTestEnv isolates HOME and wires a mock backend
func newTestEnv(t *testing.T, backend *api.MockClient) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { render.SetTUITheme(render.DefaultTUITheme) })

	env := &testEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		tui:     &fakeTUI{},
		backend: backend,
	}
	env.deps = &Dependencies{
		NewBackend: func(cfg config.Config) (api.BackendInterface, error) {
			env.cfg = cfg
			return backend, nil
		},
		TUI:         env.tui,
		Stdin:       strings.NewReader(""),
		Stdout:      env.stdout,
		Stderr:      env.stderr,
		Interactive: func() bool { return false },
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}
