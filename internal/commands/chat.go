package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/docchat/internal/render"
	"github.com/diogo/docchat/internal/tui"
)

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	deps = withDefaults(deps)

	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the documentation assistant.

Enter sends, F1-F4 ask the quick questions, Ctrl+Y copies the last reply
and "/export <path>" saves the transcript as HTML. Type 'exit', 'quit',
or press Esc to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings()
			if err != nil {
				return err
			}

			if !render.SetTUITheme(cfg.TUITheme) {
				fmt.Fprintf(deps.Stderr, "Warning: unknown theme %q, using %s\n", cfg.TUITheme, render.GetTUITheme().Name)
			}
			tui.UpdateTheme()

			logger, closeLog, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			backend, err := deps.NewBackend(cfg)
			if err != nil {
				return err
			}

			logger.Info().Str("base_url", cfg.BaseURL).Str("render_mode", cfg.RenderMode).Msg("starting chat")

			return deps.TUI.RunChat(cmd.Context(), backend, tui.Options{
				QuickQuestions: cfg.QuickQuestions,
				RenderMode:     cfg.RenderMode,
				Markdown:       render.OptionsFromConfig(cfg.Markdown, 0),
				Logger:         &logger,
			})
		},
	}
}
