package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/docchat/internal/render"
)

// NewHealthCmd creates the command that probes /api/health
func NewHealthCmd(deps *Dependencies) *cobra.Command {
	deps = withDefaults(deps)

	return &cobra.Command{
		Use:   "health",
		Short: "Show the server mode and model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings()
			if err != nil {
				return err
			}
			render.SetTUITheme(cfg.TUITheme)

			backend, err := deps.NewBackend(cfg)
			if err != nil {
				return err
			}

			interactive := deps.Interactive()
			var spin *spinner
			if interactive {
				spin = newSpinner(deps.Stderr, "Connecting to "+cfg.BaseURL)
				spin.start()
			}

			status, err := backend.Health(cmd.Context())
			if err != nil {
				if interactive {
					spin.stop()
					fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Health check failed"))
				}
				return fmt.Errorf("health check failed: %w", err)
			}

			badge := status.Badge()
			if !interactive {
				if badge.HasModel() {
					fmt.Fprintf(deps.Stdout, "%s %s\n", badge.Mode, badge.Model)
				} else {
					fmt.Fprintln(deps.Stdout, badge.Mode)
				}
				return nil
			}

			spin.stopWithSuccess("Connected to " + cfg.BaseURL)

			theme := render.GetTUITheme()
			line := lipgloss.NewStyle().
				Foreground(theme.Surface).
				Background(theme.Badge).
				Bold(true).
				Padding(0, 1).
				Render(badge.Mode)
			if badge.HasModel() {
				line += lipgloss.NewStyle().Foreground(theme.TextDim).MarginLeft(1).Render(badge.Model)
			}
			fmt.Fprintln(deps.Stdout, line)
			return nil
		},
	}
}
