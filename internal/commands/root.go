// Package commands provides CLI commands for docchat.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	outputFlag string
	fileFlag   string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd(deps *Dependencies) *cobra.Command {
	deps = withDefaults(deps)

	cmd := &cobra.Command{
		Use:   "docchat [question]",
		Short: "Chat with a documentation assistant",
		Long: `docchat is a terminal client for a documentation assistant server.
It sends questions to the server's /api/chat endpoint and shows the
server's mode from /api/health.

Examples:
  docchat chat                           Start interactive chat
  docchat health                         Show the server mode and model
  docchat "How do I authenticate?"       Ask a single question
  docchat -f question.md                 Read the question from a file
  cat question.md | docchat              Read the question from stdin
  docchat "Rate limits?" -o answer.md    Save the answer to a file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "docchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			if len(args) > 0 {
				return runQuery(cmd.Context(), deps, args[0])
			}

			if fileFlag != "" {
				data, err := os.ReadFile(fileFlag)
				if err != nil {
					return fmt.Errorf("failed to read file: %w", err)
				}
				return runQuery(cmd.Context(), deps, string(data))
			}

			question, ok, err := readStdin(deps.Stdin)
			if err != nil {
				return err
			}
			if ok && strings.TrimSpace(question) != "" {
				return runQuery(cmd.Context(), deps, question)
			}

			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&urlFlag, "url", "", "Docs server base URL (default from config)")
	cmd.PersistentFlags().StringVar(&themeFlag, "theme", "", "TUI theme (tokyonight, catppuccin, nord, dracula)")
	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", `Diagnostic log file ("-" for stderr)`)
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save the answer to file")
	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read the question from file")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewHealthCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))

	cmd.SilenceUsage = true
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readStdin reads piped input. A terminal on stdin reports ok=false.
func readStdin(r io.Reader) (string, bool, error) {
	if f, isFile := r.(*os.File); isFile {
		stat, err := f.Stat()
		if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
			return "", false, nil
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), true, nil
}
