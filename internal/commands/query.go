package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/markup"
	"github.com/diogo/docchat/internal/models"
	"github.com/diogo/docchat/internal/render"
	"github.com/diogo/docchat/internal/tui"
	"github.com/diogo/docchat/internal/widget"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#ff6b6b"),
	lipgloss.Color("#feca57"),
	lipgloss.Color("#48dbfb"),
	lipgloss.Color("#ff9ff3"),
	lipgloss.Color("#54a0ff"),
	lipgloss.Color("#5f27cd"),
	lipgloss.Color("#00d2d3"),
	lipgloss.Color("#1dd1a1"),
}

var colorSuccess = lipgloss.Color("#9ece6a")

// spinner handles the animated loading indicator
type spinner struct {
	out     io.Writer
	message string
	stopCh  chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool
}

// newSpinner creates a new animated spinner writing to out
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stopCh:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	theme := render.GetTUITheme()
	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(theme.TextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(theme.Text).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stop halts the animation and clears its line. Safe to call twice.
func (s *spinner) stop() {
	s.mu.Lock()
	if !s.stopped {
		close(s.stopCh)
		s.stopped = true
	}
	s.mu.Unlock()
	<-s.done
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stop()
	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// spinnerScheduler runs widget jobs on the caller's goroutine while a
// spinner animates. Disabled, it behaves like widget.Inline.
type spinnerScheduler struct {
	out     io.Writer
	message string
	enabled bool
}

func (s *spinnerScheduler) Go(work func() func()) {
	if !s.enabled {
		work()()
		return
	}
	spin := newSpinner(s.out, s.message)
	spin.start()
	done := work()
	spin.stop()
	done()
}

// recordingBackend remembers the last chat error. The widget only logs
// failures, but the one-shot command must exit non-zero.
type recordingBackend struct {
	api.BackendInterface
	chatErr error
}

func (r *recordingBackend) Chat(ctx context.Context, message string) (*models.ChatResponse, error) {
	resp, err := r.BackendInterface.Chat(ctx, message)
	r.chatErr = err
	return resp, err
}

// runQuery asks a single question through a headless widget and prints
// the reply. Non-interactive output is the raw reply text.
func runQuery(ctx context.Context, deps *Dependencies, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	render.SetTUITheme(cfg.TUITheme)

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	backend, err := deps.NewBackend(cfg)
	if err != nil {
		return err
	}
	rec := &recordingBackend{BackendInterface: backend}

	interactive := deps.Interactive()
	sched := &spinnerScheduler{out: deps.Stderr, enabled: interactive}
	transcript := widget.NewTranscript()
	header := widget.NewHeaderBar()
	w := widget.New(transcript, widget.NewTextInput(question), header, rec,
		widget.WithScheduler(sched),
		widget.WithLogger(logger),
	)

	sched.message = "Connecting to " + cfg.BaseURL
	w.Start(ctx)

	sched.message = "Thinking"
	w.SendMessage(ctx)

	reply, _ := transcript.LastBotMessage()

	if !interactive {
		if rec.chatErr != nil {
			return fmt.Errorf("chat request failed: %w", rec.chatErr)
		}
		if outputFlag != "" {
			return writeOutput(reply.Text)
		}
		fmt.Fprint(deps.Stdout, reply.Text)
		return nil
	}

	printReply(deps.Stdout, cfg, header, reply.Text)

	if rec.chatErr != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(rec.chatErr, "Chat request failed"))
		return fmt.Errorf("chat request failed: %w", rec.chatErr)
	}

	if cfg.CopyToClipboard {
		if err := clipboard.WriteAll(reply.Text); err != nil {
			warnMsg := lipgloss.NewStyle().Foreground(render.GetTUITheme().Error).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
			)
			fmt.Fprintln(deps.Stderr, warnMsg)
		} else {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if outputFlag != "" {
		if err := writeOutput(reply.Text); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", outputFlag),
		))
	}

	return nil
}

func writeOutput(text string) error {
	if err := os.WriteFile(outputFlag, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// printReply prints the reply in a bubble like the chat TUI, labelled with
// the backend badge when the probe succeeded
func printReply(out io.Writer, cfg config.Config, header *widget.HeaderBar, text string) {
	theme := render.GetTUITheme()

	bubbleWidth := getTerminalWidth() - 2
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}
	contentWidth := bubbleWidth - 4

	label := lipgloss.NewStyle().Foreground(theme.Bot).Bold(true).Render("✦ Assistant")
	if badge, ok := header.Badge(); ok {
		label += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + badge.Mode)
		if badge.HasModel() {
			label += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · " + badge.Model)
		}
	}

	var body string
	if cfg.RenderMode == config.RenderModeMarkdown {
		if rendered, err := render.Markdown(text, render.OptionsFromConfig(cfg.Markdown, contentWidth)); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	if body == "" {
		body = render.Segments(markup.Parse(text), render.NewSegmentStyles(theme), contentWidth)
	}

	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Bot).
		Foreground(theme.Text).
		Padding(0, 1).
		MarginTop(1).
		MarginBottom(1).
		Width(bubbleWidth).
		Render(body)

	fmt.Fprintln(out, label)
	fmt.Fprintln(out, bubble)
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatErrorMessage formats an error with the context it happened in
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}
	return tui.FormatError(fmt.Errorf("%s: %w", context, err))
}
