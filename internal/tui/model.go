package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/docchat/internal/api"
	"github.com/diogo/docchat/internal/config"
	"github.com/diogo/docchat/internal/render"
	"github.com/diogo/docchat/internal/widget"
)

// Animation tick message
type animationTickMsg time.Time

// completionMsg carries a widget completion back into Update
type completionMsg func()

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// teaScheduler turns widget jobs into commands. The job runs inside the
// command; its completion comes back as a completionMsg.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) Go(work func() func()) {
	s.pending = append(s.pending, func() tea.Msg {
		return completionMsg(work())
	})
}

// drain returns the jobs queued since the last call
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// inputArea lets the widget drive the textarea. It is shared by pointer so
// every copy of Model sees the same text.
type inputArea struct {
	ta textarea.Model
}

func (a *inputArea) Value() string     { return a.ta.Value() }
func (a *inputArea) SetValue(s string) { a.ta.SetValue(s) }
func (a *inputArea) Focus()            { a.ta.Focus() }

// Options configures the chat model
type Options struct {
	QuickQuestions []string
	// RenderMode is config.RenderModeSegments or config.RenderModeMarkdown
	RenderMode string
	Markdown   render.Options
	// Logger defaults to a no-op logger
	Logger *zerolog.Logger
}

// Model represents the TUI state
type Model struct {
	ctx context.Context

	widget     *widget.Widget
	transcript *widget.Transcript
	header     *widget.HeaderBar
	input      *inputArea
	sched      *teaScheduler

	viewport viewport.Model
	spinner  spinner.Model

	quickQuestions []string
	renderMode     string
	mdOpts         render.Options

	ready          bool
	animating      bool
	animationFrame int
	notice         string
	err            error

	width  int
	height int
}

// NewChatModel creates the chat model around a widget bound to backend
func NewChatModel(ctx context.Context, backend api.BackendInterface, opts Options) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about the docs..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = typingStyle

	if opts.RenderMode == "" {
		opts.RenderMode = config.RenderModeSegments
	}
	if opts.Markdown.Style == "" {
		opts.Markdown = render.DefaultOptions()
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	m := Model{
		ctx:            ctx,
		transcript:     widget.NewTranscript(),
		header:         widget.NewHeaderBar(),
		input:          &inputArea{ta: ta},
		sched:          &teaScheduler{},
		spinner:        s,
		quickQuestions: opts.QuickQuestions,
		renderMode:     opts.RenderMode,
		mdOpts:         opts.Markdown,
	}
	m.widget = widget.New(m.transcript, m.input, m.header, backend,
		widget.WithScheduler(m.sched),
		widget.WithLogger(logger),
	)

	return m
}

// Init focuses the input and starts the health probe
func (m Model) Init() tea.Cmd {
	m.widget.Start(m.ctx)
	return tea.Batch(textarea.Blink, m.sched.drain())
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			input := strings.TrimSpace(m.input.Value())
			switch {
			case input == "exit" || input == "quit" || input == "/exit" || input == "/quit":
				return m, tea.Quit
			case input == "/export" || strings.HasPrefix(input, "/export "):
				m.export(strings.TrimSpace(strings.TrimPrefix(input, "/export")))
				m.input.SetValue("")
			default:
				m.notice, m.err = "", nil
				if m.widget.HandleKeyPress(m.ctx, "enter") {
					cmds = append(cmds, m.startAnimation())
				}
			}
			m.refresh()
			return m, tea.Batch(append(cmds, m.sched.drain())...)

		case "f1", "f2", "f3", "f4":
			idx := int(msg.String()[1] - '1')
			if idx < len(m.quickQuestions) {
				m.notice, m.err = "", nil
				if m.widget.SendQuickQuestion(m.ctx, m.quickQuestions[idx]) {
					cmds = append(cmds, m.startAnimation())
				}
				m.refresh()
			}
			return m, tea.Batch(append(cmds, m.sched.drain())...)

		case "ctrl+y":
			m.copyLastReply()
			return m, nil
		}

		m.input.ta, cmd = m.input.ta.Update(msg)
		cmds = append(cmds, cmd)

	case completionMsg:
		if msg != nil {
			msg()
		}
		m.refresh()
		cmds = append(cmds, m.sched.drain())

	case spinner.TickMsg:
		if m.widget.InFlight() > 0 {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.widget.InFlight() > 0 {
			m.animationFrame++
			m.refresh()
			cmds = append(cmds, animationTick())
		} else {
			m.animating = false
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 4 // Header panel with border
	inputHeight := 6  // Input panel with border
	statusHeight := 1
	padding := 2

	vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.input.ta.SetWidth(contentWidth - 4)
	m.refresh()
}

// startAnimation starts the tick loop unless one is already running
func (m *Model) startAnimation() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	m.animationFrame = 0
	return tea.Batch(m.spinner.Tick, animationTick())
}

func (m *Model) export(path string) {
	if path == "" {
		m.err = fmt.Errorf("usage: /export <path>")
		return
	}
	if err := widget.ExportHTML(path, m.transcript, m.header); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.notice = "Transcript exported to " + path
}

func (m *Model) copyLastReply() {
	last, ok := m.transcript.LastBotMessage()
	if !ok {
		m.notice = "Nothing to copy yet"
		return
	}
	if err := writeClipboard(last.Text); err != nil {
		m.err = fmt.Errorf("failed to copy to clipboard: %w", err)
		return
	}
	m.err = nil
	m.notice = "Copied last reply to clipboard"
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	sections = append(sections, headerStyle.Width(contentWidth).Render(m.renderHeader()))

	messages := m.viewport.View()
	if m.transcript.Len() == 0 {
		messages = m.renderWelcome()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messages))

	inputContent := lipgloss.JoinVertical(
		lipgloss.Left,
		inputLabelStyle.Render("You"),
		m.input.ta.View(),
	)
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	switch {
	case m.err != nil:
		sections = append(sections, FormatError(m.err))
	case m.notice != "":
		sections = append(sections, noticeStyle.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and, once the probe answered, the badge
func (m Model) renderHeader() string {
	parts := []string{titleStyle.Render("✦ Docs Assistant")}
	if badge, ok := m.header.Badge(); ok {
		parts = append(parts, hintStyle.Render("  •  "), badgeStyle.Render(badge.Mode))
		if badge.HasModel() {
			parts = append(parts, modelNameStyle.Render(badge.Model))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderWelcome renders the empty state with the quick questions
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4

	lines := []string{
		"",
		welcomeIconStyle.Width(width).Render("✦"),
		"",
		welcomeTitleStyle.Width(width).Render("Ask anything about the documentation"),
		"",
	}
	for i, q := range m.quickQuestions {
		if i >= 4 {
			break
		}
		lines = append(lines, welcomeStyle.Width(width).Render(
			quickKeyStyle.Render(fmt.Sprintf("F%d", i+1))+"  "+q))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	topPadding := (m.viewport.Height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + content
}

// renderTyping renders the animated typing indicator
func (m Model) renderTyping() string {
	frame := m.animationFrame

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			color := gradientColors[(frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(color).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	return fmt.Sprintf("%s %s %s", m.spinner.View(), typingStyle.Render("thinking"), dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"F1-F4", "Quick"},
		{"Ctrl+Y", "Copy"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// refresh redraws the transcript into the viewport and follows the
// widget's scroll requests
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, node := range m.transcript.Nodes() {
		if i > 0 {
			content.WriteString("\n")
		}

		switch {
		case node.Kind == widget.TypingNode:
			content.WriteString(botLabelStyle.Render("✦ Assistant") + "\n" + m.renderTyping())
		case node.Message.IsUser:
			body := render.Segments(node.Segments, segmentStyles, bubbleWidth-4)
			content.WriteString(userLabelStyle.Render("● You") + "\n" + userBubbleStyle.Width(bubbleWidth).Render(body))
		default:
			content.WriteString(botLabelStyle.Render("✦ Assistant") + "\n" + botBubbleStyle.Width(bubbleWidth).Render(m.renderReply(node, bubbleWidth-4)))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
	if m.transcript.TakeScroll() {
		m.viewport.GotoBottom()
	}
}

// renderReply renders a bot message in the configured mode. Markdown
// falls back to segments when glamour fails.
func (m Model) renderReply(node widget.Node, width int) string {
	if m.renderMode == config.RenderModeMarkdown {
		out, err := render.Markdown(node.Message.Text, m.mdOpts.WithWidth(width))
		if err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return render.Segments(node.Segments, segmentStyles, width)
}

// RunChat starts the chat TUI
func RunChat(ctx context.Context, backend api.BackendInterface, opts Options) error {
	p := tea.NewProgram(
		NewChatModel(ctx, backend, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
