package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/docchat/internal/markup"
)

// SegmentStyles are the lipgloss styles applied per segment kind
type SegmentStyles struct {
	Plain lipgloss.Style
	Bold  lipgloss.Style
	Code  lipgloss.Style
	Block lipgloss.Style
	Lang  lipgloss.Style
}

// NewSegmentStyles derives segment styles from a theme
func NewSegmentStyles(theme TUITheme) SegmentStyles {
	return SegmentStyles{
		Plain: lipgloss.NewStyle().Foreground(theme.Text),
		Bold:  lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		Code: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Background(theme.Surface),
		Block: lipgloss.NewStyle().
			Foreground(theme.Text).
			Background(theme.Surface).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
		Lang: lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
	}
}

// Segments renders parsed message text for the terminal. Code blocks start
// on their own line. A positive width wraps the result.
func Segments(segs []markup.Segment, st SegmentStyles, width int) string {
	var sb strings.Builder
	atLineStart := true

	write := func(s string) {
		if s == "" {
			return
		}
		sb.WriteString(s)
		atLineStart = strings.HasSuffix(s, "\n")
	}

	for _, seg := range segs {
		switch seg.Kind {
		case markup.Plain:
			write(st.Plain.Render(seg.Text))
		case markup.Bold:
			if seg.Inner == nil {
				write(st.Bold.Render(seg.Text))
				continue
			}
			for _, in := range seg.Inner {
				if in.Kind == markup.Code {
					write(st.Code.Bold(true).Render(in.Text))
				} else {
					write(st.Bold.Render(in.Text))
				}
			}
		case markup.Code:
			write(st.Code.Render(seg.Text))
		case markup.LineBreak:
			write("\n")
		case markup.CodeBlock:
			if !atLineStart {
				write("\n")
			}
			body := strings.Trim(seg.Text, "\n")
			if rest, ok := strings.CutPrefix(body, seg.Lang+"\n"); ok && seg.Lang != "" {
				body = st.Lang.Render(seg.Lang) + "\n" + rest
			}
			write(st.Block.Render(body) + "\n")
		}
	}

	out := strings.TrimSuffix(sb.String(), "\n")
	if width > 0 {
		out = lipgloss.NewStyle().Width(width).Render(out)
	}
	return out
}

// Text renders message text with the active theme
func Text(text string, width int) string {
	return Segments(markup.Parse(text), NewSegmentStyles(GetTUITheme()), width)
}
