package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/docchat/internal/markup"
)

// plainStyles renders without colors so output can be compared as text
func plainStyles() SegmentStyles {
	s := lipgloss.NewStyle()
	return SegmentStyles{Plain: s, Bold: s, Code: s, Block: s, Lang: s}
}

// trimLines drops the padding lipgloss adds to multi-line blocks
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello world", "hello world"},
		{"bold drops markers", "a **b** c", "a b c"},
		{"code drops backticks", "run `ls`", "run ls"},
		{"line breaks", "one\ntwo", "one\ntwo"},
		{"block on its own line", "see ```x``` now", "see\nx\n now"},
		{"block with language", "```go\nfmt.Println()\n```", "go\nfmt.Println()"},
		{"one-word first line is kept", "```SELECT\n* FROM t```", "SELECT\n* FROM t"},
		{"code inside bold", "**a `b` c**", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trimLines(Segments(markup.Parse(tt.in), plainStyles(), 0))
			if got != tt.want {
				t.Errorf("Segments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegments_Wrap(t *testing.T) {
	out := Segments(markup.Parse("alpha beta gamma delta"), plainStyles(), 11)
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 11 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if !strings.Contains(out, "delta") {
		t.Errorf("wrapped output lost text: %q", out)
	}
}

func TestText_UsesActiveTheme(t *testing.T) {
	out := Text("**docs** and `code`", 0)
	if !strings.Contains(out, "docs") || !strings.Contains(out, "code") {
		t.Errorf("Text() = %q", out)
	}
	if strings.Contains(out, "**") || strings.Contains(out, "`") {
		t.Errorf("markers should be consumed: %q", out)
	}
}
