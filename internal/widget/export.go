package widget

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/diogo/docchat/internal/markup"
	"github.com/diogo/docchat/internal/models"
)

// WriteHTML writes the message nodes as a standalone HTML page, using the
// same role classes as the chat page. Typing indicators are skipped.
func WriteHTML(w io.Writer, nodes []Node, badge *models.Badge) error {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>docchat transcript</title></head>\n<body>\n")
	sb.WriteString("<div class=\"chat-header\">")
	if badge != nil {
		sb.WriteString("<div class=\"model-info\"><span class=\"model-badge\">" + html.EscapeString(badge.Mode) + "</span>")
		if badge.HasModel() {
			sb.WriteString("<span class=\"model-name\">" + html.EscapeString(badge.Model) + "</span>")
		}
		sb.WriteString("</div>")
	}
	sb.WriteString("</div>\n<div class=\"chat-container\">\n")

	for _, n := range nodes {
		if n.Kind != MessageNode {
			continue
		}
		fmt.Fprintf(&sb, "<div class=\"message %s-message\"><div class=\"message-content\">%s</div></div>\n",
			n.Message.Role(), markup.HTML(n.Segments))
	}

	sb.WriteString("</div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// ExportHTML writes the transcript to path
func ExportHTML(path string, t *Transcript, header *HeaderBar) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	var badge *models.Badge
	if b, ok := header.Badge(); ok {
		badge = &b
	}

	if err := WriteHTML(f, t.Nodes(), badge); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return f.Close()
}
