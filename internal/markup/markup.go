// Package markup turns chat message text into a typed sequence of segments.
//
// The recognized subset is deliberately small: **bold**, `code`, line breaks
// and ``` fenced blocks. Everything else is plain text. Bold and inline code
// never span a line break; an unterminated delimiter is kept as plain text.
// Inline code may appear inside bold, not the other way round.
package markup

import (
	"html"
	"strings"
)

// Kind identifies the type of a segment
type Kind int

const (
	Plain Kind = iota
	Bold
	Code
	CodeBlock
	LineBreak
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Code:
		return "code"
	case CodeBlock:
		return "codeblock"
	case LineBreak:
		return "linebreak"
	default:
		return "unknown"
	}
}

// Segment is one piece of formatted text
type Segment struct {
	Kind Kind
	Text string
	// Lang is the first word of a fenced block ("```go"), if it is alone
	// on its line. It stays part of Text.
	Lang string
	// Inner holds the plain and code pieces of a bold segment that
	// contains inline code. Text is then their concatenation.
	Inner []Segment
}

const fence = "```"

// Parse splits text into segments. Fences are matched first so that a
// block's backticks are never consumed as inline code.
func Parse(text string) []Segment {
	var (
		segs  []Segment
		plain strings.Builder
	)

	flush := func() {
		if plain.Len() > 0 {
			segs = append(segs, Segment{Kind: Plain, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		rest := text[i:]

		if strings.HasPrefix(rest, fence) {
			if end := strings.Index(rest[len(fence):], fence); end >= 0 {
				flush()
				segs = append(segs, codeBlock(rest[len(fence):len(fence)+end]))
				i += 2*len(fence) + end
				continue
			}
		}

		if strings.HasPrefix(rest, "**") {
			if body, ok := span(rest[2:], "**"); ok {
				flush()
				segs = append(segs, bold(body))
				i += 4 + len(body)
				continue
			}
		}

		if rest[0] == '`' {
			if body, ok := span(rest[1:], "`"); ok {
				flush()
				segs = append(segs, Segment{Kind: Code, Text: body})
				i += 2 + len(body)
				continue
			}
		}

		if rest[0] == '\n' {
			flush()
			segs = append(segs, Segment{Kind: LineBreak})
			i++
			continue
		}

		plain.WriteByte(rest[0])
		i++
	}
	flush()

	return segs
}

// span returns the text before the closing delimiter, which must appear
// before the next newline.
func span(s, closing string) (string, bool) {
	end := strings.Index(s, closing)
	if end < 0 {
		return "", false
	}
	body := s[:end]
	if strings.Contains(body, "\n") {
		return "", false
	}
	return body, true
}

// codeBlock builds a CodeBlock segment with its body verbatim. A single
// word on the first line is also recorded as the language hint.
func codeBlock(body string) Segment {
	seg := Segment{Kind: CodeBlock, Text: body}
	if nl := strings.IndexByte(body, '\n'); nl > 0 {
		first := body[:nl]
		if !strings.ContainsAny(first, " \t`") {
			seg.Lang = first
		}
	}
	return seg
}

// bold builds a Bold segment, splitting out any inline code spans
func bold(body string) Segment {
	var (
		inner   []Segment
		text    strings.Builder
		plain   strings.Builder
		hasCode bool
	)

	flush := func() {
		if plain.Len() > 0 {
			inner = append(inner, Segment{Kind: Plain, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(body); {
		if body[i] == '`' {
			if code, ok := span(body[i+1:], "`"); ok {
				flush()
				inner = append(inner, Segment{Kind: Code, Text: code})
				text.WriteString(code)
				hasCode = true
				i += 2 + len(code)
				continue
			}
		}
		plain.WriteByte(body[i])
		text.WriteByte(body[i])
		i++
	}
	flush()

	if !hasCode {
		return Segment{Kind: Bold, Text: body}
	}
	return Segment{Kind: Bold, Text: text.String(), Inner: inner}
}

// Format renders text as HTML markup. All text is escaped, so markup in the
// message is shown literally rather than interpreted.
func Format(text string) string {
	return HTML(Parse(text))
}

// HTML renders segments as HTML markup
func HTML(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case Plain:
			sb.WriteString(html.EscapeString(seg.Text))
		case Bold:
			if seg.Inner != nil {
				sb.WriteString("<strong>" + HTML(seg.Inner) + "</strong>")
			} else {
				sb.WriteString("<strong>" + html.EscapeString(seg.Text) + "</strong>")
			}
		case Code:
			sb.WriteString("<code>" + html.EscapeString(seg.Text) + "</code>")
		case CodeBlock:
			sb.WriteString("<pre><code")
			if seg.Lang != "" {
				sb.WriteString(` class="language-` + html.EscapeString(seg.Lang) + `"`)
			}
			sb.WriteString(">" + html.EscapeString(seg.Text) + "</code></pre>")
		case LineBreak:
			sb.WriteString("<br>")
		}
	}
	return sb.String()
}

// PlainText renders segments back to unformatted text
func PlainText(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case LineBreak:
			sb.WriteByte('\n')
		default:
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}
