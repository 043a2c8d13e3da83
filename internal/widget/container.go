package widget

import (
	"github.com/diogo/docchat/internal/markup"
	"github.com/diogo/docchat/internal/models"
)

// NodeID identifies a node in a container
type NodeID string

// NodeKind distinguishes messages from typing indicators
type NodeKind int

const (
	MessageNode NodeKind = iota
	TypingNode
)

// Node is one rendered entry of the chat container
type Node struct {
	ID       NodeID
	Kind     NodeKind
	Message  models.Message   // zero for typing nodes
	Segments []markup.Segment // parsed Message.Text
}

// Container is the scrollable list of nodes the widget renders into
type Container interface {
	Append(n Node)
	Remove(id NodeID) bool
	ScrollToBottom()
}

// Input is the text field the user types into
type Input interface {
	Value() string
	SetValue(s string)
	Focus()
}

// Header is the element that carries the backend status badge
type Header interface {
	HasBadge() bool
	AddBadge(b models.Badge)
}

// Transcript is the in-memory Container used by the TUI and headless mode
type Transcript struct {
	nodes         []Node
	scrollPending bool
}

// NewTranscript creates an empty transcript
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a node at the end
func (t *Transcript) Append(n Node) {
	t.nodes = append(t.nodes, n)
}

// Remove deletes the node with the given ID, preserving order
func (t *Transcript) Remove(id NodeID) bool {
	for i, n := range t.nodes {
		if n.ID == id {
			t.nodes = append(t.nodes[:i], t.nodes[i+1:]...)
			return true
		}
	}
	return false
}

// ScrollToBottom records that the view should follow the newest node
func (t *Transcript) ScrollToBottom() {
	t.scrollPending = true
}

// TakeScroll reports and clears a pending scroll request
func (t *Transcript) TakeScroll() bool {
	pending := t.scrollPending
	t.scrollPending = false
	return pending
}

// Nodes returns a copy of the nodes in display order
func (t *Transcript) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Len returns the number of nodes
func (t *Transcript) Len() int {
	return len(t.nodes)
}

// Messages returns only the message nodes' messages, in order
func (t *Transcript) Messages() []models.Message {
	var msgs []models.Message
	for _, n := range t.nodes {
		if n.Kind == MessageNode {
			msgs = append(msgs, n.Message)
		}
	}
	return msgs
}

// TypingCount returns how many typing indicators are present
func (t *Transcript) TypingCount() int {
	count := 0
	for _, n := range t.nodes {
		if n.Kind == TypingNode {
			count++
		}
	}
	return count
}

// LastBotMessage returns the newest bot message, if any
func (t *Transcript) LastBotMessage() (models.Message, bool) {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := t.nodes[i]
		if n.Kind == MessageNode && !n.Message.IsUser {
			return n.Message, true
		}
	}
	return models.Message{}, false
}

// TextInput is a plain in-memory Input
type TextInput struct {
	value   string
	focused bool
}

// NewTextInput creates an input holding value
func NewTextInput(value string) *TextInput {
	return &TextInput{value: value}
}

func (i *TextInput) Value() string     { return i.value }
func (i *TextInput) SetValue(s string) { i.value = s }
func (i *TextInput) Focus()            { i.focused = true }

// Focused reports whether Focus was called
func (i *TextInput) Focused() bool { return i.focused }

// HeaderBar is the in-memory Header
type HeaderBar struct {
	badges []models.Badge
}

// NewHeaderBar creates an empty header
func NewHeaderBar() *HeaderBar {
	return &HeaderBar{}
}

func (h *HeaderBar) HasBadge() bool { return len(h.badges) > 0 }

func (h *HeaderBar) AddBadge(b models.Badge) {
	h.badges = append(h.badges, b)
}

// Badge returns the first badge, if any
func (h *HeaderBar) Badge() (models.Badge, bool) {
	if len(h.badges) == 0 {
		return models.Badge{}, false
	}
	return h.badges[0], true
}

// BadgeCount returns how many badges were added
func (h *HeaderBar) BadgeCount() int {
	return len(h.badges)
}
