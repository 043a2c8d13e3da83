// Package widget implements the chat widget: it renders messages into a
// container, dispatches user input to the backend and shows the backend's
// status badge.
//
// A Widget must only be used from one goroutine (the UI loop). Network
// calls are handed to a Scheduler, which brings their completions back to
// that loop.
package widget

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/diogo/docchat/internal/api"
	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/markup"
	"github.com/diogo/docchat/internal/models"
)

// Widget is the chat widget bound to its page elements
type Widget struct {
	container Container
	input     Input
	header    Header
	backend   api.BackendInterface

	sched Scheduler
	log   zerolog.Logger
	newID func() NodeID

	// typing is the indicator shown most recently and not yet removed
	typing   *NodeID
	inFlight int
}

// Option configures a Widget
type Option func(*Widget)

// WithScheduler sets how network work is run. Defaults to Inline.
func WithScheduler(s Scheduler) Option {
	return func(w *Widget) {
		w.sched = s
	}
}

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Widget) {
		w.log = l
	}
}

// WithIDGenerator replaces the uuid-based node IDs
func WithIDGenerator(gen func() NodeID) Option {
	return func(w *Widget) {
		w.newID = gen
	}
}

// New creates a widget bound to its container, input, header and backend
func New(container Container, input Input, header Header, backend api.BackendInterface, opts ...Option) *Widget {
	w := &Widget{
		container: container,
		input:     input,
		header:    header,
		backend:   backend,
		sched:     Inline{},
		log:       zerolog.Nop(),
		newID:     func() NodeID { return NodeID(uuid.NewString()) },
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Start focuses the input and fires the health probe
func (w *Widget) Start(ctx context.Context) {
	w.input.Focus()
	w.CheckModelInfo(ctx)
}

// InFlight returns the number of chat requests awaiting a reply
func (w *Widget) InFlight() int {
	return w.inFlight
}

// AddMessage appends a message node and scrolls to it
func (w *Widget) AddMessage(text string, isUser bool) NodeID {
	id := w.newID()
	w.container.Append(Node{
		ID:       id,
		Kind:     MessageNode,
		Message:  models.Message{Text: text, IsUser: isUser},
		Segments: markup.Parse(text),
	})
	w.container.ScrollToBottom()
	return id
}

// ShowTypingIndicator appends a typing node and tracks it. Calling it
// again before RemoveTypingIndicator creates a second node.
func (w *Widget) ShowTypingIndicator() NodeID {
	id := w.newID()
	w.container.Append(Node{ID: id, Kind: TypingNode})
	w.container.ScrollToBottom()
	w.typing = &id
	return id
}

// RemoveTypingIndicator removes the tracked indicator, if any
func (w *Widget) RemoveTypingIndicator() {
	if w.typing == nil {
		return
	}
	w.container.Remove(*w.typing)
	w.typing = nil
}

// removeIndicator removes one specific indicator
func (w *Widget) removeIndicator(id NodeID) {
	w.container.Remove(id)
	if w.typing != nil && *w.typing == id {
		w.typing = nil
	}
}

// SendMessage sends the trimmed input to the backend. It reports whether
// a request was dispatched; empty input is ignored.
func (w *Widget) SendMessage(ctx context.Context) bool {
	text := strings.TrimSpace(w.input.Value())
	if text == "" {
		return false
	}

	w.AddMessage(text, true)
	w.input.SetValue("")

	// Each request removes the indicator it showed, so overlapping sends
	// do not strand each other's indicators.
	indicator := w.ShowTypingIndicator()
	w.inFlight++

	w.sched.Go(func() func() {
		resp, err := w.backend.Chat(ctx, text)
		return func() {
			w.completeSend(indicator, resp, err)
		}
	})

	return true
}

func (w *Widget) completeSend(indicator NodeID, resp *models.ChatResponse, err error) {
	w.inFlight--
	w.removeIndicator(indicator)

	if err == nil && resp == nil {
		err = apierrors.ErrNoContent
	}
	if err != nil {
		w.log.Error().
			Err(err).
			Str("endpoint", models.PathChat).
			Int("status", apierrors.GetHTTPStatus(err)).
			Msg("chat request failed")
		w.AddMessage(models.FallbackText, false)
		return
	}

	w.AddMessage(resp.Text, false)
}

// SendQuickQuestion fills the input with question and sends it
func (w *Widget) SendQuickQuestion(ctx context.Context, question string) bool {
	w.input.SetValue(question)
	return w.SendMessage(ctx)
}

// HandleKeyPress sends on enter and ignores every other key
func (w *Widget) HandleKeyPress(ctx context.Context, key string) bool {
	if key != "enter" {
		return false
	}
	return w.SendMessage(ctx)
}

// CheckModelInfo fetches the backend status and adds the badge to the
// header, unless one is already there. Failures are only logged.
func (w *Widget) CheckModelInfo(ctx context.Context) {
	w.sched.Go(func() func() {
		status, err := w.backend.Health(ctx)
		return func() {
			w.applyHealth(status, err)
		}
	})
}

func (w *Widget) applyHealth(status *models.HealthStatus, err error) {
	if err == nil && status == nil {
		err = apierrors.ErrNoContent
	}
	if err != nil {
		w.log.Warn().
			Err(err).
			Str("endpoint", models.PathHealth).
			Msg("failed to fetch model info")
		return
	}

	if w.header.HasBadge() {
		return
	}
	w.header.AddBadge(status.Badge())
	w.log.Debug().Str("mode", status.Mode).Str("model", status.Model).Msg("backend status")
}
