package widget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/diogo/docchat/internal/api"
	apierrors "github.com/diogo/docchat/internal/errors"
	"github.com/diogo/docchat/internal/markup"
	"github.com/diogo/docchat/internal/models"
)

// deferred queues work until flush, so tests can observe the widget while
// a request is in flight and reorder replies.
type deferred struct {
	jobs []func() func()
}

func (d *deferred) Go(work func() func()) {
	d.jobs = append(d.jobs, work)
}

func (d *deferred) flush(order ...int) {
	jobs := d.jobs
	d.jobs = nil
	if len(order) == 0 {
		for i := range jobs {
			order = append(order, i)
		}
	}
	for _, i := range order {
		jobs[i]()()
	}
}

type fixture struct {
	widget     *Widget
	transcript *Transcript
	input      *TextInput
	header     *HeaderBar
	backend    *api.MockClient
	logs       *bytes.Buffer
}

func newFixture(backend *api.MockClient, opts ...Option) *fixture {
	f := &fixture{
		transcript: NewTranscript(),
		input:      NewTextInput(""),
		header:     NewHeaderBar(),
		backend:    backend,
		logs:       &bytes.Buffer{},
	}
	seq := 0
	opts = append([]Option{
		WithLogger(zerolog.New(f.logs)),
		WithIDGenerator(func() NodeID {
			seq++
			return NodeID(fmt.Sprintf("node-%d", seq))
		}),
	}, opts...)
	f.widget = New(f.transcript, f.input, f.header, backend, opts...)
	return f
}

func assertMessages(t *testing.T, tr *Transcript, want ...models.Message) {
	t.Helper()
	got := tr.Messages()
	if len(got) != len(want) {
		t.Fatalf("messages = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSendMessage_Success(t *testing.T) {
	f := newFixture(&api.MockClient{ChatVal: &models.ChatResponse{Text: "hi there"}})
	f.input.SetValue("  hello  ")

	if !f.widget.SendMessage(context.Background()) {
		t.Fatal("SendMessage() should dispatch")
	}

	assertMessages(t, f.transcript,
		models.Message{Text: "hello", IsUser: true},
		models.Message{Text: "hi there"},
	)
	if f.transcript.TypingCount() != 0 {
		t.Error("typing indicator should be removed")
	}
	if f.input.Value() != "" {
		t.Errorf("input = %q, want cleared", f.input.Value())
	}
	if f.backend.ChatCalls[0] != "hello" {
		t.Errorf("backend got %q, want trimmed text", f.backend.ChatCalls[0])
	}
	if f.widget.InFlight() != 0 {
		t.Errorf("InFlight() = %d", f.widget.InFlight())
	}
}

func TestSendMessage_Failure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network error", apierrors.NewNetworkError("chat", models.PathChat, errors.New("connection refused"))},
		{"server error", apierrors.NewAPIError(500, models.PathChat, "chat failed")},
		{"parse error", apierrors.NewParseError("response is not valid JSON", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&api.MockClient{ChatErr: tt.err})
			f.input.SetValue("hello")

			f.widget.SendMessage(context.Background())

			assertMessages(t, f.transcript,
				models.Message{Text: "hello", IsUser: true},
				models.Message{Text: models.FallbackText},
			)
			if f.transcript.TypingCount() != 0 {
				t.Error("typing indicator should be removed")
			}
			if !strings.Contains(f.logs.String(), "chat request failed") {
				t.Errorf("expected the error to be logged, got %q", f.logs.String())
			}
		})
	}
}

func TestSendMessage_NilResponse(t *testing.T) {
	f := newFixture(&api.MockClient{})
	f.input.SetValue("hello")

	f.widget.SendMessage(context.Background())

	msgs := f.transcript.Messages()
	if len(msgs) != 2 || msgs[1].Text != models.FallbackText {
		t.Errorf("messages = %+v, want fallback reply", msgs)
	}
}

func TestSendMessage_EmptyInput(t *testing.T) {
	for _, value := range []string{"", "   ", "\n\t"} {
		f := newFixture(&api.MockClient{ChatVal: &models.ChatResponse{Text: "x"}})
		f.input.SetValue(value)

		if f.widget.SendMessage(context.Background()) {
			t.Errorf("SendMessage() with %q should not dispatch", value)
		}
		if f.transcript.Len() != 0 {
			t.Errorf("no nodes expected for %q, got %d", value, f.transcript.Len())
		}
		if f.backend.ChatCallCount() != 0 {
			t.Errorf("no network call expected for %q", value)
		}
	}
}

func TestSendMessage_IndicatorWhileAwaiting(t *testing.T) {
	sched := &deferred{}
	f := newFixture(&api.MockClient{ChatVal: &models.ChatResponse{Text: "done"}}, WithScheduler(sched))
	f.input.SetValue("hello")

	f.widget.SendMessage(context.Background())

	nodes := f.transcript.Nodes()
	if len(nodes) != 2 || nodes[0].Kind != MessageNode || nodes[1].Kind != TypingNode {
		t.Fatalf("nodes while awaiting = %+v", nodes)
	}
	if f.widget.InFlight() != 1 {
		t.Errorf("InFlight() = %d, want 1", f.widget.InFlight())
	}
	if f.backend.ChatCallCount() != 0 {
		t.Error("network work should not run before the scheduler does")
	}

	sched.flush()

	if f.transcript.TypingCount() != 0 {
		t.Error("typing indicator should be removed after the reply")
	}
	if f.widget.InFlight() != 0 {
		t.Errorf("InFlight() = %d, want 0", f.widget.InFlight())
	}
}

func TestSendMessage_Overlapping(t *testing.T) {
	sched := &deferred{}
	backend := &api.MockClient{
		ChatFunc: func(ctx context.Context, message string) (*models.ChatResponse, error) {
			return &models.ChatResponse{Text: "re: " + message}, nil
		},
	}
	f := newFixture(backend, WithScheduler(sched))

	f.input.SetValue("first")
	f.widget.SendMessage(context.Background())
	f.input.SetValue("second")
	f.widget.SendMessage(context.Background())

	if f.transcript.TypingCount() != 2 {
		t.Fatalf("TypingCount() = %d, want one per request", f.transcript.TypingCount())
	}

	// Second reply arrives first
	sched.flush(1, 0)

	assertMessages(t, f.transcript,
		models.Message{Text: "first", IsUser: true},
		models.Message{Text: "second", IsUser: true},
		models.Message{Text: "re: second"},
		models.Message{Text: "re: first"},
	)
	if f.transcript.TypingCount() != 0 {
		t.Errorf("TypingCount() = %d, want 0", f.transcript.TypingCount())
	}
}

func TestSendQuickQuestion(t *testing.T) {
	f := newFixture(&api.MockClient{ChatVal: &models.ChatResponse{Text: "Use the search endpoint."}})
	f.input.SetValue("draft text")

	f.widget.SendQuickQuestion(context.Background(), "How do I search for hotels?")

	assertMessages(t, f.transcript,
		models.Message{Text: "How do I search for hotels?", IsUser: true},
		models.Message{Text: "Use the search endpoint."},
	)
	if f.input.Value() != "" {
		t.Errorf("input = %q, want cleared", f.input.Value())
	}
}

func TestHandleKeyPress(t *testing.T) {
	f := newFixture(&api.MockClient{ChatVal: &models.ChatResponse{Text: "ok"}})
	f.input.SetValue("hello")

	for _, key := range []string{"a", "shift+enter", "tab", "esc"} {
		if f.widget.HandleKeyPress(context.Background(), key) {
			t.Errorf("key %q should be ignored", key)
		}
	}
	if f.backend.ChatCallCount() != 0 {
		t.Fatal("non-enter keys must not send")
	}

	if !f.widget.HandleKeyPress(context.Background(), "enter") {
		t.Error("enter should send")
	}
	if f.backend.ChatCallCount() != 1 {
		t.Errorf("ChatCallCount() = %d, want 1", f.backend.ChatCallCount())
	}
}

func TestTypingIndicator(t *testing.T) {
	f := newFixture(&api.MockClient{})

	// No-op without an indicator
	f.widget.RemoveTypingIndicator()

	f.widget.ShowTypingIndicator()
	second := f.widget.ShowTypingIndicator()
	if f.transcript.TypingCount() != 2 {
		t.Fatalf("TypingCount() = %d, want 2", f.transcript.TypingCount())
	}

	f.widget.RemoveTypingIndicator()
	for _, n := range f.transcript.Nodes() {
		if n.ID == second {
			t.Error("the tracked (latest) indicator should be removed")
		}
	}

	// The handle is cleared, so a second removal is a no-op
	f.widget.RemoveTypingIndicator()
	if f.transcript.TypingCount() != 1 {
		t.Errorf("TypingCount() = %d, want 1", f.transcript.TypingCount())
	}
}

func TestAddMessage(t *testing.T) {
	f := newFixture(&api.MockClient{})

	f.transcript.TakeScroll()
	f.widget.AddMessage("see **docs**", false)

	if !f.transcript.TakeScroll() {
		t.Error("AddMessage should scroll to bottom")
	}
	nodes := f.transcript.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("expected one node, got %d", len(nodes))
	}
	if nodes[0].Message.Role() != models.RoleBot {
		t.Errorf("role = %s, want bot", nodes[0].Message.Role())
	}
	if len(nodes[0].Segments) != 2 || nodes[0].Segments[1].Kind != markup.Bold {
		t.Errorf("segments = %+v", nodes[0].Segments)
	}
}

func TestCheckModelInfo(t *testing.T) {
	tests := []struct {
		name      string
		status    *models.HealthStatus
		wantMode  string
		wantModel string
	}{
		{"demo", &models.HealthStatus{Mode: "demo"}, "DEMO", ""},
		{"live", &models.HealthStatus{Mode: "live", Model: "gpt-x"}, "LIVE", "gpt-x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(&api.MockClient{HealthVal: tt.status})

			f.widget.CheckModelInfo(context.Background())

			badge, ok := f.header.Badge()
			if !ok {
				t.Fatal("expected a badge")
			}
			if badge.Mode != tt.wantMode || badge.Model != tt.wantModel {
				t.Errorf("badge = %+v", badge)
			}
			if badge.HasModel() != (tt.wantModel != "") {
				t.Errorf("HasModel() = %v", badge.HasModel())
			}
		})
	}
}

func TestCheckModelInfo_Idempotent(t *testing.T) {
	f := newFixture(&api.MockClient{HealthVal: &models.HealthStatus{Mode: "demo"}})

	f.widget.CheckModelInfo(context.Background())
	f.widget.CheckModelInfo(context.Background())

	if f.header.BadgeCount() != 1 {
		t.Errorf("BadgeCount() = %d, want 1", f.header.BadgeCount())
	}
	if f.backend.HealthCalls != 2 {
		t.Errorf("HealthCalls = %d, want 2", f.backend.HealthCalls)
	}
}

func TestCheckModelInfo_Failure(t *testing.T) {
	f := newFixture(&api.MockClient{HealthErr: apierrors.NewAPIError(503, models.PathHealth, "down")})

	f.widget.CheckModelInfo(context.Background())

	if f.header.HasBadge() {
		t.Error("no badge should be rendered on failure")
	}
	if f.transcript.Len() != 0 {
		t.Error("a failed probe must not touch the container")
	}
	if !strings.Contains(f.logs.String(), "failed to fetch model info") {
		t.Errorf("expected a log line, got %q", f.logs.String())
	}
}

func TestStart(t *testing.T) {
	f := newFixture(&api.MockClient{HealthVal: &models.HealthStatus{Mode: "demo"}})

	f.widget.Start(context.Background())

	if !f.input.Focused() {
		t.Error("Start should focus the input")
	}
	if f.backend.HealthCalls != 1 {
		t.Errorf("HealthCalls = %d, want 1", f.backend.HealthCalls)
	}
}

func TestNew_DefaultIDs(t *testing.T) {
	w := New(NewTranscript(), NewTextInput(""), NewHeaderBar(), &api.MockClient{})
	a := w.AddMessage("a", true)
	b := w.AddMessage("b", true)
	if a == "" || a == b {
		t.Errorf("expected distinct generated IDs, got %q and %q", a, b)
	}
}
