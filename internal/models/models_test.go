package models

import "testing"

func TestMessageRole(t *testing.T) {
	if (Message{Text: "hi", IsUser: true}).Role() != RoleUser {
		t.Error("expected user role")
	}
	if (Message{Text: "hi"}).Role() != RoleBot {
		t.Error("expected bot role")
	}
}

func TestHealthStatusBadge(t *testing.T) {
	tests := []struct {
		name      string
		status    HealthStatus
		wantMode  string
		wantModel bool
	}{
		{"demo without model", HealthStatus{Mode: "demo"}, "DEMO", false},
		{"live with model", HealthStatus{Mode: "live", Model: "gpt-x"}, "LIVE", true},
		{"already upper", HealthStatus{Mode: "LIVE"}, "LIVE", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.status.Badge()
			if b.Mode != tt.wantMode {
				t.Errorf("Mode = %q, want %q", b.Mode, tt.wantMode)
			}
			if b.HasModel() != tt.wantModel {
				t.Errorf("HasModel() = %v, want %v", b.HasModel(), tt.wantModel)
			}
		})
	}
}

func TestDefaultQuickQuestions(t *testing.T) {
	qs := DefaultQuickQuestions()
	if len(qs) != 4 {
		t.Fatalf("expected 4 quick questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q == "" {
			t.Errorf("quick question %d is empty", i)
		}
	}
}
