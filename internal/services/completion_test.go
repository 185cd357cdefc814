package services

import (
	"context"
	"errors"
	"testing"

	"brightlearn-backend/internal/models"
)

func TestCompletionService_NotConfigured(t *testing.T) {
	s := NewCompletionService("", "gpt-4o-mini")

	if s.Configured() {
		t.Error("Expected service without an API key to report unconfigured")
	}

	_, err := s.TutorReply(context.Background(), "prompt", []models.ChatMessage{
		{Role: "user", Content: "hello"},
	}, "caller")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestCompletionService_Configured(t *testing.T) {
	s := NewCompletionService("test-key", "gpt-4o-mini")
	if !s.Configured() {
		t.Error("Expected service with an API key to report configured")
	}
}

func TestPlanDisplayName(t *testing.T) {
	tests := []struct {
		plan string
		want string
	}{
		{"premium_monthly", "Premium (monthly)"},
		{"premium_yearly", "Premium (yearly)"},
		{"free", "free"},
	}

	for _, tc := range tests {
		if got := planDisplayName(tc.plan); got != tc.want {
			t.Errorf("planDisplayName(%q) = %q, want %q", tc.plan, got, tc.want)
		}
	}
}
