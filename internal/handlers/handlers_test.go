package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brightlearn-backend/internal/ratelimit"
)

// ─── Contact Handler Tests ───

func postContact(h *ContactHandler, body map[string]string) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Submit(rr, req)
	return rr
}

func TestContactSubmit_MissingFields(t *testing.T) {
	h := NewContactHandler(ratelimit.NewMemory(3, time.Hour), nil)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing name", map[string]string{"email": "parent@example.com", "message": "Hi there"}},
		{"missing email", map[string]string{"name": "Sam", "message": "Hi there"}},
		{"bad email", map[string]string{"name": "Sam", "email": "not-an-email", "message": "Hi there"}},
		{"missing message", map[string]string{"name": "Sam", "email": "parent@example.com"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postContact(h, tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestContactSubmit_SanitizedNameStillRequired(t *testing.T) {
	h := NewContactHandler(ratelimit.NewMemory(3, time.Hour), nil)

	// A name that is nothing but markup sanitizes to empty.
	rr := postContact(h, map[string]string{
		"name":    "<b></b>",
		"email":   "parent@example.com",
		"message": "Hello!",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestContactSubmit_RateLimited(t *testing.T) {
	h := NewContactHandler(ratelimit.NewMemory(3, time.Hour), nil)

	// Burn the window with invalid submissions; the limiter runs first.
	for i := 0; i < 3; i++ {
		postContact(h, map[string]string{"name": ""})
	}

	rr := postContact(h, map[string]string{"name": ""})
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 on 4th submission, got %d", rr.Code)
	}
}

// ─── Progress Handler Tests ───

func TestProgressUpsert_Validation(t *testing.T) {
	h := NewProgressHandler(nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing lesson id", `{"status":"completed"}`},
		{"bad status", `{"lesson_id":"7b0d12cb-32f9-4f0c-8d2f-4aafc3f50c10","status":"done"}`},
		{"score too high", `{"lesson_id":"7b0d12cb-32f9-4f0c-8d2f-4aafc3f50c10","status":"completed","score":120}`},
		{"negative score", `{"lesson_id":"7b0d12cb-32f9-4f0c-8d2f-4aafc3f50c10","status":"completed","score":-5}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.Upsert(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
		})
	}
}

// ─── Snippet Validation Tests ───

func TestValidateSnippet(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		code    string
		wantErr bool
	}{
		{"valid", "Guessing game", "print('guess a number')", false},
		{"empty title", "", "print(1)", true},
		{"whitespace title", "   ", "print(1)", true},
		{"title too long", strings.Repeat("x", 101), "print(1)", true},
		{"code at limit", "Big", strings.Repeat("a", maxSnippetBytes), false},
		{"code over limit", "Too big", strings.Repeat("a", maxSnippetBytes+1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fields := validateSnippet(tc.title, tc.code)
			if tc.wantErr && fields == nil {
				t.Error("Expected validation errors, got none")
			}
			if !tc.wantErr && fields != nil {
				t.Errorf("Expected no validation errors, got %v", fields)
			}
		})
	}
}

// ─── Admin Lesson Validation Tests ───

func TestValidateLessonRequest(t *testing.T) {
	valid := lessonRequest{
		Slug:       "intro-to-loops",
		Title:      "Intro to Loops",
		Subject:    "coding",
		Difficulty: "beginner",
	}

	if fields := validateLessonRequest(valid); fields != nil {
		t.Fatalf("Expected valid request, got %v", fields)
	}

	tests := []struct {
		name   string
		mutate func(*lessonRequest)
		field  string
	}{
		{"uppercase slug", func(r *lessonRequest) { r.Slug = "Intro-Loops" }, "slug"},
		{"slug with spaces", func(r *lessonRequest) { r.Slug = "intro loops" }, "slug"},
		{"empty title", func(r *lessonRequest) { r.Title = "  " }, "title"},
		{"unknown subject", func(r *lessonRequest) { r.Subject = "history" }, "subject"},
		{"unknown difficulty", func(r *lessonRequest) { r.Difficulty = "expert" }, "difficulty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)

			fields := validateLessonRequest(req)
			if fields == nil {
				t.Fatal("Expected validation errors, got none")
			}
			if _, ok := fields[tc.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tc.field, fields)
			}
		})
	}
}
