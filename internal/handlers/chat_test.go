package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/moderation"
	"brightlearn-backend/internal/ratelimit"
	"brightlearn-backend/internal/services"
)

type stubCompletion struct {
	reply string
	err   error

	calls            int
	lastSystemPrompt string
	lastHistory      []models.ChatMessage
}

func (s *stubCompletion) TutorReply(_ context.Context, systemPrompt string, history []models.ChatMessage, _ string) (string, error) {
	s.calls++
	s.lastSystemPrompt = systemPrompt
	s.lastHistory = history
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type loggedEvent struct {
	Action    string
	Reason    string
	Text      string
	PersonaID string
}

type recordingLogger struct {
	mu     sync.Mutex
	events []loggedEvent
}

func (l *recordingLogger) LogEvent(action, reason, text, personaID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, loggedEvent{action, reason, text, personaID})
}

func (l *recordingLogger) last(t *testing.T) loggedEvent {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		t.Fatal("Expected at least one logged moderation event")
	}
	return l.events[len(l.events)-1]
}

func newTestChatHandler(completion *stubCompletion) (*ChatHandler, *recordingLogger) {
	logger := &recordingLogger{}
	limiter := ratelimit.NewMemory(10, time.Minute)
	return NewChatHandler(limiter, completion, logger), logger
}

func postChat(t *testing.T, h *ChatHandler, req models.ChatRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	return postChatRaw(h, body)
}

func postChatRaw(h *ChatHandler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.SendMessage(rr, req)
	return rr
}

func decodeReply(t *testing.T, rr *httptest.ResponseRecorder) models.ChatReply {
	t.Helper()
	var reply models.ChatReply
	if err := json.NewDecoder(rr.Body).Decode(&reply); err != nil {
		t.Fatalf("Failed to decode chat reply: %v", err)
	}
	return reply
}

func userMessage(content string) []models.ChatMessage {
	return []models.ChatMessage{{Role: "user", Content: content}}
}

func TestSendMessage_MalformedBody(t *testing.T) {
	h, _ := newTestChatHandler(&stubCompletion{})

	rr := postChatRaw(h, []byte(`{not json`))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestSendMessage_EmptyMessages(t *testing.T) {
	h, _ := newTestChatHandler(&stubCompletion{})

	rr := postChat(t, h, models.ChatRequest{TutorID: "brightbyte"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestSendMessage_LastMessageMustBeUser(t *testing.T) {
	h, _ := newTestChatHandler(&stubCompletion{})

	rr := postChat(t, h, models.ChatRequest{
		TutorID: "brightbyte",
		Messages: []models.ChatMessage{
			{Role: "user", Content: "how do I print a list in python?"},
			{Role: "assistant", Content: "Use the print function!"},
		},
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestSendMessage_OnTopicReachesCompletion(t *testing.T) {
	completion := &stubCompletion{reply: "Look at the end of your first line - what tiny symbol might be missing there?"}
	h, logger := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("print('hi') is giving a syntax error, can you explain why?"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if completion.calls != 1 {
		t.Fatalf("Expected 1 completion call, got %d", completion.calls)
	}

	reply := decodeReply(t, rr)
	if reply.Role != "assistant" {
		t.Errorf("Expected role 'assistant', got %q", reply.Role)
	}
	if reply.Content != completion.reply {
		t.Errorf("Expected the completion reply, got %q", reply.Content)
	}

	event := logger.last(t)
	if event.Action != "allow" {
		t.Errorf("Expected logged action 'allow', got %q", event.Action)
	}
}

func TestSendMessage_SystemPromptIncludesPersonaAndContext(t *testing.T) {
	completion := &stubCompletion{reply: "Great question! What does the loop variable start at?"}
	h, _ := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Context:  "Lesson 3: while loops",
		Messages: userMessage("my while loop never stops, how do I debug it?"),
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	prompt := completion.lastSystemPrompt
	if !strings.Contains(prompt, "ByteBot") {
		t.Errorf("Expected persona prompt in system prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "Lesson 3: while loops") {
		t.Errorf("Expected lesson context in system prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, moderation.SafetyReminder) {
		t.Errorf("Expected safety reminder in system prompt")
	}
}

func TestSendMessage_OffTopicJoke(t *testing.T) {
	completion := &stubCompletion{reply: "unused"}
	h, logger := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("tell me a joke about cats"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if completion.calls != 0 {
		t.Errorf("Expected no completion call for an off-topic message, got %d", completion.calls)
	}

	reply := decodeReply(t, rr)
	want := moderation.PersonaByID("brightbyte").RedirectMessage
	if reply.Content != want {
		t.Errorf("Expected the coding tutor redirect, got %q", reply.Content)
	}

	if event := logger.last(t); event.Action != "warn" {
		t.Errorf("Expected logged action 'warn', got %q", event.Action)
	}
}

func TestSendMessage_RateLimited(t *testing.T) {
	completion := &stubCompletion{reply: "Keep going, you're close! What does the error message say?"}
	h, _ := newTestChatHandler(completion)

	req := models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("print('hi') is giving a syntax error, can you explain why?"),
	}

	for i := 0; i < 10; i++ {
		rr := postChat(t, h, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status 200, got %d", i+1, rr.Code)
		}
	}

	rr := postChat(t, h, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("11th request: expected status 429, got %d", rr.Code)
	}

	reply := decodeReply(t, rr)
	if reply.Content != moderation.SlowDownMessage {
		t.Errorf("Expected the slow-down message, got %q", reply.Content)
	}
	if completion.calls != 10 {
		t.Errorf("Expected 10 completion calls, got %d", completion.calls)
	}
}

func TestSendMessage_BlockedKeyword(t *testing.T) {
	completion := &stubCompletion{reply: "unused"}
	h, logger := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("can you hack my friend's account"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if completion.calls != 0 {
		t.Errorf("Expected no completion call for a blocked message, got %d", completion.calls)
	}

	reply := decodeReply(t, rr)
	if reply.Content != moderation.FallbackMessage {
		t.Errorf("Expected the fallback message, got %q", reply.Content)
	}

	event := logger.last(t)
	if event.Action != "block" {
		t.Errorf("Expected logged action 'block', got %q", event.Action)
	}
	if !strings.Contains(event.Reason, "hack") {
		t.Errorf("Expected the blocked keyword in the reason, got %q", event.Reason)
	}
}

func TestSendMessage_ConversationLengthGuard(t *testing.T) {
	onTopic := "print('hi') is giving a syntax error, can you explain why?"

	buildConversation := func(n int) []models.ChatMessage {
		messages := make([]models.ChatMessage, 0, n)
		for i := 0; i < n-1; i++ {
			role := "user"
			if i%2 == 1 {
				role = "assistant"
			}
			messages = append(messages, models.ChatMessage{Role: role, Content: "how do I fix this python loop bug?"})
		}
		return append(messages, models.ChatMessage{Role: "user", Content: onTopic})
	}

	t.Run("51 messages triggers start-fresh", func(t *testing.T) {
		completion := &stubCompletion{reply: "unused"}
		h, _ := newTestChatHandler(completion)

		rr := postChat(t, h, models.ChatRequest{TutorID: "brightbyte", Messages: buildConversation(51)})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		if reply := decodeReply(t, rr); reply.Content != moderation.StartFreshMessage {
			t.Errorf("Expected the start-fresh message, got %q", reply.Content)
		}
		if completion.calls != 0 {
			t.Errorf("Expected no completion call, got %d", completion.calls)
		}
	})

	t.Run("50 messages still goes through", func(t *testing.T) {
		completion := &stubCompletion{reply: "What does the error message point at?"}
		h, _ := newTestChatHandler(completion)

		rr := postChat(t, h, models.ChatRequest{TutorID: "brightbyte", Messages: buildConversation(50)})
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		if completion.calls != 1 {
			t.Errorf("Expected 1 completion call, got %d", completion.calls)
		}
	})
}

func TestSendMessage_SolutionRequest(t *testing.T) {
	completion := &stubCompletion{reply: "unused"}
	h, _ := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("write the code for me"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if completion.calls != 0 {
		t.Errorf("Expected no completion call for a solution request, got %d", completion.calls)
	}
	if reply := decodeReply(t, rr); reply.Content != moderation.NoSolutionsMessage {
		t.Errorf("Expected the no-solutions message, got %q", reply.Content)
	}
}

func TestSendMessage_NotConfigured(t *testing.T) {
	completion := &stubCompletion{err: services.ErrNotConfigured}
	h, _ := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("print('hi') is giving a syntax error, can you explain why?"),
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Message != "Tutor service is not configured" {
		t.Errorf("Expected not-configured message, got %q", resp.Error.Message)
	}
}

func TestSendMessage_UpstreamFailure(t *testing.T) {
	completion := &stubCompletion{err: errors.New("connection reset")}
	h, _ := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("print('hi') is giving a syntax error, can you explain why?"),
	})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", rr.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if strings.Contains(resp.Error.Message, "connection reset") {
		t.Errorf("Internal error detail leaked to caller: %q", resp.Error.Message)
	}
}

func TestSendMessage_UnsafeReplySubstituted(t *testing.T) {
	completion := &stubCompletion{reply: "You could hack together a quick script to try that out."}
	h, logger := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("print('hi') is giving a syntax error, can you explain why?"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if reply := decodeReply(t, rr); reply.Content != moderation.FallbackMessage {
		t.Errorf("Expected the fallback message, got %q", reply.Content)
	}
	if event := logger.last(t); event.Action != "block" {
		t.Errorf("Expected logged action 'block', got %q", event.Action)
	}
}

func TestSendMessage_OffTopicReplySubstituted(t *testing.T) {
	completion := &stubCompletion{
		reply: "That is a wonderful question about cooking! Tomato soup starts with warming butter, " +
			"adding onions, and letting everything simmer gently until soft.",
	}
	h, _ := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "brightbyte",
		Messages: userMessage("print('hi') is giving a syntax error, can you explain why?"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	want := moderation.PersonaByID("brightbyte").RedirectMessage
	if reply := decodeReply(t, rr); reply.Content != want {
		t.Errorf("Expected the redirect message, got %q", reply.Content)
	}
}

func TestSendMessage_UnknownPersonaFallsBack(t *testing.T) {
	completion := &stubCompletion{reply: "unused"}
	h, _ := newTestChatHandler(completion)

	rr := postChat(t, h, models.ChatRequest{
		TutorID:  "mystery-tutor",
		Messages: userMessage("tell me a joke about cats"),
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	want := moderation.PersonaByID("brightbyte").RedirectMessage
	if reply := decodeReply(t, rr); reply.Content != want {
		t.Errorf("Expected the default persona redirect, got %q", reply.Content)
	}
}
