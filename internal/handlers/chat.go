package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"brightlearn-backend/internal/middleware"
	"brightlearn-backend/internal/models"
	"brightlearn-backend/internal/moderation"
	"brightlearn-backend/internal/ratelimit"
	"brightlearn-backend/internal/services"

	"github.com/google/uuid"
)

// A conversation longer than this gets a "start fresh" nudge instead of
// an ever-growing prompt.
const maxConversationLength = 50

type completionClient interface {
	TutorReply(ctx context.Context, systemPrompt string, history []models.ChatMessage, callerID string) (string, error)
}

type moderationLogger interface {
	LogEvent(action, reason, text, personaID string)
}

type ChatHandler struct {
	limiter    ratelimit.Limiter
	completion completionClient
	modlog     moderationLogger
}

func NewChatHandler(limiter ratelimit.Limiter, completion completionClient, modlog moderationLogger) *ChatHandler {
	return &ChatHandler{
		limiter:    limiter,
		completion: completion,
		modlog:     modlog,
	}
}

// SendMessage runs a chat turn through the moderation pipeline and, if
// everything passes, the completion API. Policy denials are soft: the
// caller gets a scripted assistant message, never an error, so the
// tutor UI can render every outcome the same way.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Messages are required", r))
		return
	}

	persona := moderation.PersonaByID(req.TutorID)
	identity := callerIdentity(r)

	allowed, err := h.limiter.Allow(r.Context(), identity)
	if err != nil {
		// Fail open: the limiter is an abuse deterrent, not a quota.
		log.Printf("chat: rate limiter error for %s: %v", identity, err)
		allowed = true
	}
	if !allowed {
		h.modlog.LogEvent(string(moderation.ActionWarn), "rate limit exceeded", "", persona.ID)
		writeJSON(w, http.StatusTooManyRequests, models.ChatReply{
			Role:    "assistant",
			Content: moderation.SlowDownMessage,
		})
		return
	}

	if len(req.Messages) > maxConversationLength {
		h.modlog.LogEvent(string(moderation.ActionWarn), "conversation too long", "", persona.ID)
		writeJSON(w, http.StatusOK, models.ChatReply{
			Role:    "assistant",
			Content: moderation.StartFreshMessage,
		})
		return
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Last message must be from the user", r))
		return
	}

	text := moderation.Sanitize(last.Content)

	if safety := moderation.CheckContentSafety(text); !safety.IsSafe {
		h.modlog.LogEvent(string(safety.Action), safety.Reason, text, persona.ID)
		writeJSON(w, http.StatusOK, models.ChatReply{
			Role:    "assistant",
			Content: moderation.FallbackMessage,
		})
		return
	}

	if !moderation.IsOnTopic(text, persona.ID) {
		h.modlog.LogEvent(string(moderation.ActionWarn), "off-topic message", text, persona.ID)
		writeJSON(w, http.StatusOK, models.ChatReply{
			Role:    "assistant",
			Content: persona.RedirectMessage,
		})
		return
	}

	if moderation.IsRequestingCompleteSolution(text) {
		h.modlog.LogEvent(string(moderation.ActionWarn), "complete solution requested", text, persona.ID)
		writeJSON(w, http.StatusOK, models.ChatReply{
			Role:    "assistant",
			Content: moderation.NoSolutionsMessage,
		})
		return
	}

	systemPrompt := buildSystemPrompt(persona, req.Context)
	history := sanitizedHistory(req.Messages, text)

	reply, err := h.completion.TutorReply(r.Context(), systemPrompt, history, identity)
	if err != nil {
		if errors.Is(err, services.ErrNotConfigured) {
			writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Tutor service is not configured", r))
			return
		}
		log.Printf("chat: completion call failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Failed to get tutor response", r))
		return
	}

	// The generated reply goes through moderation too. A failing reply
	// is substituted, never surfaced as an error.
	if safety := moderation.CheckContentSafety(reply); !safety.IsSafe {
		h.modlog.LogEvent(string(safety.Action), "reply failed safety check: "+safety.Reason, reply, persona.ID)
		reply = moderation.FallbackMessage
	} else if len(reply) > 100 && !moderation.IsOnTopic(reply, persona.ID) {
		h.modlog.LogEvent(string(moderation.ActionWarn), "reply drifted off-topic", reply, persona.ID)
		reply = persona.RedirectMessage
	} else {
		h.modlog.LogEvent(string(moderation.ActionAllow), "passed moderation", text, persona.ID)
	}

	writeJSON(w, http.StatusOK, models.ChatReply{
		Role:    "assistant",
		Content: reply,
	})
}

// Personas returns the tutor roster so the frontend doesn't hardcode it.
func (h *ChatHandler) Personas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, moderation.Personas())
}

func callerIdentity(r *http.Request) string {
	if userID := middleware.GetUserID(r.Context()); userID != uuid.Nil {
		return userID.String()
	}
	return r.RemoteAddr
}

func buildSystemPrompt(persona *moderation.Persona, lessonContext string) string {
	var b strings.Builder
	b.WriteString(persona.SystemPrompt)
	if ctx := strings.TrimSpace(lessonContext); ctx != "" {
		b.WriteString("\n\nThe student is currently working on this lesson:\n")
		b.WriteString(moderation.Sanitize(ctx))
	}
	b.WriteString("\n\n")
	b.WriteString(moderation.SafetyReminder)
	return b.String()
}

// sanitizedHistory returns the conversation with every user message
// sanitized; the last message is replaced by its already-sanitized text.
func sanitizedHistory(messages []models.ChatMessage, lastSanitized string) []models.ChatMessage {
	history := make([]models.ChatMessage, len(messages))
	copy(history, messages)
	for i := range history {
		if history[i].Role == "user" {
			history[i].Content = moderation.Sanitize(history[i].Content)
		}
	}
	history[len(history)-1].Content = lastSanitized
	return history
}
