package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage represents a single message in a conversation. The client
// resupplies the full history on every request; the server keeps no
// per-conversation state.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the tutor chat endpoint.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	TutorID  string        `json:"tutorId"`
	Context  string        `json:"context"` // optional lesson context
}

// ChatReply is the assistant message returned for both real completions
// and scripted soft-block responses.
type ChatReply struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModerationEvent records one terminal branch of the moderation pipeline.
type ModerationEvent struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"` // allow, warn, block
	Reason    string    `json:"reason"`
	Excerpt   string    `json:"excerpt"` // truncated copy of the offending text
	PersonaID string    `json:"persona_id"`
	CreatedAt time.Time `json:"created_at"`
}
