package models

import (
	"time"

	"github.com/google/uuid"
)

// Snippet is a saved playground program. Code runs client-side in the
// browser's Python runtime; the server only stores the text.
type Snippet struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
