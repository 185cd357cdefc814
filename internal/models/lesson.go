package models

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Subject    string    `json:"subject"`    // coding, math, science, art
	Difficulty string    `json:"difficulty"` // beginner, intermediate, advanced
	Content    string    `json:"content"`    // markdown body

	// Optional attached video
	VideoID         *string `json:"video_id"`
	VideoTitle      *string `json:"video_title"`
	VideoDuration   *int    `json:"video_duration_seconds"`
	VideoTranscript *string `json:"-"` // indexed for search, not returned to clients

	Published bool      `json:"published"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VideoInfo is the metadata returned when validating a lesson video.
type VideoInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"duration_seconds"`
}
