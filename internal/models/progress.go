package models

import (
	"time"

	"github.com/google/uuid"
)

type LessonProgress struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	LessonID    uuid.UUID  `json:"lesson_id"`
	Status      string     `json:"status"` // in_progress, completed
	Score       *int       `json:"score"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProgressSummary aggregates a student's progress for the profile page.
type ProgressSummary struct {
	LessonsStarted   int `json:"lessons_started"`
	LessonsCompleted int `json:"lessons_completed"`
	AverageScore     int `json:"average_score"`
}
