package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightlearn-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// Upsert records progress for a user+lesson pair. Completing a lesson
// stamps completed_at once; later updates never clear it.
func (r *ProgressRepo) Upsert(ctx context.Context, p *models.LessonProgress) error {
	query := `
		INSERT INTO lesson_progress (id, user_id, lesson_id, status, score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, lesson_id) DO UPDATE
		SET status = EXCLUDED.status,
			score = COALESCE(EXCLUDED.score, lesson_progress.score),
			completed_at = CASE
				WHEN EXCLUDED.status = 'completed' AND lesson_progress.completed_at IS NULL THEN NOW()
				ELSE lesson_progress.completed_at
			END,
			updated_at = NOW()
		RETURNING id, started_at, completed_at, updated_at`

	newID := uuid.New()
	return r.pool.QueryRow(ctx, query, newID, p.UserID, p.LessonID, p.Status, p.Score).Scan(
		&p.ID, &p.StartedAt, &p.CompletedAt, &p.UpdatedAt,
	)
}

func (r *ProgressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.LessonProgress, error) {
	query := `
		SELECT id, user_id, lesson_id, status, score, started_at, completed_at, updated_at
		FROM lesson_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []*models.LessonProgress
	for rows.Next() {
		p := &models.LessonProgress{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.LessonID, &p.Status, &p.Score,
			&p.StartedAt, &p.CompletedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

func (r *ProgressRepo) Summary(ctx context.Context, userID uuid.UUID) (*models.ProgressSummary, error) {
	s := &models.ProgressSummary{}
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COALESCE(ROUND(AVG(score) FILTER (WHERE score IS NOT NULL)), 0)
		FROM lesson_progress
		WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.LessonsStarted, &s.LessonsCompleted, &s.AverageScore,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
