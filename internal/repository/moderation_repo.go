package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightlearn-backend/internal/models"
)

type ModerationRepo struct {
	pool *pgxpool.Pool
}

func NewModerationRepo(pool *pgxpool.Pool) *ModerationRepo {
	return &ModerationRepo{pool: pool}
}

func (r *ModerationRepo) Insert(ctx context.Context, e *models.ModerationEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO moderation_events (id, action, reason, excerpt, persona_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query, e.ID, e.Action, e.Reason, e.Excerpt, e.PersonaID, e.CreatedAt)
	return err
}

// ListRecent returns the newest events, optionally filtered by action.
func (r *ModerationRepo) ListRecent(ctx context.Context, action string, limit int) ([]*models.ModerationEvent, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := `
		SELECT id, action, reason, excerpt, persona_id, created_at
		FROM moderation_events
		WHERE ($1 = '' OR action = $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, action, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.ModerationEvent
	for rows.Next() {
		e := &models.ModerationEvent{}
		if err := rows.Scan(&e.ID, &e.Action, &e.Reason, &e.Excerpt, &e.PersonaID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
