package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightlearn-backend/internal/models"
)

type SnippetRepo struct {
	pool *pgxpool.Pool
}

func NewSnippetRepo(pool *pgxpool.Pool) *SnippetRepo {
	return &SnippetRepo{pool: pool}
}

func (r *SnippetRepo) Create(ctx context.Context, s *models.Snippet) error {
	s.ID = uuid.New()
	query := `
		INSERT INTO playground_snippets (id, user_id, title, code)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query, s.ID, s.UserID, s.Title, s.Code).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SnippetRepo) Update(ctx context.Context, s *models.Snippet) error {
	query := `
		UPDATE playground_snippets
		SET title = $3, code = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query, s.ID, s.UserID, s.Title, s.Code).Scan(&s.UpdatedAt)
}

func (r *SnippetRepo) GetByID(ctx context.Context, id, userID uuid.UUID) (*models.Snippet, error) {
	s := &models.Snippet{}
	query := `SELECT id, user_id, title, code, created_at, updated_at
		FROM playground_snippets WHERE id = $1 AND user_id = $2`

	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&s.ID, &s.UserID, &s.Title, &s.Code, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SnippetRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Snippet, error) {
	query := `SELECT id, user_id, title, code, created_at, updated_at
		FROM playground_snippets WHERE user_id = $1 ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snippets []*models.Snippet
	for rows.Next() {
		s := &models.Snippet{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Title, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		snippets = append(snippets, s)
	}
	return snippets, rows.Err()
}

func (r *SnippetRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM playground_snippets WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
