package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightlearn-backend/internal/models"
)

type LessonRepo struct {
	pool *pgxpool.Pool
}

func NewLessonRepo(pool *pgxpool.Pool) *LessonRepo {
	return &LessonRepo{pool: pool}
}

const lessonColumns = `id, slug, title, subject, difficulty, content,
	video_id, video_title, video_duration_seconds, video_transcript,
	published, sort_order, created_at, updated_at`

func (r *LessonRepo) scanLesson(row interface{ Scan(...any) error }) (*models.Lesson, error) {
	l := &models.Lesson{}
	err := row.Scan(
		&l.ID, &l.Slug, &l.Title, &l.Subject, &l.Difficulty, &l.Content,
		&l.VideoID, &l.VideoTitle, &l.VideoDuration, &l.VideoTranscript,
		&l.Published, &l.SortOrder, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LessonRepo) Create(ctx context.Context, l *models.Lesson) error {
	l.ID = uuid.New()
	query := `
		INSERT INTO lessons (id, slug, title, subject, difficulty, content, published, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		l.ID, l.Slug, l.Title, l.Subject, l.Difficulty, l.Content, l.Published, l.SortOrder,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
}

func (r *LessonRepo) Update(ctx context.Context, l *models.Lesson) error {
	query := `
		UPDATE lessons
		SET slug = $2, title = $3, subject = $4, difficulty = $5, content = $6,
			sort_order = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		l.ID, l.Slug, l.Title, l.Subject, l.Difficulty, l.Content, l.SortOrder,
	).Scan(&l.UpdatedAt)
}

func (r *LessonRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lessons SET published = $2, updated_at = NOW() WHERE id = $1`, id, published)
	return err
}

func (r *LessonRepo) AttachVideo(ctx context.Context, id uuid.UUID, video *models.VideoInfo, transcript string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE lessons
		SET video_id = $2, video_title = $3, video_duration_seconds = $4,
			video_transcript = NULLIF($5, ''), updated_at = NOW()
		WHERE id = $1`,
		id, video.ID, video.Title, video.DurationSeconds, transcript)
	return err
}

func (r *LessonRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	return err
}

func (r *LessonRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`
	return r.scanLesson(r.pool.QueryRow(ctx, query, id))
}

func (r *LessonRepo) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE slug = $1 AND published = TRUE`
	return r.scanLesson(r.pool.QueryRow(ctx, query, slug))
}

// ListPublished returns published lessons, optionally filtered by subject.
func (r *LessonRepo) ListPublished(ctx context.Context, subject string) ([]*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons
		WHERE published = TRUE AND ($1 = '' OR subject = $1)
		ORDER BY subject, sort_order, created_at`

	rows, err := r.pool.Query(ctx, query, subject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		l, err := r.scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// ListAll returns every lesson including drafts, for the admin console.
func (r *LessonRepo) ListAll(ctx context.Context) ([]*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY subject, sort_order, created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		l, err := r.scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}
