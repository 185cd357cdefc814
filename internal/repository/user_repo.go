package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightlearn-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

// ReminderRecipient is the slim projection used by the practice reminder
// scheduler.
type ReminderRecipient struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	LastActiveAt *time.Time
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, display_name, role, plan, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	user.ID = uuid.New()
	if user.Role == "" {
		user.Role = "student"
	}
	user.Plan = "free"
	user.IsActive = true

	return r.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Role, user.Plan, user.IsVerified,
	).Scan(&user.CreatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, display_name, role, plan, is_verified, is_active, created_at, last_login_at
		FROM users WHERE email = $1`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Role,
		&user.Plan, &user.IsVerified, &user.IsActive, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password_hash, display_name, role, plan, is_verified, is_active, created_at, last_login_at
		FROM users WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Role,
		&user.Plan, &user.IsVerified, &user.IsActive, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) VerifyEmail(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET is_verified = TRUE WHERE id = $1`, id)
	return err
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *UserRepo) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET display_name = $2 WHERE id = $1`, id, displayName)
	return err
}

func (r *UserRepo) UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET plan = $2 WHERE id = $1`, id, plan)
	return err
}

// ListInactiveSince returns verified, active students whose last lesson
// activity (or account creation, if they never started one) is older
// than the cutoff.
func (r *UserRepo) ListInactiveSince(ctx context.Context, cutoff time.Time) ([]ReminderRecipient, error) {
	query := `
		SELECT u.id, u.email, u.display_name, MAX(p.updated_at)
		FROM users u
		LEFT JOIN lesson_progress p ON p.user_id = u.id
		WHERE u.is_verified = TRUE
		  AND u.is_active = TRUE
		  AND u.role = 'student'
		GROUP BY u.id, u.email, u.display_name, u.created_at
		HAVING COALESCE(MAX(p.updated_at), u.created_at) < $1`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipients []ReminderRecipient
	for rows.Next() {
		var rec ReminderRecipient
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.DisplayName, &rec.LastActiveAt); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}
