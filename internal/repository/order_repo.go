package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"brightlearn-backend/internal/models"
)

type OrderRepo struct {
	pool *pgxpool.Pool
}

func NewOrderRepo(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

func (r *OrderRepo) Create(ctx context.Context, o *models.Order) error {
	o.ID = uuid.New()
	o.Status = "pending"

	query := `
		INSERT INTO orders (id, user_id, plan, amount_cents, currency, status, provider_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		o.ID, o.UserID, o.Plan, o.AmountCents, o.Currency, o.Status, o.ProviderRef,
	).Scan(&o.CreatedAt)
}

func (r *OrderRepo) GetByProviderRef(ctx context.Context, providerRef string) (*models.Order, error) {
	o := &models.Order{}
	query := `SELECT id, user_id, plan, amount_cents, currency, status, provider_ref, created_at, paid_at
		FROM orders WHERE provider_ref = $1`

	err := r.pool.QueryRow(ctx, query, providerRef).Scan(
		&o.ID, &o.UserID, &o.Plan, &o.AmountCents, &o.Currency, &o.Status,
		&o.ProviderRef, &o.CreatedAt, &o.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) MarkPaid(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = 'paid', paid_at = NOW() WHERE id = $1 AND status = 'pending'`, id)
	return err
}

func (r *OrderRepo) MarkFailed(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = 'failed' WHERE id = $1 AND status = 'pending'`, id)
	return err
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	query := `SELECT id, user_id, plan, amount_cents, currency, status, provider_ref, created_at, paid_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o := &models.Order{}
		if err := rows.Scan(&o.ID, &o.UserID, &o.Plan, &o.AmountCents, &o.Currency,
			&o.Status, &o.ProviderRef, &o.CreatedAt, &o.PaidAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
