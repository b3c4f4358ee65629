package subscriptions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hireprompt-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const subColumns = `id, user_id, plan, status, current_period_start, current_period_end, created_at, updated_at`

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Subscription, error) {
	query := `SELECT ` + subColumns + `
FROM subscriptions
WHERE user_id = $1
LIMIT 1`
	sub, err := scanSubscription(r.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Subscription{}, ErrNotFound
	}
	return sub, err
}

func (r *PGRepo) Create(ctx context.Context, sub Subscription) error {
	const query = `
INSERT INTO subscriptions (id, user_id, plan, status, current_period_start, current_period_end, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		sub.ID,
		sub.UserID,
		sub.Plan,
		sub.Status,
		sub.CurrentPeriodStart,
		sub.CurrentPeriodEnd,
		sub.CreatedAt,
		sub.UpdatedAt,
	)
	if db.IsUniqueViolation(err) {
		return errExists
	}
	return err
}

func (r *PGRepo) UpdatePlan(ctx context.Context, userID, plan, status string, at time.Time) (Subscription, error) {
	query := `
UPDATE subscriptions
SET plan = $2, status = $3, updated_at = $4
WHERE user_id = $1
RETURNING ` + subColumns
	sub, err := scanSubscription(r.DB.QueryRowContext(ctx, query, userID, plan, status, at))
	if errors.Is(err, sql.ErrNoRows) {
		return Subscription{}, ErrNotFound
	}
	return sub, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row scanner) (Subscription, error) {
	var sub Subscription
	err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Plan,
		&sub.Status,
		&sub.CurrentPeriodStart,
		&sub.CurrentPeriodEnd,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	return sub, err
}
