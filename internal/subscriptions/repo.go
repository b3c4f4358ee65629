package subscriptions

import (
	"context"
	"time"

	"hireprompt-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.NotFound("subscription")

// Repo stores at most one subscription per user.
type Repo interface {
	GetByUser(ctx context.Context, userID string) (Subscription, error)
	Create(ctx context.Context, sub Subscription) error
	UpdatePlan(ctx context.Context, userID, plan, status string, at time.Time) (Subscription, error)
}
