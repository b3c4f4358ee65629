package users

import (
	"context"
	"time"

	"hireprompt-backend/internal/shared/apperr"
)

var (
	ErrNotFound = apperr.NotFound("user")
	// ErrConflict reports a duplicate username, email or external id.
	ErrConflict = apperr.Validation("user already exists", nil)
)

type Repo interface {
	Create(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	GetByExternalID(ctx context.Context, externalID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePlan(ctx context.Context, userID, plan string, at time.Time) error
}
