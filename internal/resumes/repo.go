package resumes

import (
	"context"
	"time"

	"hireprompt-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.NotFound("resume")

// Repo persists documents. Lookups are always scoped to the owner.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, id string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	UpdateProfile(ctx context.Context, userID, id string, profile Profile, at time.Time) error
}
