package jobspecs

import (
	"context"

	"hireprompt-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.NotFound("job spec")

// Repo persists job specs. Lookups are always scoped to the owner.
type Repo interface {
	Create(ctx context.Context, spec JobSpec) error
	GetByID(ctx context.Context, userID, id string) (JobSpec, error)
	ListByUser(ctx context.Context, userID string) ([]JobSpec, error)
}
