package questions

import (
	"context"

	"hireprompt-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.NotFound("question set")

// Repo persists complete question sets in a single write.
type Repo interface {
	Create(ctx context.Context, set QuestionSet) error
	GetByID(ctx context.Context, userID, id string) (QuestionSet, error)
	ListByUser(ctx context.Context, userID string) ([]QuestionSet, error)
}
