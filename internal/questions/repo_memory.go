package questions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]QuestionSet
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]QuestionSet)}
}

func (r *MemoryRepo) Create(ctx context.Context, set QuestionSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set.Questions = append([]Question(nil), set.Questions...)
	r.data[set.ID] = set
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return QuestionSet{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.data[id]
	if !ok || set.UserID != userID {
		return QuestionSet{}, ErrNotFound
	}
	set.Questions = append([]Question(nil), set.Questions...)
	return set, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]QuestionSet, 0)
	for _, set := range r.data {
		if set.UserID == userID {
			set.Questions = append([]Question(nil), set.Questions...)
			out = append(out, set)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
