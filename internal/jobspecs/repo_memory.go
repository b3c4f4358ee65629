package jobspecs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]JobSpec
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]JobSpec)}
}

func (r *MemoryRepo) Create(ctx context.Context, spec JobSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[spec.ID] = cloneSpec(spec)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (JobSpec, error) {
	if err := ctx.Err(); err != nil {
		return JobSpec{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.data[id]
	if !ok || spec.UserID != userID {
		return JobSpec{}, ErrNotFound
	}
	return cloneSpec(spec), nil
}

// ListByUser returns the user's specs newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]JobSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]JobSpec, 0)
	for _, spec := range r.data {
		if spec.UserID == userID {
			out = append(out, cloneSpec(spec))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func cloneSpec(spec JobSpec) JobSpec {
	spec.RequiredSkills = append(make([]string, 0, len(spec.RequiredSkills)), spec.RequiredSkills...)
	spec.Responsibilities = append(make([]string, 0, len(spec.Responsibilities)), spec.Responsibilities...)
	return spec
}
