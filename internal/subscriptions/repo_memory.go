package subscriptions

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errExists = errors.New("subscription already exists")

type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Subscription
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]Subscription)}
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.byUser[userID]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (r *MemoryRepo) Create(ctx context.Context, sub Subscription) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[sub.UserID]; ok {
		return errExists
	}
	r.byUser[sub.UserID] = sub
	return nil
}

func (r *MemoryRepo) UpdatePlan(ctx context.Context, userID, plan, status string, at time.Time) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return Subscription{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byUser[userID]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	sub.Plan = plan
	sub.Status = status
	sub.UpdatedAt = at
	r.byUser[userID] = sub
	return sub, nil
}
