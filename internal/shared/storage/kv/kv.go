// Package kv holds short-lived keys (OAuth state, revoked token ids).
package kv

import (
	"context"
	"sync"
	"time"
)

// Store is a string key/value store with per-key expiry.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
	// Take returns and deletes the value in one step.
	Take(ctx context.Context, key string) (string, bool, error)
}

type memoryItem struct {
	value string
	exp   time.Time
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryStore builds an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.items[key] = memoryItem{value: value, exp: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	if !ok {
		return false, nil
	}
	if s.now().After(item.exp) {
		delete(s.items, key)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Take(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[key]
	if !ok {
		return "", false, nil
	}
	delete(s.items, key)
	if s.now().After(item.exp) {
		return "", false, nil
	}
	return item.value, true, nil
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for k, item := range s.items {
		if now.After(item.exp) {
			delete(s.items, k)
		}
	}
}
