package kv

import (
	"context"
	"sync"

	"skincare-storefront/internal/domain"
)

type memoryRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a process-local Repository.
func NewMemory() Repository {
	return &memoryRepo{values: make(map[string]string)}
}

func (r *memoryRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", domain.ErrNotFound
	}
	return v, nil
}

func (r *memoryRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	r.values[key] = value
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.values, key)
	r.mu.Unlock()
	return nil
}
