// Package memory provides a map-backed KeyValueStore for tests and the
// testing environment.
package memory

import (
	"context"
	"sync"

	"task-manager/internal/repository"
)

// Repository keeps values in a map. Values are copied in and out so callers
// cannot alias stored bytes.
type Repository struct {
	mu      sync.RWMutex
	data    map[string][]byte
	failSet error
}

var _ repository.KeyValueStore = (*Repository)(nil)

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores a copy of value under key.
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSet != nil {
		return r.failSet
	}
	r.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}

// FailWrites makes every subsequent Set return err. Passing nil restores
// normal behaviour.
func (r *Repository) FailWrites(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failSet = err
}

// Close is a no-op.
func (r *Repository) Close() error {
	return nil
}
