// Package repository defines the durable key-value storage the task store
// mirrors its collection into.
package repository

import "context"

// KeyValueStore is durable local storage addressed by string keys.
// Values are opaque bytes; callers own their serialization.
type KeyValueStore interface {
	// Get returns the value stored under key. The boolean is false when the
	// key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}
