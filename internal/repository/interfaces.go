package repository

import "context"

// KVStore is a durable key-value slot. Values are opaque bytes.
type KVStore interface {
	// Get returns the stored value, or ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the complete value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
