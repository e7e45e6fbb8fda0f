package progress

import "context"

// Repository is the durable key-value slot the snapshot is persisted to.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
