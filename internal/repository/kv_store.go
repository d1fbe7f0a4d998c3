package repository

import "context"

// KeyValueStore is string-keyed, string-valued persistent storage. Values are
// opaque to the store; collections encode themselves as JSON before writing.
type KeyValueStore interface {
	// Get returns ErrNotFound when the key has never been written or was removed.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for a missing key.
	Remove(ctx context.Context, key string) error
}
