package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

var _ Store = (*RedisStore)(nil)
var _ Store = (*MemoryStore)(nil)

// Store is the local key -> opaque blob persistence used for cached
// snapshots, drafts and the identity mapping.
type Store interface {
	// Get returns ErrNotFound when the key is not set.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
