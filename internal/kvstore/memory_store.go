package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/coocood/freecache"
)

const (
	megabyte               = 1024 * 1024
	DefaultMemoryStoreSize = 128 * megabyte
)

// MemoryStore keeps the blobs in process memory. Nothing survives a restart,
// and under memory pressure freecache may evict old entries, which reads as
// an empty snapshot. A single value can be at most 1/1024 of the cache size.
// Used for development and tests.
type MemoryStore struct {
	cache     *freecache.Cache
	sizeBytes int
}

func NewMemoryStore(sizeBytes int) *MemoryStore {
	if sizeBytes <= 0 {
		sizeBytes = DefaultMemoryStoreSize
	}
	return &MemoryStore{
		cache:     freecache.NewCache(sizeBytes),
		sizeBytes: sizeBytes,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, err := s.cache.Get([]byte(key))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("memory get [%s]: %w", key, err)
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	// expire 0 -> no expiration
	if err := s.cache.Set([]byte(key), value, 0); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			return fmt.Errorf("memory set [%s]: %d bytes is over the entry limit of %d bytes, raise local_cache_size_mb: %w",
				key, len(value), s.sizeBytes/1024, err)
		}
		return fmt.Errorf("memory set [%s]: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Del([]byte(key))
	return nil
}
