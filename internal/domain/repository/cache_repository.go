package repository

import (
	"context"
	"time"
)

// CacheRepository defines the response-cache operations used by the read path.
type CacheRepository interface {
	// Get returns the cached value for key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key from the cache.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
