package cache

import (
	"context"
	"time"

	"github.com/wifi-cdmx/wifi-api/internal/domain/repository"
)

type noopRepository struct{}

// NewNoopRepository returns a cache that never hits and never fails.
// It stands in for Redis when caching is disabled, so the use cases
// keep a single code path.
func NewNoopRepository() repository.CacheRepository {
	return noopRepository{}
}

func (noopRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

func (noopRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (noopRepository) Delete(ctx context.Context, key string) error {
	return nil
}

func (noopRepository) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}
