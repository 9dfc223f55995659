package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps responses in process; used when no Redis is configured.
type MemoryCache struct {
	store *gocache.Cache
}

func NewMemory(defaultTTL time.Duration) *MemoryCache {
	cleanup := 2 * defaultTTL
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoryCache{store: gocache.New(defaultTTL, cleanup)}
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	body, ok := value.([]byte)
	return body, ok, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.store.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		m.store.Delete(key)
	}
	return nil
}
