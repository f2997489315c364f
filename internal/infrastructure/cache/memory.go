package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Values are stored as JSON so it behaves like the redis backend.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache. Expired entries are purged
// every cleanupInterval; zero disables the background janitor.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache and decodes it into dest
func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, found := c.store.Get(key)
	if !found {
		return domain.ErrCacheMiss
	}

	data, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("unexpected cache value type %T for key %q", raw, key)
	}
	return json.Unmarshal(data, dest)
}

// Set stores a value in the cache with TTL. A non-positive TTL uses the
// cache default.
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.store.Set(key, data, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, found := c.store.Get(key)
	return found, nil
}

// Size returns the current number of items in the cache, including expired
// items not yet purged
func (c *MemoryCache) Size() int {
	return c.store.ItemCount()
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.store.Flush()
}
