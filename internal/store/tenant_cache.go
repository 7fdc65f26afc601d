package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fraccio/internal/model"
)

// RedisClient is the subset of go-redis used by the tenant cache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// TenantCache is a read-through cache for tenant lookups by path. The path
// lookup runs on every tenant-scoped request, which makes it the one query
// worth caching.
type TenantCache struct {
	redis RedisClient
	ttl   time.Duration
}

// NewTenantCache wraps an existing redis client.
func NewTenantCache(rdb RedisClient, ttl time.Duration) *TenantCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TenantCache{redis: rdb, ttl: ttl}
}

func tenantPathKey(path string) string {
	return fmt.Sprintf("tenant:path:%s", path)
}

// GetByPath returns the cached tenant for path, or nil on miss.
func (c *TenantCache) GetByPath(ctx context.Context, path string) *model.Tenant {
	cached, err := c.redis.Get(ctx, tenantPathKey(path)).Result()
	if err != nil {
		return nil
	}
	tenant := &model.Tenant{}
	if err := json.Unmarshal([]byte(cached), tenant); err != nil {
		return nil
	}
	return tenant
}

// Set caches the tenant under its path key.
func (c *TenantCache) Set(ctx context.Context, tenant *model.Tenant) {
	data, err := json.Marshal(tenant)
	if err != nil {
		return
	}
	c.redis.SetEx(ctx, tenantPathKey(tenant.Path), data, c.ttl)
}

// Invalidate drops the cached entry for path.
func (c *TenantCache) Invalidate(ctx context.Context, path string) {
	c.redis.Del(ctx, tenantPathKey(path))
}

// Close closes the underlying redis client.
func (c *TenantCache) Close() error {
	return c.redis.Close()
}
