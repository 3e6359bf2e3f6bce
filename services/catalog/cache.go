// File: services/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"wrenchly/models"

	"github.com/go-redis/redis/v8"
)

// List cache keys; the catalog changes rarely, so list reads pass through a
// short-lived cache that writers drop.
const (
	listKeyActive = "catalog:services:active"
	listKeyAll    = "catalog:services:all"
)

// ListCache caches catalog list reads. A nil cache disables caching.
type ListCache interface {
	// GetList returns the cached list for key, or nil on miss or any cache
	// error.
	GetList(ctx context.Context, key string) []models.Service
	SetList(ctx context.Context, key string, services []models.Service)
	// DropLists invalidates every cached list after a catalog write.
	DropLists(ctx context.Context)
}

// RedisListCache implements ListCache over Redis.
type RedisListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisListCache wraps a Redis client with a 5 minute TTL.
func NewRedisListCache(rdb *redis.Client) *RedisListCache {
	return &RedisListCache{rdb: rdb, ttl: 5 * time.Minute}
}

func (c *RedisListCache) GetList(ctx context.Context, key string) []models.Service {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var services []models.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil
	}
	return services
}

func (c *RedisListCache) SetList(ctx context.Context, key string, services []models.Service) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(services)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, data, c.ttl)
}

func (c *RedisListCache) DropLists(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, listKeyActive, listKeyAll)
}
