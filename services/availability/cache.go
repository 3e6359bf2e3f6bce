// File: services/availability/cache.go
package availability

import (
	"context"
	"encoding/json"
	"time"

	"wrenchly/models"

	"github.com/go-redis/redis/v8"
)

// Cache keeps short-lived copies of day records for the read API. The
// booking engine and lifecycle manager drop a day's entry whenever they
// change its occupancy.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCache wraps a Redis client. A 30s TTL keeps reads cheap without letting
// stale availability linger.
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb, ttl: 30 * time.Second}
}

func dayKey(day string) string {
	return "availability:day:" + day
}

// GetDay returns the cached record, or nil on miss or any cache error.
func (c *Cache) GetDay(ctx context.Context, day string) *models.AvailabilityDay {
	if c == nil || c.rdb == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, dayKey(day)).Bytes()
	if err != nil {
		return nil
	}
	var rec models.AvailabilityDay
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}
	return &rec
}

// SetDay stores a record; cache errors are ignored.
func (c *Cache) SetDay(ctx context.Context, rec *models.AvailabilityDay) {
	if c == nil || c.rdb == nil || rec == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, dayKey(rec.Day), data, c.ttl)
}

// DropDay invalidates a day after its occupancy changed.
func (c *Cache) DropDay(ctx context.Context, day string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, dayKey(day))
}
