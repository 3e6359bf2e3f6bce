// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"wrenchly/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient opens and pings a Redis client for the given logical DB.
// Clients are constructed once in main and injected where needed.
func NewRedisClient(cfg *config.Config, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (db %d): %w", db, err)
	}
	return client, nil
}
