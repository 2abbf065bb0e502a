// internal/common/database/redis.go
// Redis connection for the per-user analysis cache

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClientFromURL creates a Redis client from a URL and verifies
// the connection before returning it. The cache is optional; callers
// degrade to uncached analysis when this fails instead of treating it
// as fatal.
func NewRedisClientFromURL(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
