// internal/feedback/cache.go
// Redis cache for computed analyses. The analysis is a pure function
// of the event log, so the cache only needs invalidation on new events.

package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type AnalysisCache interface {
	Get(ctx context.Context, userID int64) (*Analysis, bool)
	Set(ctx context.Context, userID int64, analysis *Analysis)
	Invalidate(ctx context.Context, userID int64)
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAnalysisCache(client *redis.Client, ttl time.Duration) AnalysisCache {
	return &redisAnalysisCache{client: client, ttl: ttl}
}

func analysisKey(userID int64) string {
	return fmt.Sprintf("feedback:analysis:%d", userID)
}

func (c *redisAnalysisCache) Get(ctx context.Context, userID int64) (*Analysis, bool) {
	data, err := c.client.Get(ctx, analysisKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var analysis Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, false
	}

	return &analysis, true
}

func (c *redisAnalysisCache) Set(ctx context.Context, userID int64, analysis *Analysis) {
	data, err := json.Marshal(analysis)
	if err != nil {
		return
	}

	// Cache failures are invisible to callers; the next read recomputes
	c.client.Set(ctx, analysisKey(userID), data, c.ttl)
}

func (c *redisAnalysisCache) Invalidate(ctx context.Context, userID int64) {
	c.client.Del(ctx, analysisKey(userID))
}

// noopAnalysisCache is used when Redis is not configured.
type noopAnalysisCache struct{}

func NewNoopAnalysisCache() AnalysisCache {
	return noopAnalysisCache{}
}

func (noopAnalysisCache) Get(ctx context.Context, userID int64) (*Analysis, bool) { return nil, false }
func (noopAnalysisCache) Set(ctx context.Context, userID int64, analysis *Analysis) {}
func (noopAnalysisCache) Invalidate(ctx context.Context, userID int64)              {}
