package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	chartKeyPrefix     = "flock:chart:"
	chartScanBatchSize = 100
)

// ChartCache holds serialized chart/projection payloads per flock. Entries
// are invalidated whenever a daily log of the flock changes.
type ChartCache interface {
	Get(ctx context.Context, flockID string) ([]byte, bool, error)
	Set(ctx context.Context, flockID string, payload []byte) error
	Invalidate(ctx context.Context, flockID string) error
	InvalidateAll(ctx context.Context) error
}

type redisChartCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopChartCache struct{}

func NewChartCache(cfg config.CacheConfig) (ChartCache, error) {
	if !cfg.Enabled {
		return &noopChartCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisChartCache{client: client, ttl: ttl}, nil
}

func NewNoopChartCache() ChartCache {
	return &noopChartCache{}
}

func (c *redisChartCache) Get(ctx context.Context, flockID string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, chartKeyPrefix+flockID).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return payload, true, nil
}

func (c *redisChartCache) Set(ctx context.Context, flockID string, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("refusing to cache invalid chart payload for %s", flockID)
	}
	if err := c.client.Set(ctx, chartKeyPrefix+flockID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisChartCache) Invalidate(ctx context.Context, flockID string) error {
	return c.client.Del(ctx, chartKeyPrefix+flockID).Err()
}

func (c *redisChartCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, chartKeyPrefix, chartScanBatchSize)
}

func (n *noopChartCache) Get(ctx context.Context, flockID string) ([]byte, bool, error) {
	return nil, false, nil
}

func (n *noopChartCache) Set(ctx context.Context, flockID string, payload []byte) error {
	return nil
}

func (n *noopChartCache) Invalidate(ctx context.Context, flockID string) error {
	return nil
}

func (n *noopChartCache) InvalidateAll(ctx context.Context) error {
	return nil
}
