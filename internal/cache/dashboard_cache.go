package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayamprima/flockcore/internal/config"
	"github.com/ayamprima/flockcore/internal/engine"
	"github.com/redis/go-redis/v9"
)

const (
	dashboardKeyPrefix     = "executive:dashboard:"
	dashboardScanBatchSize = 100
)

// DashboardCache holds the executive ISO aggregation per year filter.
type DashboardCache interface {
	Get(ctx context.Context, yearFilter *int) (*engine.ExecutiveReport, bool, error)
	Set(ctx context.Context, yearFilter *int, report *engine.ExecutiveReport) error
	InvalidateAll(ctx context.Context) error
}

type redisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopDashboardCache struct{}

func NewDashboardCache(cfg config.CacheConfig) (DashboardCache, error) {
	if !cfg.Enabled {
		return &noopDashboardCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisDashboardCache{client: client, ttl: ttl}, nil
}

func NewNoopDashboardCache() DashboardCache {
	return &noopDashboardCache{}
}

func dashboardKey(yearFilter *int) string {
	if yearFilter == nil {
		return dashboardKeyPrefix + "all"
	}
	return fmt.Sprintf("%s%d", dashboardKeyPrefix, *yearFilter)
}

func (c *redisDashboardCache) Get(ctx context.Context, yearFilter *int) (*engine.ExecutiveReport, bool, error) {
	payload, err := c.client.Get(ctx, dashboardKey(yearFilter)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report engine.ExecutiveReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode dashboard cache: %w", err)
	}
	return &report, true, nil
}

func (c *redisDashboardCache) Set(ctx context.Context, yearFilter *int, report *engine.ExecutiveReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode dashboard cache: %w", err)
	}
	if err := c.client.Set(ctx, dashboardKey(yearFilter), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisDashboardCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, dashboardKeyPrefix, dashboardScanBatchSize)
}

func (n *noopDashboardCache) Get(ctx context.Context, yearFilter *int) (*engine.ExecutiveReport, bool, error) {
	return nil, false, nil
}

func (n *noopDashboardCache) Set(ctx context.Context, yearFilter *int, report *engine.ExecutiveReport) error {
	return nil
}

func (n *noopDashboardCache) InvalidateAll(ctx context.Context) error {
	return nil
}
