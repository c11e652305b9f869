package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"socialgraph/backend/internal/social"
	"socialgraph/backend/pkg/logger"
)

const graphKey = "socialgraph:graph"

// GraphCache keeps the projected graph in redis between mutations. The
// service invalidates it on every write and repopulates it on the next
// read, so a stale entry can only survive for the configured TTL.
type GraphCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewGraphCache creates a cache on top of an already-pinged client
func NewGraphCache(client *redis.Client, ttl time.Duration) *GraphCache {
	return &GraphCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("cache"),
	}
}

// Get returns the cached graph, or (nil, nil) on a miss
func (c *GraphCache) Get(ctx context.Context) (*social.Graph, error) {
	val, err := c.client.Get(ctx, graphKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read graph cache: %w", err)
	}

	var g social.Graph
	if err := json.Unmarshal([]byte(val), &g); err != nil {
		return nil, fmt.Errorf("failed to decode cached graph: %w", err)
	}
	return &g, nil
}

// Set stores the graph with the configured TTL
func (c *GraphCache) Set(ctx context.Context, g *social.Graph) error {
	val, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := c.client.Set(ctx, graphKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write graph cache: %w", err)
	}
	c.logger.Debug("graph cached", zap.Duration("ttl", c.ttl))
	return nil
}

// Invalidate drops the cached graph
func (c *GraphCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, graphKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate graph cache: %w", err)
	}
	return nil
}
