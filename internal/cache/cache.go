// Package cache provides an optional Redis-backed cache of enrichment
// results keyed by URL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jmt-genius/synapcity-hub/internal/config"
	"github.com/jmt-genius/synapcity-hub/internal/domain"
	"github.com/jmt-genius/synapcity-hub/internal/logger"
)

// ErrMiss is returned when no cached enrichment exists for a URL.
var ErrMiss = errors.New("cache miss")

// connectionTimeout is the timeout for verifying the Redis connection.
const connectionTimeout = 5 * time.Second

const keyPrefix = "enriched:"

// LinkCache stores enriched links in Redis with a TTL.
type LinkCache struct {
	client *redis.Client
	logger logger.Logger
	ttl    time.Duration
}

// New creates a LinkCache and verifies the Redis connection.
func New(cfg config.CacheConfig, log logger.Logger) (*LinkCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &LinkCache{
		client: client,
		logger: log,
		ttl:    cfg.TTL,
	}, nil
}

// Get returns the cached enrichment for a URL, or ErrMiss.
func (c *LinkCache) Get(ctx context.Context, url string) (*domain.EnrichedLink, error) {
	data, err := c.client.Get(ctx, keyPrefix+url).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var link domain.EnrichedLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("cache entry decode failed: %w", err)
	}
	return &link, nil
}

// Set stores an enrichment result for a URL.
func (c *LinkCache) Set(ctx context.Context, url string, link *domain.EnrichedLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("cache entry encode failed: %w", err)
	}

	if err := c.client.Set(ctx, keyPrefix+url, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	c.logger.Debug("Cached enrichment result",
		logger.String("url", url),
		logger.Duration("ttl", c.ttl),
	)
	return nil
}

// Close releases the underlying Redis connection.
func (c *LinkCache) Close() error {
	return c.client.Close()
}
