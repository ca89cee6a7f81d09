// Package cache provides a Redis-backed cache for recommendation responses.
// The cache is an HTTP-layer optimization only; the engine never sees it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/julianacmsantos/recipes-project/internal/model"
)

// ResponseCache caches ranked result lists keyed by the full recommendation
// request. Redis being unavailable degrades to cache misses; it is never
// surfaced as a request error.
type ResponseCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// New creates a response cache with the given TTL.
func New(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *ResponseCache {
	return &ResponseCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "cache").Logger(),
	}
}

// Key derives the cache key for one recommendation request. The model id is
// part of the key so swapping artifacts invalidates old entries naturally.
func Key(modelID, query string, topK int, exactFilter bool) string {
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%s|%d|%t", modelID, query, topK, exactFilter)
	return fmt.Sprintf("recommend:%x", h.Sum64())
}

// Get returns the cached results for key, if present.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]model.SearchResult, bool) {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache read failed")
		return nil, false
	}

	var results []model.SearchResult
	if err := json.Unmarshal(payload, &results); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, ignoring")
		return nil, false
	}
	return results, true
}

// Set stores results under key for the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, results []model.SearchResult) {
	payload, err := json.Marshal(results)
	if err != nil {
		c.logger.Warn().Err(err).Msg("cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache write failed")
	}
}
