// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/metrics"
)

// # Cache Contract

// Cache stores rendered HTML by key.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(context context.Context, key string) (string, bool, error)
	Set(context context.Context, key, value string, ttl time.Duration) error
}

// Key returns the cache key for a markdown body.
func Key(markdown string) string {
	digest := sha256.Sum256([]byte(markdown))
	return constants.RedisPrefixRender + hex.EncodeToString(digest[:])
}

// # Redis Adapter

type redisCache struct {
	client *redis.Client
}

// NewRedisCache adapts a go-redis client to [Cache].
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (cache *redisCache) Get(context context.Context, key string) (string, bool, error) {
	value, err := cache.client.Get(context, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (cache *redisCache) Set(context context.Context, key, value string, ttl time.Duration) error {
	return cache.client.Set(context, key, value, ttl).Err()
}

// # Cached Renderer

// CachedRenderer serves rendered HTML from a [Cache] and renders on a miss.
//
// Cache failures never fail a read: they are logged and the body is rendered
// directly.
type CachedRenderer struct {
	next    Renderer
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Registry
	logger  *slog.Logger
}

// NewCachedRenderer wraps next. A zero ttl disables caching.
func NewCachedRenderer(next Renderer, cache Cache, ttl time.Duration, registry *metrics.Registry, logger *slog.Logger) *CachedRenderer {
	return &CachedRenderer{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		metrics: registry,
		logger:  logger,
	}
}

// Render returns cached HTML for markdown, rendering and storing it on a miss.
func (renderer *CachedRenderer) Render(context context.Context, markdown string) (string, error) {
	if renderer.ttl <= 0 || renderer.cache == nil {
		return renderer.next.Render(context, markdown)
	}

	key := Key(markdown)

	cached, found, err := renderer.cache.Get(context, key)
	switch {
	case err != nil:
		renderer.metrics.ObserveRenderCache(metrics.CacheError)
		renderer.logger.Warn("render_cache_get_failed", slog.String("key", key), slog.Any("error", err))
	case found:
		renderer.metrics.ObserveRenderCache(metrics.CacheHit)
		return cached, nil
	default:
		renderer.metrics.ObserveRenderCache(metrics.CacheMiss)
	}

	html, err := renderer.next.Render(context, markdown)
	if err != nil {
		return "", err
	}

	if err := renderer.cache.Set(context, key, html, renderer.ttl); err != nil {
		renderer.logger.Warn("render_cache_set_failed", slog.String("key", key), slog.Any("error", err))
	}

	return html, nil
}
