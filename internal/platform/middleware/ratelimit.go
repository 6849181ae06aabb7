// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// # Rate Limiting

// RateLimitConfig tunes the per-IP token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultRateLimit is the production bucket.
var DefaultRateLimit = RateLimitConfig{
	RequestsPerSecond: constants.DefaultRateLimitRPS,
	Burst:             constants.DefaultRateLimitBurst,
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// buckets is the per-IP limiter table.
type buckets struct {
	mu      sync.Mutex
	limits  RateLimitConfig
	entries map[string]*bucket
}

func (table *buckets) allow(ip string, now time.Time) bool {
	table.mu.Lock()
	defer table.mu.Unlock()

	entry, ok := table.entries[ip]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(rate.Limit(table.limits.RequestsPerSecond), table.limits.Burst)}
		table.entries[ip] = entry
	}

	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (table *buckets) sweep(now time.Time, ttl time.Duration) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for ip, entry := range table.entries {
		if now.Sub(entry.lastSeen) > ttl {
			delete(table.entries, ip)
		}
	}
}

// RateLimit throttles each client IP with a token bucket.
//
// Idle entries are swept periodically until context is cancelled.
func RateLimit(context context.Context, limits RateLimitConfig) func(http.Handler) http.Handler {
	table := &buckets{limits: limits, entries: make(map[string]*bucket)}

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-context.Done():
				return
			case now := <-ticker.C:
				table.sweep(now, constants.RateLimitClientTTL)
			}
		}
	}()

	const retryAfterSeconds = 1

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !table.allow(RealIP(request), time.Now()) {
				writer.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))
				respond.Error(writer, request, apperr.RateLimited(retryAfterSeconds))
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
