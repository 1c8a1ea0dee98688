// Package ratelimiter provides token bucket rate limiting with pluggable
// storage backends.
//
// A Bucket holds Capacity tokens and refills RefillRate tokens every
// RefillInterval. Each attempt consumes tokens when available; denied
// attempts leave the bucket untouched and report how long until the next
// refill.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     5,
//		RefillInterval: time.Minute,
//	})
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if !result.Allowed() {
//		// 429 with Retry-After: result.RetryAfter()
//	}
//
// MemoryStore is per-process. RedisStore shares bucket state across
// replicas through a Lua script, so refill and consumption stay atomic.
package ratelimiter
