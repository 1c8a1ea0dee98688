package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// staleAfter is how long an untouched bucket survives before cleanup.
const staleAfter = time.Hour

type bucketState struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps bucket state in process memory. Suitable for a single
// instance; use RedisStore when the limit must hold across replicas.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bucketState)}
}

// ConsumeTokens refills the bucket for elapsed time and consumes tokens.
// A denied attempt reports negative remaining but leaves the bucket intact,
// so being over the limit does not dig the caller into a deeper hole.
func (ms *MemoryStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucketState{tokens: config.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}

	// Cap elapsed intervals so a long-idle bucket cannot overflow int.
	elapsed := now.Sub(b.lastRefill)
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int64(elapsed / config.RefillInterval)
	if intervals > maxIntervals {
		intervals = maxIntervals
	}
	if intervals > 0 {
		b.tokens = min(b.tokens+int(intervals)*config.RefillRate, config.Capacity)
		b.lastRefill = now
	}
	b.lastAccess = now

	resetAt := b.lastRefill.Add(config.RefillInterval)
	if b.tokens < tokens {
		return b.tokens - tokens, resetAt, nil
	}

	b.tokens -= tokens
	return b.tokens, resetAt, nil
}

// Reset removes the bucket for key.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.buckets, key)
	return nil
}

// Cleanup removes buckets untouched for over an hour. Call it periodically
// from the owner's maintenance loop.
func (ms *MemoryStore) Cleanup() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, b := range ms.buckets {
		if now.Sub(b.lastAccess) > staleAfter {
			delete(ms.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked buckets.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}
