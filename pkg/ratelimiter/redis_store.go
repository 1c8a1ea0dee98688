package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript implements the token bucket atomically server-side. State is
// a hash of token count and last refill timestamp in milliseconds. The key
// expires once the bucket would be back at full capacity anyway.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local now_ms = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last_refill')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil then
  tokens = capacity
  last_refill = now_ms
end

local max_intervals = math.floor(capacity / refill_rate) + 1
local intervals = math.floor((now_ms - last_refill) / interval_ms)
if intervals > max_intervals then
  intervals = max_intervals
end
if intervals > 0 then
  tokens = math.min(tokens + intervals * refill_rate, capacity)
  last_refill = now_ms
end

local remaining
if tokens < requested then
  remaining = tokens - requested
else
  tokens = tokens - requested
  remaining = tokens
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last_refill', last_refill)
redis.call('PEXPIRE', KEYS[1], interval_ms * (max_intervals + 1))

return {remaining, last_refill + interval_ms}
`)

// RedisStore keeps bucket state in Redis so the limit holds across
// application replicas.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the namespace prepended to every bucket key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store over an existing client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{client: client, prefix: "ratelimit:"}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// ConsumeTokens runs the bucket script for key. A denied attempt reports
// negative remaining and leaves the stored count untouched.
func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	values, err := consumeScript.Run(ctx, rs.client, []string{rs.prefix + key},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		tokens,
		time.Now().UnixMilli(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to consume tokens: %w", err)
	}
	if len(values) != 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected script result length %d", len(values))
	}

	return int(values[0]), time.UnixMilli(values[1]), nil
}

// Reset removes the bucket for key.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset bucket: %w", err)
	}
	return nil
}
