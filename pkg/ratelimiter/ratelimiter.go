package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config describes a token bucket: Capacity tokens maximum, refilled by
// RefillRate tokens every RefillInterval.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result reports the outcome of a consumption attempt. Remaining is negative
// when the attempt was denied.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the attempt stayed within the limit.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next token is available.
// Zero when the attempt was allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	d := time.Until(r.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}

// Store is the storage backend for bucket state. ConsumeTokens must apply
// refill and consumption atomically per key.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// Bucket is a token bucket rate limiter over a pluggable store.
type Bucket struct {
	store  Store
	config Config
}

// NewBucket creates a rate limiter with the given backend and configuration.
func NewBucket(store Store, config Config) (*Bucket, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow attempts to consume one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN attempts to consume n tokens for key. Denied attempts do not
// consume anything.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.config.Capacity {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, errors.Join(ErrContextCancelled, err)
	}

	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.config)
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	return Result{
		Limit:     b.config.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the bucket state for key, restoring full capacity.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
