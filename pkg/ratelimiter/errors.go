package ratelimiter

import "errors"

var (
	// ErrInvalidConfig is returned when a bucket configuration has a
	// non-positive capacity, refill rate, or refill interval.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidTokenCount is returned when a consumption attempt asks for
	// zero, negative, or more than capacity tokens.
	ErrInvalidTokenCount = errors.New("invalid token count")
	// ErrContextCancelled is returned when the caller's context is already
	// done before the attempt reaches the store.
	ErrContextCancelled = errors.New("context cancelled")
	// ErrStoreUnavailable wraps a storage backend failure during token
	// consumption.
	ErrStoreUnavailable = errors.New("store unavailable")
)
