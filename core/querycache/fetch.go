package querycache

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

// retryableError marks an error as eligible for the query layer's single
// generic retry.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// Retryable marks err for a single retry in Fetch. Returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// Fetch returns the cached value for key, or runs fn and caches its result.
//
// fn is retried exactly once when it returns an error marked with Retryable;
// any other error fails immediately. This is where a 401-triggered refresh
// gets its single retry: the operation marks the error retryable after the
// refresh coordinator has succeeded on its behalf.
func Fetch[T any](ctx context.Context, cache *Cache, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok := GetTyped[T](cache, key); ok {
		return cached, nil
	}

	var result T
	backoff := retry.WithMaxRetries(1, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		value, err := fn(ctx)
		if err != nil {
			var marked *retryableError
			if errors.As(err, &marked) {
				return retry.RetryableError(marked.err)
			}
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	cache.Set(key, result)
	return result, nil
}
