package ratelimiter

import (
	"net/http"
	"strconv"
)

// KeyFunc derives the rate limit key for a request, typically the client IP.
type KeyFunc func(*http.Request) string

// Middleware returns HTTP middleware enforcing the limiter per key. Every
// response carries X-RateLimit headers; denied requests get a 429 with
// Retry-After. Limiter errors fail open so a broken Redis never takes the
// endpoint down with it.
func Middleware(limiter *Bucket, keyFn KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := limiter.Allow(r.Context(), keyFn(r))
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(result.Remaining, 0)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				seconds := int(result.RetryAfter().Seconds())
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
