// Package querycache is a small in-process cache for remote query results
// with explicit invalidation, the client-side equivalent of a query cache
// layer sitting between the UI and the API.
//
// Cached values are keyed by string. Mutations that change server state
// invalidate the affected keys; a token refresh invalidates everything,
// since any cached response may have been produced for a different session.
//
// Fetch adds the single generic retry applied at the query layer: an error
// explicitly marked with Retryable is retried exactly once, everything else
// fails immediately.
//
//	user, err := querycache.Fetch(ctx, cache, "auth:user", func(ctx context.Context) (*User, error) {
//		err := client.Get(ctx, "/users/me/", &user)
//		if apiclient.IsSessionExpired(err) && coordinator.Trigger(ctx) {
//			return nil, querycache.Retryable(err)
//		}
//		return user, err
//	})
package querycache
