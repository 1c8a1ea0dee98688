// Package refresh coordinates token refreshes across concurrent callers.
//
// When several in-flight requests discover an expired access token at the
// same time, each of them wants a refresh, but issuing more than one
// network refresh would race to rotate the refresh token and invalidate the
// others. The Coordinator guarantees single-flight execution: exactly one
// refresh call runs, and every concurrent trigger awaits that one call's
// outcome.
//
//	coordinator := refresh.NewCoordinator()
//	coordinator.SetCallback(func(ctx context.Context) error {
//		return authService.Refresh(ctx)
//	})
//
//	// From any number of goroutines:
//	if coordinator.Trigger(ctx) {
//		// refreshed, retry the original request
//	}
//
// The Coordinator is an explicitly constructed value passed by reference to
// whoever needs it; there is no package-level state. Reset it on logout so a
// late-arriving trigger cannot act on behalf of a dead session.
package refresh
