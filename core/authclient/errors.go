package authclient

import "errors"

var (
	// ErrNotAuthenticated is returned by operations whose precondition is an
	// authenticated session, instead of silently skipping the call.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNoRefreshToken is returned when a native refresh is attempted
	// without a stored refresh token.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrRefreshFailed is returned when the token refresh is rejected; the
	// local session has already been destroyed when callers see this.
	ErrRefreshFailed = errors.New("failed to refresh session")
)
