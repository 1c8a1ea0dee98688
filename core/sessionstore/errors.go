package sessionstore

import "errors"

var (
	// ErrNoExchangeFunc is returned when session restoration is attempted
	// without a configured exchange function.
	ErrNoExchangeFunc = errors.New("no exchange function configured")
	// ErrPersistToken is returned when the refresh token cannot be written
	// to durable storage.
	ErrPersistToken = errors.New("failed to persist refresh token")
	// ErrRestoreFailed is returned when the refresh-token exchange during
	// restoration is rejected by the backend.
	ErrRestoreFailed = errors.New("failed to restore session")
)
