package keystore

import "errors"

var (
	// ErrNotFound is returned when the requested entry does not exist.
	ErrNotFound = errors.New("keystore entry not found")
	// ErrInvalidKey is returned for empty keys or keys with path separators.
	ErrInvalidKey = errors.New("invalid keystore key")
	// ErrReadFailed is returned when an entry exists but cannot be read or decrypted.
	ErrReadFailed = errors.New("failed to read keystore entry")
	// ErrWriteFailed is returned when persisting an entry fails.
	ErrWriteFailed = errors.New("failed to write keystore entry")
)
