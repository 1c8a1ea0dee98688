package sessionstore

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the authenticated user's profile. It is held in memory only and
// re-derived from the backend's "me" endpoint, never persisted locally.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `json:"isActive"`
	IsGuest   bool      `json:"isGuest,omitempty"`
}

// Store is the capability surface shared by both environments.
type Store interface {
	// SetUser stores the profile, marking the session authenticated.
	SetUser(user *User)
	// User returns the current profile, or nil when unauthenticated.
	User() *User
	// ClearUser removes the profile.
	ClearUser()
	// Logout destroys the whole session. It never fails: credential
	// cleanup problems are logged and swallowed so the session always
	// ends locally.
	Logout(ctx context.Context)
}

// TokenStore extends Store with explicit token handling. Only the native
// environment implements it; the web environment has no token surface at
// all.
type TokenStore interface {
	Store

	// SetTokens stores the access token in memory and durably persists the
	// refresh token before returning.
	SetTokens(ctx context.Context, accessToken, refreshToken string) error
	// AccessToken returns the in-memory access token, or empty when absent.
	AccessToken() string
	// RefreshToken reads the persisted refresh token. Returns empty on
	// absence or read failure; failures are logged, never surfaced.
	RefreshToken(ctx context.Context) string
	// ClearTokens clears the in-memory access token and deletes the
	// persisted refresh token, tolerating deletion failure.
	ClearTokens(ctx context.Context)

	// InitializeSession attempts a one-time session restoration at process
	// start. Idempotent; restoration errors are swallowed.
	InitializeSession(ctx context.Context)
	// RestoreSession exchanges the persisted refresh token for a fresh
	// token pair. Returns false without error when there is nothing to
	// restore; on exchange failure all tokens are cleared.
	RestoreSession(ctx context.Context) (bool, error)
}

// SecretStorage is the durable encrypted storage the native store persists
// the refresh token into. pkg/keystore implements it; absence is reported
// via keystore.ErrNotFound.
type SecretStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// ExchangeFunc performs one refresh-token exchange against the backend and
// returns the newly issued pair. Wired by the orchestration layer.
type ExchangeFunc func(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)
