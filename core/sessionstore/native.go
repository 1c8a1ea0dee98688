package sessionstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/sessionkit/core/logger"
	"github.com/dmitrymomot/sessionkit/pkg/keystore"
)

// refreshTokenKey is the fixed storage key for the persisted refresh token.
// It is the only durable session state the native client keeps.
const refreshTokenKey = "refreshToken"

// Native is the session store for the native client environment. The access
// token lives exclusively in process memory; the refresh token is persisted
// through SecretStorage and survives process restarts.
//
// All in-memory state transitions happen under one mutex, so composite
// operations like Logout are atomic from the caller's perspective.
type Native struct {
	mu          sync.Mutex
	accessToken string
	user        *User

	storage  SecretStorage
	exchange ExchangeFunc
	log      *slog.Logger

	initialized atomic.Bool
}

// NativeOption configures the native store.
type NativeOption func(*Native)

// WithExchangeFunc sets the refresh-token exchange used by RestoreSession.
func WithExchangeFunc(exchange ExchangeFunc) NativeOption {
	return func(n *Native) {
		n.exchange = exchange
	}
}

// WithLogger sets the logger for swallowed storage failures.
func WithLogger(log *slog.Logger) NativeOption {
	return func(n *Native) {
		if log != nil {
			n.log = log
		}
	}
}

// NewNative creates a native session store over the given durable storage.
func NewNative(storage SecretStorage, opts ...NativeOption) *Native {
	n := &Native{
		storage: storage,
		log:     logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SetExchangeFunc wires the exchange function after construction. The
// orchestration layer calls this because it is built after the store it
// depends on.
func (n *Native) SetExchangeFunc(exchange ExchangeFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.exchange = exchange
}

// SetTokens stores the access token in memory and persists the refresh token
// before returning, so callers may rely on it being durable immediately
// after. Each successful refresh overwrites the previous refresh token;
// the backend blacklists the old one on rotation.
func (n *Native) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	if err := n.storage.Set(ctx, refreshTokenKey, refreshToken); err != nil {
		return errors.Join(ErrPersistToken, err)
	}

	n.mu.Lock()
	n.accessToken = accessToken
	n.mu.Unlock()
	return nil
}

// AccessToken returns the in-memory access token, or empty when absent.
func (n *Native) AccessToken() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.accessToken
}

// RefreshToken reads the persisted refresh token. Absence and read failures
// both yield an empty string; genuine failures are logged, not surfaced.
func (n *Native) RefreshToken(ctx context.Context) string {
	token, err := n.storage.Get(ctx, refreshTokenKey)
	if err != nil {
		if !errors.Is(err, keystore.ErrNotFound) {
			n.log.WarnContext(ctx, "failed to read refresh token",
				logger.Component("sessionstore"), logger.Error(err))
		}
		return ""
	}
	return token
}

// ClearTokens clears the in-memory access token and deletes the persisted
// refresh token. Deletion failure is logged and swallowed; the in-memory
// token is reported cleared regardless.
func (n *Native) ClearTokens(ctx context.Context) {
	n.mu.Lock()
	n.accessToken = ""
	n.mu.Unlock()

	if err := n.storage.Delete(ctx, refreshTokenKey); err != nil {
		n.log.WarnContext(ctx, "failed to delete persisted refresh token",
			logger.Component("sessionstore"), logger.Error(err))
	}
}

// SetUser stores a copy of the profile, marking the session authenticated.
func (n *Native) SetUser(user *User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.user = copyUser(user)
}

// User returns a copy of the current profile, or nil when unauthenticated.
func (n *Native) User() *User {
	n.mu.Lock()
	defer n.mu.Unlock()
	return copyUser(n.user)
}

// ClearUser removes the profile.
func (n *Native) ClearUser() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.user = nil
}

// Logout clears tokens and user, leaving the store indistinguishable from a
// freshly created, never-authenticated one.
func (n *Native) Logout(ctx context.Context) {
	n.mu.Lock()
	n.accessToken = ""
	n.user = nil
	n.mu.Unlock()

	if err := n.storage.Delete(ctx, refreshTokenKey); err != nil {
		n.log.WarnContext(ctx, "failed to delete persisted refresh token on logout",
			logger.Component("sessionstore"), logger.Error(err))
	}
}

// InitializeSession runs session restoration exactly once per store
// lifetime. Restoration failure is not fatal to startup: the user simply has
// to log in again, so any error is swallowed after logging.
func (n *Native) InitializeSession(ctx context.Context) {
	if !n.initialized.CompareAndSwap(false, true) {
		return
	}

	if _, err := n.RestoreSession(ctx); err != nil {
		n.log.InfoContext(ctx, "session restoration failed, user must log in",
			logger.Component("sessionstore"), logger.Error(err))
	}
}

// RestoreSession exchanges the persisted refresh token for a fresh pair.
// No stored token means nothing to restore: (false, nil). On exchange
// failure all tokens are cleared so a stale rotated-out refresh token cannot
// be retried forever.
func (n *Native) RestoreSession(ctx context.Context) (bool, error) {
	refreshToken := n.RefreshToken(ctx)
	if refreshToken == "" {
		return false, nil
	}

	n.mu.Lock()
	exchange := n.exchange
	n.mu.Unlock()
	if exchange == nil {
		return false, ErrNoExchangeFunc
	}

	accessToken, newRefreshToken, err := exchange(ctx, refreshToken)
	if err != nil {
		n.ClearTokens(ctx)
		return false, errors.Join(ErrRestoreFailed, err)
	}

	if err := n.SetTokens(ctx, accessToken, newRefreshToken); err != nil {
		return false, err
	}
	return true, nil
}

func copyUser(user *User) *User {
	if user == nil {
		return nil
	}
	u := *user
	return &u
}
