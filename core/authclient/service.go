package authclient

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/sessionkit/core/apiclient"
	"github.com/dmitrymomot/sessionkit/core/logger"
	"github.com/dmitrymomot/sessionkit/core/querycache"
	"github.com/dmitrymomot/sessionkit/core/refresh"
	"github.com/dmitrymomot/sessionkit/core/sessionstore"
	"github.com/dmitrymomot/sessionkit/pkg/jwt"
)

// exchangeSetter is implemented by the native session store so the service
// can wire its refresh-token exchange into session restoration.
type exchangeSetter interface {
	SetExchangeFunc(sessionstore.ExchangeFunc)
}

// Service executes authentication operations against the backend and keeps
// the session store and query cache synchronized.
type Service struct {
	client      *apiclient.Client
	store       sessionstore.Store
	tokens      sessionstore.TokenStore // nil in the web environment
	cache       *querycache.Cache
	coordinator *refresh.Coordinator
	log         *slog.Logger

	// expiryLeeway is how close to its exp claim an access token is still
	// considered usable before a proactive refresh kicks in.
	expiryLeeway time.Duration
}

// Option is a functional option for configuring the service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithExpiryLeeway sets the proactive-refresh leeway for JWT access tokens.
func WithExpiryLeeway(leeway time.Duration) Option {
	return func(s *Service) {
		if leeway >= 0 {
			s.expiryLeeway = leeway
		}
	}
}

// New creates the auth service. When the transport runs in the native
// environment and the store implements TokenStore, token handling is
// enabled; otherwise the service operates in the cookie-based web mode.
//
// New also registers the refresh operation as the coordinator's callback
// and, for native stores, wires the refresh-token exchange used by session
// restoration.
func New(client *apiclient.Client, store sessionstore.Store, cache *querycache.Cache, coordinator *refresh.Coordinator, opts ...Option) *Service {
	s := &Service{
		client:       client,
		store:        store,
		cache:        cache,
		coordinator:  coordinator,
		log:          logger.NewDiscard(),
		expiryLeeway: 30 * time.Second,
	}

	if client.Environment() == apiclient.EnvNative {
		if tokens, ok := store.(sessionstore.TokenStore); ok {
			s.tokens = tokens
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	coordinator.SetCallback(s.refreshCallback)

	if setter, ok := store.(exchangeSetter); ok && s.tokens != nil {
		setter.SetExchangeFunc(s.exchangeRefreshToken)
	}

	return s
}

// Register creates a new account without authenticating: no tokens or user
// are stored, and the caller must route the user to email verification.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	var result RegisterResult
	if err := s.client.Post(ctx, pathRegister, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Login authenticates with email and password and establishes the session.
func (s *Service) Login(ctx context.Context, params LoginParams) (*sessionstore.User, error) {
	var resp authResponse
	if err := s.client.Post(ctx, pathLogin, params, &resp); err != nil {
		return nil, err
	}
	if err := s.establishSession(ctx, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// VerifyEmail confirms the address with the emailed code. This is the other
// path into an authenticated session besides login, so its storage behavior
// is identical.
func (s *Service) VerifyEmail(ctx context.Context, params VerifyEmailParams) (*sessionstore.User, error) {
	var resp authResponse
	if err := s.client.Post(ctx, pathVerifyEmail, params, &resp); err != nil {
		return nil, err
	}
	if err := s.establishSession(ctx, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ResendVerification asks the backend to send a fresh verification code.
// No local state changes.
func (s *Service) ResendVerification(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := s.client.Post(ctx, pathResendVerification, emailRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RequestPasswordReset starts a password reset. The backend answers with a
// success-shaped message even for unknown addresses so account existence
// cannot be probed.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := s.client.Post(ctx, pathRequestPasswordReset, emailRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ConfirmPasswordReset completes a password reset with the emailed token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, params ConfirmPasswordResetParams) (string, error) {
	var resp messageResponse
	if err := s.client.Post(ctx, pathConfirmPasswordReset, params, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Logout destroys the session. The backend call is best-effort: its failure
// is logged and swallowed, and the local session is cleared unconditionally.
func (s *Service) Logout(ctx context.Context) {
	if s.tokens != nil {
		if refreshToken := s.tokens.RefreshToken(ctx); refreshToken != "" {
			if err := s.client.Post(ctx, pathLogout, refreshRequest{Refresh: refreshToken}, nil); err != nil {
				s.log.WarnContext(ctx, "logout request failed, clearing session locally",
					logger.Component("authclient"), logger.Error(err))
			}
		}
	} else {
		if err := s.client.Post(ctx, pathLogout, nil, nil); err != nil {
			s.log.WarnContext(ctx, "logout request failed, clearing session locally",
				logger.Component("authclient"), logger.Error(err))
		}
	}

	s.clearLocalSession(ctx)
}

// Refresh exchanges the refresh credential for a fresh token pair. Native
// clients post the stored refresh token and rotate both tokens; web clients
// post nothing and the BFF rotates the cookies server-side.
//
// Any failure destroys the local session: a rejected refresh means the
// session is unrecoverable, and keeping half-valid credentials around only
// produces confusing follow-up errors.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.doRefresh(ctx); err != nil {
		s.log.InfoContext(ctx, "refresh failed, logging out locally",
			logger.Component("authclient"), logger.Error(err))
		s.clearLocalSession(ctx)
		return errors.Join(ErrRefreshFailed, err)
	}

	// Every cached query may belong to the pre-refresh session.
	s.cache.InvalidateAll()
	return nil
}

// CurrentUser fetches the authenticated user's profile, caching the result.
//
// In the native environment a missing access token is an explicit typed
// precondition failure rather than a silently skipped request. A 401 with
// the session-expired code triggers the refresh coordinator and a single
// retry of the fetch.
func (s *Service) CurrentUser(ctx context.Context) (*sessionstore.User, error) {
	if s.tokens != nil {
		accessToken := s.tokens.AccessToken()
		if accessToken == "" {
			return nil, ErrNotAuthenticated
		}
		// Proactive refresh: don't burn a request on a token already known
		// to be past its exp claim. Opaque tokens skip this check.
		if jwt.IsExpired(accessToken, s.expiryLeeway) {
			s.coordinator.Trigger(ctx)
		}
	}

	user, err := querycache.Fetch(ctx, s.cache, KeyCurrentUser, func(ctx context.Context) (*sessionstore.User, error) {
		var user sessionstore.User
		if err := s.client.Get(ctx, pathCurrentUser, &user); err != nil {
			if apiclient.IsSessionExpired(err) && s.coordinator.Trigger(ctx) {
				return nil, querycache.Retryable(err)
			}
			return nil, err
		}
		return &user, nil
	})
	if err != nil {
		return nil, err
	}

	s.store.SetUser(user)
	return user, nil
}

// establishSession stores credentials and profile from a successful login or
// email verification, then invalidates the cached current-user query.
// Native stores the token pair before the user so an observer never sees an
// authenticated profile without usable credentials.
func (s *Service) establishSession(ctx context.Context, resp *authResponse) error {
	if s.tokens != nil {
		if err := s.tokens.SetTokens(ctx, resp.Access, resp.Refresh); err != nil {
			return err
		}
	}
	s.store.SetUser(resp.User)

	// Re-arm the coordinator: a prior logout reset it.
	s.coordinator.SetCallback(s.refreshCallback)

	// Invalidate only after the store mutation is complete.
	s.cache.Invalidate(KeyCurrentUser)
	return nil
}

// clearLocalSession is the unconditional local teardown shared by Logout and
// failed Refresh: session store, coordinator, and cache, in that order.
func (s *Service) clearLocalSession(ctx context.Context) {
	s.store.Logout(ctx)
	s.coordinator.Reset()
	s.cache.InvalidateAll()
}

func (s *Service) doRefresh(ctx context.Context) error {
	if s.tokens == nil {
		// Web: the refresh cookie travels automatically, new cookies come
		// back on the response. Nothing to store locally.
		return s.client.Post(ctx, pathRefresh, nil, nil)
	}

	refreshToken := s.tokens.RefreshToken(ctx)
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	access, newRefresh, err := s.exchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	return s.tokens.SetTokens(ctx, access, newRefresh)
}

// exchangeRefreshToken performs one raw refresh-token exchange. Also wired
// into the native store's session restoration.
func (s *Service) exchangeRefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	var pair tokenPair
	if err := s.client.Post(ctx, pathRefresh, refreshRequest{Refresh: refreshToken}, &pair); err != nil {
		return "", "", err
	}
	return pair.Access, pair.Refresh, nil
}

// refreshCallback adapts Refresh for the coordinator, which collapses the
// outcome to a boolean for its waiters.
func (s *Service) refreshCallback(ctx context.Context) error {
	return s.Refresh(ctx)
}
