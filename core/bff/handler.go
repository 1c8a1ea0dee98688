package bff

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sessionkit/core/apiclient"
	"github.com/dmitrymomot/sessionkit/core/logger"
	"github.com/dmitrymomot/sessionkit/pkg/clientip"
	"github.com/dmitrymomot/sessionkit/pkg/ratelimiter"
)

// Upstream endpoint paths mirrored by the proxy routes.
const (
	pathRegister             = "/users/"
	pathLogin                = "/users/login/"
	pathLogout               = "/users/logout/"
	pathRefresh              = "/users/refresh/"
	pathVerifyEmail          = "/users/verify_email/"
	pathResendVerification   = "/users/resend_verification/"
	pathRequestPasswordReset = "/users/request_password_reset/"
	pathConfirmPasswordReset = "/users/confirm_password_reset/"
	pathCurrentUser          = "/users/me/"
)

// authUpstreamResponse is the upstream session-establishing shape. The user
// payload stays opaque; only the tokens are interpreted here.
type authUpstreamResponse struct {
	User    json.RawMessage `json:"user"`
	Access  string          `json:"access"`
	Refresh string          `json:"refresh"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type errorBody struct {
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Handler is the proxy's HTTP surface.
type Handler struct {
	client         *apiclient.Client
	cookies        cookieManager
	limiter        *ratelimiter.Bucket
	rateLimitStore ratelimiter.Store
	log            *slog.Logger
	router         chi.Router
}

// Option is a functional option for configuring the handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithRateLimitStore sets the backend for the email-endpoint rate limiter.
// Defaults to an in-process store.
func WithRateLimitStore(store ratelimiter.Store) Option {
	return func(h *Handler) {
		h.rateLimitStore = store
	}
}

// New creates the proxy handler over an upstream client. The client must be
// configured for the native environment so per-request bearer tokens can be
// carried on the context.
func New(client *apiclient.Client, cfg Config, opts ...Option) (*Handler, error) {
	if client == nil {
		return nil, errors.New("client is required")
	}

	h := &Handler{
		client: client,
		cookies: cookieManager{
			domain:     cfg.CookieDomain,
			secure:     cfg.IsProduction(),
			accessTTL:  cfg.AccessTokenTTL,
			refreshTTL: cfg.RefreshTokenTTL,
		},
		log:            logger.NewDiscard(),
		rateLimitStore: ratelimiter.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(h)
	}

	limiter, err := ratelimiter.NewBucket(h.rateLimitStore, ratelimiter.Config{
		Capacity:       cfg.ResetRateLimit,
		RefillRate:     cfg.ResetRateLimit,
		RefillInterval: cfg.ResetRateWindow,
	})
	if err != nil {
		return nil, err
	}
	h.limiter = limiter

	h.router = h.routes()
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	rateLimited := ratelimiter.Middleware(h.limiter, clientip.GetIP)

	r.Post(pathRegister, h.forward(pathRegister, http.StatusCreated))
	r.Post(pathLogin, h.handleSessionStart(pathLogin))
	r.Post(pathVerifyEmail, h.handleSessionStart(pathVerifyEmail))
	r.Post(pathLogout, h.handleLogout)
	r.Post(pathRefresh, h.handleRefresh)
	r.Get(pathCurrentUser, h.handleCurrentUser)
	r.Post(pathConfirmPasswordReset, h.forward(pathConfirmPasswordReset, http.StatusOK))

	r.Group(func(r chi.Router) {
		r.Use(rateLimited)
		r.Post(pathResendVerification, h.forward(pathResendVerification, http.StatusOK))
		r.Post(pathRequestPasswordReset, h.forward(pathRequestPasswordReset, http.StatusOK))
	})

	return r
}

// forward proxies the request body upstream verbatim and relays the JSON
// response. No cookie handling; used for the stateless operations.
func (h *Handler) forward(path string, successStatus int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := h.decodeBody(w, r)
		if !ok {
			return
		}

		var out json.RawMessage
		if err := h.client.Post(r.Context(), path, body, &out); err != nil {
			h.writeUpstreamError(w, r, err)
			return
		}
		h.writeJSON(w, successStatus, out)
	}
}

// handleSessionStart proxies login or email verification: the upstream token
// pair becomes cookies and never reaches the browser's JavaScript.
func (h *Handler) handleSessionStart(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := h.decodeBody(w, r)
		if !ok {
			return
		}

		var resp authUpstreamResponse
		if err := h.client.Post(r.Context(), path, body, &resp); err != nil {
			h.writeUpstreamError(w, r, err)
			return
		}

		h.cookies.setSession(w, resp.Access, resp.Refresh)
		h.writeJSON(w, http.StatusOK, map[string]json.RawMessage{"user": resp.User})
	}
}

// handleRefresh rotates the session cookies. Any failure, including a
// missing cookie, clears the session and reports the expired-session code so
// the client tears down uniformly.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	refreshToken, ok := h.cookies.refreshToken(r)
	if !ok {
		h.expireSession(w)
		return
	}

	var pair tokenPair
	if err := h.client.Post(r.Context(), pathRefresh, refreshRequest{Refresh: refreshToken}, &pair); err != nil {
		h.log.InfoContext(r.Context(), "refresh rejected upstream, expiring session",
			logger.Component("bff"), logger.Error(err))
		h.expireSession(w)
		return
	}

	h.cookies.setSession(w, pair.Access, pair.Refresh)
	w.WriteHeader(http.StatusNoContent)
}

// handleLogout revokes the refresh token upstream best-effort and clears the
// cookies no matter what.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if refreshToken, ok := h.cookies.refreshToken(r); ok {
		if err := h.client.Post(r.Context(), pathLogout, refreshRequest{Refresh: refreshToken}, nil); err != nil {
			h.log.WarnContext(r.Context(), "upstream logout failed, clearing cookies anyway",
				logger.Component("bff"), logger.Error(err))
		}
	}

	h.cookies.clearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleCurrentUser forwards the profile fetch with the access cookie as the
// upstream bearer token.
func (h *Handler) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	accessToken, ok := h.cookies.accessToken(r)
	if !ok {
		// The access cookie expired; the client should refresh and retry.
		h.writeJSON(w, http.StatusUnauthorized, errorBody{
			Message: "session expired",
			Code:    apiclient.CodeSessionExpired,
		})
		return
	}

	ctx := apiclient.ContextWithToken(r.Context(), accessToken)
	var user json.RawMessage
	if err := h.client.Get(ctx, pathCurrentUser, &user); err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// expireSession clears the cookies and answers 401 with the session-expired
// code.
func (h *Handler) expireSession(w http.ResponseWriter) {
	h.cookies.clearSession(w)
	h.writeJSON(w, http.StatusUnauthorized, errorBody{
		Message: "session expired",
		Code:    apiclient.CodeSessionExpired,
	})
}

// decodeBody reads an optional JSON body. Malformed JSON is rejected before
// it reaches the upstream. The result is a true nil for bodyless requests so
// the upstream call sends no body at all.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request) (any, bool) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, true
	}

	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Message: "invalid request body"})
		return nil, false
	}
	return body, true
}

// writeUpstreamError relays a normalized upstream error with its original
// status, or 502 for transport failures that produced no response.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr, ok := apiclient.AsError(err); ok {
		h.writeJSON(w, apiErr.Status, errorBody{
			Message: apiErr.Message,
			Code:    apiErr.Code,
			Errors:  apiErr.Errors,
		})
		return
	}

	h.log.ErrorContext(r.Context(), "upstream request failed",
		logger.Component("bff"), logger.Path(r.URL.Path), logger.Error(err))
	h.writeJSON(w, http.StatusBadGateway, errorBody{Message: "upstream unavailable"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", logger.Component("bff"), logger.Error(err))
	}
}
