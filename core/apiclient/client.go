package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/core/logger"
)

// Environment selects how authentication is attached to outgoing requests.
type Environment string

const (
	// EnvNative attaches the access token as an Authorization bearer header.
	EnvNative Environment = "native"
	// EnvWeb relies on HttpOnly cookies; no bearer header is ever attached.
	EnvWeb Environment = "web"
)

var (
	// ErrEmptyBaseURL is returned when the client is created without a base URL.
	ErrEmptyBaseURL = errors.New("base URL is required")
	// ErrInvalidEnvironment is returned for environments other than native or web.
	ErrInvalidEnvironment = errors.New("environment must be native or web")
)

// TokenAccessor returns the current access token, or empty when absent.
// It is consulted on every request so token rotation is picked up
// immediately.
type TokenAccessor func() string

// Client performs JSON HTTP calls against the backend with
// environment-correct auth attachment and uniform error normalization.
type Client struct {
	baseURL       string
	env           Environment
	tokenAccessor TokenAccessor
	httpClient    *http.Client
	log           *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithTokenAccessor sets the access-token accessor. Only consulted in the
// native environment; the web environment never attaches bearer tokens.
func WithTokenAccessor(accessor TokenAccessor) Option {
	return func(c *Client) {
		c.tokenAccessor = accessor
	}
}

// WithHTTPClient replaces the underlying http.Client. The caller is
// responsible for attaching a cookie jar when used in the web environment.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger for transport diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a client for the given base URL and environment. A single
// trailing slash on the base URL is stripped before path concatenation.
// In the web environment the default http.Client carries a cookie jar so
// server-set cookies flow on every request.
func New(baseURL string, env Environment, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if env != EnvNative && env != EnvWeb {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEnvironment, env)
	}

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		env:     env,
		log:     logger.NewDiscard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
		if env == EnvWeb {
			// cookiejar.New never fails with nil options.
			jar, _ := cookiejar.New(nil)
			c.httpClient.Jar = jar
		}
	}

	return c, nil
}

// Environment returns the environment the client was configured with.
func (c *Client) Environment() Environment {
	return c.env
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch performs a PATCH request with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete performs a DELETE request and decodes the response into out, if any.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.env == EnvNative {
		if token := c.requestToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failure: no response to normalize, propagate as-is.
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, resp.Status, respBody)
		c.log.DebugContext(ctx, "request failed",
			logger.Method(method),
			logger.Path(path),
			logger.StatusCode(resp.StatusCode),
		)
		return apiErr
	}

	// 204 and empty bodies resolve without touching out.
	if resp.StatusCode == http.StatusNoContent || out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// requestToken resolves the bearer token for a native request: a
// context-scoped token wins over the configured accessor.
func (c *Client) requestToken(ctx context.Context) string {
	if token, ok := tokenFromContext(ctx); ok {
		return token
	}
	if c.tokenAccessor != nil {
		return c.tokenAccessor()
	}
	return ""
}
