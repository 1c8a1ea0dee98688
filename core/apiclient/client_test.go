package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/core/apiclient"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := apiclient.New("", apiclient.EnvNative)
	assert.ErrorIs(t, err, apiclient.ErrEmptyBaseURL)

	_, err = apiclient.New("https://api.example.com", apiclient.Environment("desktop"))
	assert.ErrorIs(t, err, apiclient.ErrInvalidEnvironment)
}

func TestNativeEnvironment_AttachesBearer(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative,
		apiclient.WithTokenAccessor(func() string { return "access-1" }))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/users/me/", nil))
	assert.Equal(t, "Bearer access-1", gotAuth)
}

func TestNativeEnvironment_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative,
		apiclient.WithTokenAccessor(func() string { return "" }))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/", nil))
	assert.False(t, hasAuth)
}

func TestWebEnvironment_NeverAttachesBearer(t *testing.T) {
	t.Parallel()

	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	// Accessor supplied on purpose: web must ignore it.
	client, err := apiclient.New(srv.URL, apiclient.EnvWeb,
		apiclient.WithTokenAccessor(func() string { return "should-not-appear" }))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/users/me/", nil))
	assert.False(t, hasAuth, "web transport must never carry an Authorization header")
}

func TestWebEnvironment_CarriesCookies(t *testing.T) {
	t.Parallel()

	var gotCookie string
	mux := http.NewServeMux()
	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "cookie-1", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/read", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("access_token"); err == nil {
			gotCookie = c.Value
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvWeb)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, client.Post(ctx, "/set", nil, nil))
	require.NoError(t, client.Get(ctx, "/read", nil))
	assert.Equal(t, "cookie-1", gotCookie)
}

func TestContextToken_OverridesAccessor(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative,
		apiclient.WithTokenAccessor(func() string { return "accessor-token" }))
	require.NoError(t, err)

	ctx := apiclient.ContextWithToken(context.Background(), "request-token")
	require.NoError(t, client.Get(ctx, "/", nil))
	assert.Equal(t, "Bearer request-token", gotAuth)
}

func TestBaseURL_TrailingSlashStripped(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL+"/", apiclient.EnvNative)
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/users/me/", nil))
	assert.Equal(t, "/users/me/", gotPath)
}

func TestSuccess_DecodesJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"ok","value":42}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	var out struct {
		Message string `json:"message"`
		Value   int    `json:"value"`
	}
	require.NoError(t, client.Post(context.Background(), "/", map[string]string{"a": "b"}, &out))
	assert.Equal(t, "ok", out.Message)
	assert.Equal(t, 42, out.Value)
}

func TestNoContent_LeavesOutUntouched(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	out := map[string]string{"existing": "value"}
	require.NoError(t, client.Delete(context.Background(), "/users/42/", &out))
	assert.Equal(t, map[string]string{"existing": "value"}, out, "204 must not modify out")
}

func TestErrorShape_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Bad request","email":["required"]}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	err = client.Post(context.Background(), "/users/", map[string]string{}, nil)
	require.Error(t, err)

	apiErr, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad request", apiErr.Message)
	assert.Equal(t, []string{"required"}, apiErr.Errors["email"])
	assert.True(t, apiErr.IsValidation())
}

func TestErrorShape_NestedErrorsObject(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Bad request","errors":{"email":["required"]}}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	err = client.Post(context.Background(), "/users/", map[string]string{}, nil)
	require.Error(t, err)

	apiErr, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Bad request", apiErr.Message)
	assert.Equal(t, []string{"required"}, apiErr.Errors["email"])
}

func TestError_NonJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream down</html>"))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/", nil)
	apiErr, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Message, "502")
	assert.True(t, apiErr.IsServerError())
}

func TestError_SessionExpiredCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired","code":"session_expired"}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/users/me/", nil)
	assert.True(t, apiclient.IsSessionExpired(err))
}

func TestError_Plain401IsNotSessionExpired(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/users/me/", nil)
	apiErr, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
	assert.False(t, apiErr.IsSessionExpired())
}

func TestNetworkFailure_PropagatesUnwrapped(t *testing.T) {
	t.Parallel()

	// Closed server: connection refused, no HTTP response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client, err := apiclient.New(srv.URL, apiclient.EnvNative)
	require.NoError(t, err)

	err = client.Get(context.Background(), "/", nil)
	require.Error(t, err)
	_, ok := apiclient.AsError(err)
	assert.False(t, ok, "network failures must not be normalized into *Error")
}
