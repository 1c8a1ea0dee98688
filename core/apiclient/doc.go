// Package apiclient provides the HTTP transport used by both client
// environments to talk to the REST backend.
//
// A Client is configured with a base URL and an Environment. In the native
// environment the client attaches the current access token as a bearer
// credential on every request; in the web environment it never does, even if
// a token accessor is supplied: web authentication travels exclusively in
// HttpOnly cookies managed by the underlying http.Client's cookie jar.
//
//	client, err := apiclient.New("https://api.example.com", apiclient.EnvNative,
//		apiclient.WithTokenAccessor(store.AccessToken))
//
//	var user User
//	err = client.Get(ctx, "/users/me/", &user)
//
// Every non-2xx response is normalized into *apiclient.Error carrying the
// HTTP status, a machine-readable code when the backend provides one, a
// human-readable message, and field-keyed validation errors when present.
// Network-level failures (no response at all) propagate unwrapped so callers
// can distinguish them from HTTP errors.
package apiclient
