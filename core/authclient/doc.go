// Package authclient implements the authentication operations shared by both
// client applications: registration, login, logout, email verification,
// password reset, token refresh, and the current-user query.
//
// A Service wires the HTTP transport, the environment's session store, the
// query cache, and the refresh coordinator together. Each operation calls
// the backend and then synchronizes local session state and dependent cached
// data. Cache invalidation always happens after the store mutation it
// depends on, never before.
//
//	service := authclient.New(client, store, cache, coordinator)
//
//	user, err := service.Login(ctx, authclient.LoginParams{Email: email, Password: password})
//
// Notable semantics:
//   - Register never authenticates: the caller routes the user to email
//     verification, which is the second path into an authenticated session.
//   - Logout's network call is best-effort; the local session is destroyed
//     unconditionally.
//   - Refresh failure is unrecoverable for the current session and forces a
//     full local logout.
package authclient
