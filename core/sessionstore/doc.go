// Package sessionstore holds the authenticated session state for both client
// environments.
//
// Two implementations of the Store capability interface exist, selected once
// at application wiring time:
//
//   - Native: access token in process memory, refresh token in durable
//     encrypted storage (pkg/keystore), user profile in memory. Implements
//     the extended TokenStore interface.
//   - Web: user profile in memory only. Tokens never reach client script;
//     they live in HttpOnly cookies managed by the BFF proxy.
//
// A session is authenticated iff a non-nil user profile is present. Token
// presence alone does not make a session authenticated.
//
// The native store supports restoring a session across process restarts:
//
//	store := sessionstore.NewNative(keystorage,
//		sessionstore.WithExchangeFunc(exchange))
//	store.InitializeSession(ctx) // restores from the persisted refresh token
package sessionstore
