// Package jwt provides unverified JWT claim inspection for client-side use.
//
// The client never validates token signatures; that is the issuer's job and
// requires the signing key. What a client legitimately needs is to read the
// expiry claim of its own access token so it can refresh proactively instead
// of waiting for a 401:
//
//	if jwt.IsExpired(accessToken, 30*time.Second) {
//		// trigger a refresh before issuing the request
//	}
//
// Opaque (non-JWT) access tokens are handled gracefully: inspection fails
// with ErrMalformedToken and IsExpired reports false, so callers fall back
// to reactive 401-driven refresh.
package jwt
