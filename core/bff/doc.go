// Package bff implements the cookie-holding proxy that sits between the web
// client and the backend API. Browsers never see tokens: the proxy moves
// them between HttpOnly cookies on its own responses and bearer headers on
// upstream requests.
//
// Cookie model:
//   - access_token: short-lived, sent on every proxied request.
//   - refresh_token: long-lived, path-scoped to the session endpoints so it
//     never travels with ordinary API traffic.
//
// Login and email verification strip the token pair out of the upstream
// response body and convert it into cookies. Refresh exchanges the cookie
// upstream and rotates both cookies. Logout revokes upstream best-effort
// and clears cookies unconditionally. Every refresh failure answers 401
// with the session-expired code so the client's refresh logic can react
// uniformly.
//
// Resend-verification and password-reset endpoints are rate limited per
// client IP.
package bff
