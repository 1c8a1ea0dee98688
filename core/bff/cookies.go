package bff

import (
	"net/http"
	"time"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"

	// The refresh cookie only needs to reach the refresh and logout
	// endpoints; scoping it keeps the long-lived credential off every other
	// request.
	refreshCookiePath = "/users/"
)

// cookieManager writes and reads the session cookie pair with consistent
// flags. Both cookies are HttpOnly and SameSite=Lax; Secure in production.
type cookieManager struct {
	domain     string
	secure     bool
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func (cm *cookieManager) setSession(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		Domain:   cm.domain,
		MaxAge:   int(cm.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		Domain:   cm.domain,
		MaxAge:   int(cm.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSession expires both cookies. MaxAge -1 deletes immediately; the
// attributes must match the originals or browsers keep the old cookie.
func (cm *cookieManager) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		Domain:   cm.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     refreshCookiePath,
		Domain:   cm.domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (cm *cookieManager) accessToken(r *http.Request) (string, bool) {
	return readCookie(r, accessTokenCookie)
}

func (cm *cookieManager) refreshToken(r *http.Request) (string, bool) {
	return readCookie(r, refreshTokenCookie)
}

func readCookie(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
