// Package clientip extracts the real client IP from HTTP requests behind
// proxies, checking forwarding headers in trust order before falling back to
// the connection address. Used for per-IP rate limit keys.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Headers in priority order. CDN-set headers are checked before generic
// proxy headers because they cannot be spoofed past the CDN.
var headers = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client IP for r. When no header yields a valid address,
// the raw RemoteAddr host is returned.
func GetIP(r *http.Request) string {
	for _, header := range headers {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may hold a chain; the leftmost entry is the client.
		if ip := normalize(strings.SplitN(value, ",", 2)[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// normalize validates and canonicalizes an IP string, rejecting the
// meaningless 0.0.0.0.
func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
