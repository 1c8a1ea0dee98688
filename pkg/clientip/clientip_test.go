package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for single",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.1",
		},
		{
			name:       "x-forwarded-for chain takes leftmost",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2, 10.0.0.3"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.1",
		},
		{
			name: "cloudflare header wins over x-forwarded-for",
			headers: map[string]string{
				"CF-Connecting-IP": "198.51.100.9",
				"X-Forwarded-For":  "203.0.113.1",
			},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.9",
		},
		{
			name:       "x-real-ip",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			remoteAddr: "10.0.0.1:80",
			want:       "198.51.100.2",
		},
		{
			name:       "invalid header falls through to remote addr",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:       "unspecified address rejected",
			headers:    map[string]string{"X-Real-IP": "0.0.0.0"},
			remoteAddr: "203.0.113.7:54321",
			want:       "203.0.113.7",
		},
		{
			name:       "ipv6",
			headers:    map[string]string{"X-Forwarded-For": "2001:db8::1"},
			remoteAddr: "10.0.0.1:80",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.GetIP(r))
		})
	}
}
