package bff

import "time"

// Config holds the proxy settings, populated from the environment.
type Config struct {
	Addr        string `env:"BFF_ADDR" envDefault:":8080"`
	UpstreamURL string `env:"BFF_UPSTREAM_URL,required"`
	Environment string `env:"BFF_ENVIRONMENT" envDefault:"development"`

	CookieDomain    string        `env:"BFF_COOKIE_DOMAIN"`
	AccessTokenTTL  time.Duration `env:"BFF_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"BFF_REFRESH_TOKEN_TTL" envDefault:"168h"`

	// Per-IP budget for the email-sending endpoints.
	ResetRateLimit  int           `env:"BFF_RESET_RATE_LIMIT" envDefault:"5"`
	ResetRateWindow time.Duration `env:"BFF_RESET_RATE_WINDOW" envDefault:"1m"`

	// Optional shared rate limit store; empty keeps limits per-process.
	RedisURL string `env:"BFF_REDIS_URL"`

	ShutdownTimeout time.Duration `env:"BFF_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// IsProduction reports whether cookies must carry the Secure flag.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
