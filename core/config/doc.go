// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type ClientConfig struct {
//		BaseURL string `env:"API_BASE_URL,required"`
//		Timeout int    `env:"API_TIMEOUT" envDefault:"30"`
//	}
//
//	func main() {
//		var cfg ClientConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// Each configuration type is loaded only once per application lifetime;
// later calls for the same type return the cached value.
package config
