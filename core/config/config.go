package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when a nil pointer is passed to Load.
var ErrNilConfig = errors.New("config target must be a non-nil pointer")

var (
	loadEnvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load parses environment variables into cfg. The first call for a given
// struct type parses the environment; subsequent calls return the cached
// value so every caller observes identical configuration.
//
// A .env file in the working directory is loaded once, before the first
// parse. Existing environment variables take precedence over file contents.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	loadEnvOnce.Do(func() {
		// Missing .env is the normal case in production.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(*cfg)

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		*cfg = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	// Re-check after acquiring the write lock; another goroutine may have
	// loaded the same type meanwhile.
	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse %s from environment: %w", typ, err)
	}

	cache[typ] = *cfg
	return nil
}

// MustLoad is like Load but panics on failure. Intended for application
// startup where a missing required variable should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
