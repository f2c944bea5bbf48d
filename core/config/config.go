package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache holds one loaded value per configuration type.
	cache sync.Map // reflect.Type -> any

	// dotenvOnce loads .env files once per process, before the first parse.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. Each configuration type is
// loaded once per application lifetime; subsequent calls for the same type
// return the cached value. A .env file in the working directory is loaded
// automatically on first use; a missing file is not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: target must be a non-nil pointer")
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", key, err)
	}

	cache.Store(key, *cfg)
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup where
// a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
