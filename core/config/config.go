package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotPointer is returned when Load receives something other than a non-nil struct pointer.
var ErrNotPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = make(map[reflect.Type]reflect.Value)
)

// Load populates cfg from environment variables described by `env` struct tags.
// A .env file in the working directory is read on first use; a missing file is not an error.
// Each type is parsed once; later calls copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotPointer
	}
	t := reflect.TypeOf(cfg).Elem()
	if t.Kind() != reflect.Struct {
		return ErrNotPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	mu.Lock()
	defer mu.Unlock()

	if v, ok := cache[t]; ok {
		reflect.ValueOf(cfg).Elem().Set(v)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t.Name(), err)
	}
	// store a copy so later mutations by the caller do not leak into the cache
	cp := reflect.New(t).Elem()
	cp.Set(reflect.ValueOf(cfg).Elem())
	cache[t] = cp

	return nil
}

// MustLoad is like Load but panics on failure. Intended for program startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
