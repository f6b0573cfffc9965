package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (pointer to a loaded copy)
	loadMu     sync.Mutex
)

// ErrNotStructPointer is returned when the target is not a pointer to a struct.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

// loadDotenv reads .env into the process environment once. Existing variables win
// and a missing file is not an error.
func loadDotenv() {
	dotenvOnce.Do(func() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			// A malformed .env must not be silently ignored at startup.
			panic(fmt.Sprintf("config: failed to load .env: %v", err))
		}
	})
}

// Load parses environment variables into cfg. The first successful Load of a type
// is cached and later calls for the same type receive the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotStructPointer
	}
	typ := reflect.TypeOf(cfg).Elem()
	if typ.Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	if cached, ok := cache.Load(typ); ok {
		*cfg = *cached.(*T)
		return nil
	}

	loadMu.Lock()
	defer loadMu.Unlock()

	if cached, ok := cache.Load(typ); ok {
		*cfg = *cached.(*T)
		return nil
	}

	if err := Parse(cfg); err != nil {
		return err
	}

	loaded := *cfg
	cache.Store(typ, &loaded)
	return nil
}

// MustLoad is Load that panics on error. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse parses environment variables into v without caching. Fields whose variables
// are unset and have no envDefault keep their current values, so v can be
// pre-populated with host settings that the environment then overrides.
func Parse(v any, opts ...env.Options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	loadDotenv()

	var o env.Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if err := env.ParseWithOptions(v, o); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	return nil
}
