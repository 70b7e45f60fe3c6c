package kv

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Backend names accepted by Config.Backend.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config locates the external store. Defaults match a local Redis server.
type Config struct {
	// Backend selects the Store implementation: "redis" or "memory".
	Backend string `env:"CACHETRACE_BACKEND" envDefault:"redis"`

	// Addr is the Redis server address.
	Addr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// Password is the Redis AUTH password, empty for none.
	Password string `env:"REDIS_PASSWORD"`

	// DB is the Redis logical database number.
	DB int `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Open creates the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendRedis:
		return OpenRedis(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend %q: must be %q or %q", cfg.Backend, BackendRedis, BackendMemory)
	}
}
