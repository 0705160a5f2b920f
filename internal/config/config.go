// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Cache backends accepted by CACHE_BACKEND.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// MongoURI is the MongoDB connection string. Required.
	MongoURI string `env:"MONGO_URI,required"`

	// MongoDatabase and MongoCollection locate the travel documents.
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"timetravel"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"travels"`

	// MongoConnectTimeout bounds the connect and ping at startup.
	MongoConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" envDefault:"10s"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to the Vite dev server. Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173" envSeparator:","`

	// CacheBackend selects the travel cache: memory (default) or redis.
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`

	// RedisURL is required when CacheBackend is redis.
	RedisURL string `env:"REDIS_URL"`

	// CacheKeyPrefix namespaces travel keys in Redis.
	CacheKeyPrefix string `env:"CACHE_KEY_PREFIX" envDefault:"travel:"`

	// MaxBodyBytes caps request bodies. Zero disables the cap.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	// RateLimitRPS is the per-client request rate. Zero disables rate limiting.
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// Load reads configuration from the process environment.
// Variables set to the empty string count as unset.
func Load() (Config, error) {
	return LoadFrom(os.Environ())
}

// LoadFrom reads configuration from environ, given in os.Environ's KEY=value form.
// The returned error names every required variable that is missing and every
// value that failed to parse or validate.
func LoadFrom(environ []string) (Config, error) {
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{Environment: toMap(environ)})
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}

	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	switch c.CacheBackend {
	case CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when CACHE_BACKEND is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be %s or %s, got %q", CacheMemory, CacheRedis, c.CacheBackend))
	}
	if c.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES must not be negative, got %d", c.MaxBodyBytes))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst))
	}
	return errors.Join(errs...)
}

// toMap converts KEY=value pairs to a map, dropping empty values so that
// they fall back to their defaults.
func toMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		m[k] = v
	}
	return m
}

// trimAll trims each entry, ignoring empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, part := range in {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
