package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/timetravel/internal/config"
)

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required MONGO_URI is provided.
func TestLoad_defaults(t *testing.T) {
	cfg, err := config.LoadFrom([]string{
		"MONGO_URI=mongodb://localhost:27017",
		"PORT=",
		"LOG_LEVEL=",
		"CORS_ORIGINS=",
	})

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "timetravel", cfg.MongoDatabase)
	require.Equal(t, "travels", cfg.MongoCollection)
	require.Equal(t, 10*time.Second, cfg.MongoConnectTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, config.CacheMemory, cfg.CacheBackend)
	require.Equal(t, "travel:", cfg.CacheKeyPrefix)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Zero(t, cfg.RateLimitRPS)
	require.Equal(t, 20, cfg.RateLimitBurst)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	cfg, err := config.LoadFrom([]string{
		"MONGO_URI=mongodb://mongo:27017/?replicaSet=rs0",
		"MONGO_DATABASE=tt",
		"MONGO_COLLECTION=trips",
		"MONGO_CONNECT_TIMEOUT=3s",
		"PORT=9090",
		"LOG_LEVEL=debug",
		"CORS_ORIGINS=https://app.example.com, https://admin.example.com",
		"CACHE_BACKEND=redis",
		"REDIS_URL=redis://cache:6379/1",
		"CACHE_KEY_PREFIX=tt:",
		"MAX_BODY_BYTES=2048",
		"RATE_LIMIT_RPS=2.5",
		"RATE_LIMIT_BURST=5",
	})

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "mongodb://mongo:27017/?replicaSet=rs0", cfg.MongoURI)
	require.Equal(t, "tt", cfg.MongoDatabase)
	require.Equal(t, "trips", cfg.MongoCollection)
	require.Equal(t, 3*time.Second, cfg.MongoConnectTimeout)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, config.CacheRedis, cfg.CacheBackend)
	require.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	require.Equal(t, "tt:", cfg.CacheKeyPrefix)
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	require.Equal(t, 5, cfg.RateLimitBurst)
}

// TestLoad_missingRequired verifies that an error is returned when MONGO_URI
// is not set, and that the error message names the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	_, err := config.LoadFrom([]string{"MONGO_URI=", "PORT=8080"})

	require.Error(t, err)
	require.ErrorContains(t, err, "MONGO_URI")
}

func TestLoad_readsProcessEnvironment(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://env-host:27017")
	t.Setenv("PORT", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "mongodb://env-host:27017", cfg.MongoURI)
	require.Equal(t, "8080", cfg.Port)
}

func TestLoad_invalidValues(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		wantErr string
	}{
		{
			name:    "redis backend without url",
			environ: []string{"CACHE_BACKEND=redis"},
			wantErr: "REDIS_URL",
		},
		{
			name:    "unknown cache backend",
			environ: []string{"CACHE_BACKEND=memcached"},
			wantErr: "CACHE_BACKEND",
		},
		{
			name:    "unparsable duration",
			environ: []string{"MONGO_CONNECT_TIMEOUT=soon"},
			wantErr: `"soon"`,
		},
		{
			name:    "negative body limit",
			environ: []string{"MAX_BODY_BYTES=-1"},
			wantErr: "MAX_BODY_BYTES",
		},
		{
			name:    "rate limit without burst",
			environ: []string{"RATE_LIMIT_RPS=5", "RATE_LIMIT_BURST=0"},
			wantErr: "RATE_LIMIT_BURST",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			environ := append([]string{"MONGO_URI=mongodb://localhost:27017"}, tc.environ...)

			_, err := config.LoadFrom(environ)

			require.Error(t, err)
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
