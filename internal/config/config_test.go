package config

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBase(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	for _, k := range []string{"DB_DRIVER", "BCRYPT_COST", "REQUEST_TIMEOUT", "EVENTS_ENABLED", "RABBITMQ_URL", "AMQP_URL", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
}

func TestFromEnvMySQL(t *testing.T) {
	setBase(t)
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "music")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://app.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.EventsEnabled)

	opts := cfg.DatabaseOptions()
	assert.Equal(t, "music", opts.Name)
	assert.Equal(t, "3306", opts.Port)
}

func TestFromEnvSQLiteNeedsNoCredentials(t *testing.T) {
	setBase(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "dev.db")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("AMQP_URL", "amqp://broker:5672/")
	t.Setenv("EVENTS_ENABLED", "yes")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "dev.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, "amqp://broker:5672/", cfg.AMQPURL)
	assert.True(t, cfg.EventsEnabled)
}

func TestFromEnvReportsEveryProblem(t *testing.T) {
	setBase(t)
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("BCRYPT_COST", "ten")

	_, err := FromEnv()
	require.Error(t, err)
	for _, key := range []string{"APP_ENV", "APP_PORT", "DB_USER", "DB_HOST", "DB_PORT", "DB_NAME", "BCRYPT_COST"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestFromEnvUnknownDriver(t *testing.T) {
	setBase(t)
	t.Setenv("DB_DRIVER", "postgres")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 5, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL, "raised to five refill intervals")
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "bogus")

	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, 1<<20, cfg.MaxBodyBytes)
}

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Setenv("REDIS_HOST", "")
	t.Setenv("REDIS_PORT", "")
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_TLS", "")
	t.Setenv("REDIS_ADDR", mr.Addr())
	t.Setenv("REDIS_DB", "2")

	opts := LoadRedisOptions()
	assert.Equal(t, mr.Addr(), opts.Addr)
	assert.Equal(t, 2, opts.DB)

	client := NewRedisClient()
	require.NotNil(t, client)
	client.Close()

	t.Setenv("REDIS_ADDR", "127.0.0.1:1")
	assert.Nil(t, NewRedisClient())
}
