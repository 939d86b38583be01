package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("VIEW_CACHE_TTL_SECONDS", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, CacheDriverMemory, cfg.CacheDriver)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 5*time.Minute, cfg.ViewCacheTTL)
	assert.False(t, cfg.AuthCookieSecure)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CACHE_DRIVER", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SEED_DATA", "yes")

	cfg := Load()

	assert.True(t, cfg.AuthCookieSecure)
	assert.Equal(t, CacheDriverRedis, cfg.CacheDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.SeedData)
}

func TestDialect(t *testing.T) {
	d, err := Dialect(Config{DBType: "sqlite", DBPath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialect(Config{DBType: "postgres"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialect(Config{DBType: "oracle"})
	assert.Error(t, err)
}
