package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// unset clears keys for the duration of the test
func unset(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unset(t, "PORT", "POLL_INTERVAL", "QUERY_RETRIES", "STORAGE_DRIVER")
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 1, cfg.QueryRetries)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CACHE_STALE_COUNTS", "10s")
	t.Setenv("QUERY_RETRIES", "3")
	t.Setenv("S3_PATH_STYLE", "true")
	t.Setenv("CORS_ORIGINS", "https://admin.example.com, https://app.example.com,")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 10*time.Second, cfg.CacheStaleCounts)
	assert.Equal(t, 3, cfg.QueryRetries)
	assert.True(t, cfg.Storage.PathStyle)
	assert.Equal(t, []string{"https://admin.example.com", "https://app.example.com"}, cfg.CORSOrigins)
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CACHE_STALE_DEFAULT", "soon")
	t.Setenv("QUERY_RETRIES", "-2")
	t.Setenv("S3_PATH_STYLE", "maybe")

	cfg := Load()
	assert.Equal(t, time.Minute, cfg.CacheStaleDefault)
	assert.Equal(t, 1, cfg.QueryRetries)
	assert.False(t, cfg.Storage.PathStyle)
}
