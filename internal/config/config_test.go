package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPSTREAM_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.eventbriteapi.com", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout())
	assert.Equal(t, 3, cfg.Upstream.MaxRetries)
	assert.True(t, cfg.Upstream.FollowPagination)
	assert.Equal(t, 50, cfg.Upstream.MaxPages)
	assert.False(t, cfg.Filter.Strict)
	assert.True(t, cfg.Cache.StaleFallback)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_TOKEN", "secret")
	t.Setenv("FILTER_STRICT", "true")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "3")
	t.Setenv("UPSTREAM_FOLLOW_PAGINATION", "false")
	t.Setenv("UPSTREAM_MAX_RETRIES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Filter.Strict)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout())
	assert.False(t, cfg.Upstream.FollowPagination)
	assert.Equal(t, 3, cfg.Upstream.MaxRetries)
}

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("UPSTREAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("UPSTREAM_TOKEN", "secret")
	t.Setenv("REDIS_DB", "x")

	_, err := Load()
	assert.Error(t, err)
}
