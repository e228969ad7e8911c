package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "4010", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 30, cfg.RetentionDays)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("RATE_LIMIT_WINDOW_MS", "30000")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("CLEANUP_RETENTION_DAYS", "7")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, 7, cfg.RetentionDays)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg := Load()

	assert.Equal(t, 5, cfg.RateLimitMax)
}
