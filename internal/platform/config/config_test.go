package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "BACKEND_URL", "BACKEND_TIMEOUT", "SESSION_STORE", "REDIS_DB", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "http://localhost:9002", cfg.Backend.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.False(t, cfg.HTTP.CookieSecure)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.example.test/")
	t.Setenv("BACKEND_TIMEOUT", "15")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COOKIE_SECURE", "true")

	cfg := Load()

	assert.Equal(t, "https://api.example.test", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, StoreRedis, cfg.Session.Store)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.HTTP.CookieSecure)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Minute, parseDuration("2m"))
	assert.Equal(t, time.Duration(0), parseDuration("0"))
	assert.Equal(t, time.Duration(0), parseDuration("nope"))
}
