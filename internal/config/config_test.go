package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults tests the default configuration
func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATASTORE_TYPE", "DEFAULT_LOCALE", "COLLATION", "CACHE_TTL", "RATE_LIMIT", "LOG_PRETTY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Port)
	}
	if cfg.DatastoreType != "embedded" {
		t.Errorf("expected embedded datastore, got %s", cfg.DatastoreType)
	}
	if cfg.DefaultLocale != "en-US" {
		t.Errorf("expected default locale en-US, got %s", cfg.DefaultLocale)
	}
	if cfg.Collation != "ordinal" {
		t.Errorf("expected ordinal collation, got %s", cfg.Collation)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %s", cfg.CacheTTL)
	}
	if cfg.RateLimit != 10 {
		t.Errorf("expected rate limit 10, got %d", cfg.RateLimit)
	}
	if !cfg.LogPretty {
		t.Error("expected pretty logs by default")
	}
}

// TestLoad_Overrides tests environment overrides
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATASTORE_TYPE", "redis")
	t.Setenv("DEFAULT_LOCALE", "cz")
	t.Setenv("COLLATION", "locale")
	t.Setenv("CACHE_TTL", "0")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_PRETTY", "false")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.DatastoreType != "redis" {
		t.Errorf("expected redis datastore, got %s", cfg.DatastoreType)
	}
	if cfg.DefaultLocale != "cz" {
		t.Errorf("expected default locale cz, got %s", cfg.DefaultLocale)
	}
	if cfg.Collation != "locale" {
		t.Errorf("expected locale collation, got %s", cfg.Collation)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("expected cache disabled, got %s", cfg.CacheTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected Redis DB 3, got %d", cfg.RedisDB)
	}
	if cfg.LogPretty {
		t.Error("expected pretty logs disabled")
	}
}

// TestGetEnvHelpers tests invalid values fall back to defaults
func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_BOOL", "maybe")

	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
	if got := getEnvAsBool("TEST_BOOL", true); !got {
		t.Error("expected default true")
	}
	if got := getEnv("TEST_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("expected 'fallback', got %s", got)
	}
}
