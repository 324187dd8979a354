package config

import (
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR",
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PATH",
		"SESSION_SECRET", "SESSION_BACKEND", "SESSION_TTL_HOURS",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"PUBLIC_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDevelopmentDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.User != devDBUser {
		t.Fatalf("expected dev db user, got %q", cfg.Database.User)
	}
	if cfg.Session.Secret != devSessionSecret {
		t.Fatalf("expected dev session secret")
	}
	if cfg.Session.Backend != "memory" {
		t.Fatalf("expected memory session backend, got %q", cfg.Session.Backend)
	}
}

func TestLoadRefusesInsecureDefaultsOutsideDevelopment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing SESSION_SECRET")
	}

	t.Setenv("SESSION_SECRET", devSessionSecret)
	t.Setenv("DB_USER", "produser")
	t.Setenv("DB_PASSWORD", "prodpass")
	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for default SESSION_SECRET")
	}
	if !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv("SESSION_SECRET", "real-secret")
	t.Setenv("DB_PASSWORD", devDBPassword)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for default DB_PASSWORD")
	}
}

func TestLoadProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "real-secret")
	t.Setenv("DB_USER", "produser")
	t.Setenv("DB_PASSWORD", "prodpass")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("SESSION_BACKEND", "redis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.Port != 3307 {
		t.Fatalf("expected port 3307, got %d", cfg.Database.Port)
	}
	if cfg.Session.Backend != "redis" {
		t.Fatalf("expected redis backend")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")

	t.Setenv("DB_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
	t.Setenv("DB_DRIVER", "sqlite3")

	t.Setenv("DB_PORT", "not-a-number")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad DB_PORT")
	}
}
