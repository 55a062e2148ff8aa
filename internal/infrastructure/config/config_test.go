package config

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")
	unsetenv(t, "TONAL_DATABASE_URL", "DATABASE_URL", "TONAL_WORKERS", "WORKERS", "TONAL_OTEL_ENABLED", "ENABLED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.DefaultPattern != "default" {
		t.Errorf("DefaultPattern = %q, want default", cfg.DefaultPattern)
	}
	if cfg.DatabaseURL != "file:/tmp/xdg/tonal/tonal.db" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if !cfg.IsLocal() || cfg.LocalPath() != "/tmp/xdg/tonal/tonal.db" {
		t.Errorf("LocalPath = %q", cfg.LocalPath())
	}
	if cfg.OTEL.Enabled {
		t.Error("OTEL should be disabled by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TONAL_DATABASE_URL", "libsql://example.turso.io")
	t.Setenv("TONAL_AUTH_TOKEN", "secret")
	t.Setenv("TONAL_WORKERS", "8")
	t.Setenv("TONAL_OTEL_ENABLED", "true")
	t.Setenv("TONAL_OTEL_ENDPOINT", "localhost:4317")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Workers != 8 || cfg.AuthToken != "secret" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.IsLocal() || cfg.LocalPath() != "" {
		t.Error("remote URL reported as local")
	}
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "localhost:4317" {
		t.Errorf("OTEL = %+v", cfg.OTEL)
	}
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("TONAL_WORKERS", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero workers")
	}

	t.Setenv("TONAL_WORKERS", "many")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric workers")
	}
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	if err := Usage(&buf); err != nil {
		t.Fatalf("Usage failed: %v", err)
	}
	for _, key := range []string{"TONAL_DATABASE_URL", "TONAL_WORKERS", "TONAL_OTEL_ENDPOINT"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("usage missing %s", key)
		}
	}
}

func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}
