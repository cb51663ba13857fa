package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENABLE_SCHEDULED_TASKS", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FRONTEND_URL", "")
	t.Setenv("GIN_MODE", "")

	cfg, err := LoadConfigFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Fatalf("port: want=3001 got=%d", cfg.Server.Port)
	}
	if cfg.Scheduler.Enabled {
		t.Fatalf("scheduler should be disabled by default")
	}
	if cfg.Scheduler.StatusCron != "0 * * * *" {
		t.Fatalf("status cron: got=%q", cfg.Scheduler.StatusCron)
	}
	if cfg.RateLimit.Window != 15*time.Minute {
		t.Fatalf("rate limit window: want=15m got=%v", cfg.RateLimit.Window)
	}
	if cfg.Retention.MatchMonths != 6 || cfg.Retention.StatsMonths != 3 {
		t.Fatalf("retention: got=%+v", cfg.Retention)
	}
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 8080\n  mode: release\npostgres:\n  dsn: postgres://a@b/c\nscheduler:\n  enabled: false\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("FRONTEND_URL", "https://predict.example.com")
	t.Setenv("ENABLE_SCHEDULED_TASKS", "true")
	t.Setenv("DATABASE_URL", "postgres://x@y/z")

	cfg, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatalf("LoadConfigFrom: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("port from yaml: want=8080 got=%d", cfg.Server.Port)
	}
	if !cfg.Server.IsRelease() {
		t.Fatalf("mode: want=release got=%q", cfg.Server.Mode)
	}
	if !cfg.Scheduler.Enabled {
		t.Fatalf("ENABLE_SCHEDULED_TASKS=true should enable scheduler")
	}
	if cfg.Postgres.DSN != "postgres://x@y/z" {
		t.Fatalf("dsn: got=%q", cfg.Postgres.DSN)
	}
	if cfg.Server.AllowedOrigin != "https://predict.example.com" {
		t.Fatalf("allowed origin: got=%q", cfg.Server.AllowedOrigin)
	}
	if cfg.Scheduler.StatsCron != "0 */6 * * *" {
		t.Fatalf("stats cron default kept: got=%q", cfg.Scheduler.StatsCron)
	}
}

func TestLoadConfigInvalidPort(t *testing.T) {
	t.Setenv("PORT", "abc")
	if _, err := LoadConfigFrom(t.TempDir()); err == nil {
		t.Fatalf("expected error for invalid PORT")
	}
}
