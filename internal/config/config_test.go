package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/tasknest/internal/config"
	"github.com/amonks/tasknest/internal/testsupport"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvStorage, config.EnvDataDir, config.EnvRedisAddr, config.EnvFirestoreProject} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func writeGlobal(t *testing.T, home, content string) {
	t.Helper()
	writeFile(t, filepath.Join(home, ".config", "tasknest", "config.toml"), content)
}

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Backend != "" {
		t.Errorf("expected empty backend, got %q", cfg.Storage.Backend)
	}
	if !cfg.Notifications.Urgent || !cfg.Notifications.DueToday {
		t.Error("expected notifications on by default")
	}
	if cfg.Analytics.MatrixIncludeCompleted {
		t.Error("expected completed todos excluded from the matrix by default")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.FileName), `
[storage]
backend = "sqlite"
namespace = "team"
key = "board"
sqlite-path = " tasks.db "

[defaults]
priority = "high"
category = "work"

[notifications]
urgent = false

[analytics]
matrix-include-completed = true
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Namespace != "team" || cfg.Storage.Key != "board" {
		t.Errorf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Storage.SQLitePath != "tasks.db" {
		t.Errorf("expected trimmed sqlite path, got %q", cfg.Storage.SQLitePath)
	}
	if cfg.Defaults.Priority != "high" || cfg.Defaults.Category != "work" {
		t.Errorf("unexpected defaults: %+v", cfg.Defaults)
	}
	if cfg.Notifications.Urgent {
		t.Error("expected urgent notifications off")
	}
	if !cfg.Notifications.DueToday {
		t.Error("expected due-today notifications to keep their default")
	}
	if !cfg.Analytics.MatrixIncludeCompleted {
		t.Error("expected matrix-include-completed")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.FileName), `this is not valid toml [`)

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.FileName), "[storage]\nbackend = \"file\"\ncolour = \"blue\"\n")

	if _, err := config.Load(tmpDir); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoad_MergesGlobalAndProject(t *testing.T) {
	home := testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	writeGlobal(t, home, `
[storage]
backend = "redis"
redis-addr = "cache:6379"

[defaults]
priority = "low"

[notifications]
due-today = false
`)
	writeFile(t, filepath.Join(tmpDir, config.FileName), `
[storage]
backend = "file"

[defaults]
priority = ""
`)

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Backend != "file" {
		t.Errorf("expected project backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.RedisAddr != "cache:6379" {
		t.Errorf("expected global redis-addr, got %q", cfg.Storage.RedisAddr)
	}
	if cfg.Defaults.Priority != "" {
		t.Errorf("expected project to clear priority, got %q", cfg.Defaults.Priority)
	}
	if cfg.Notifications.DueToday {
		t.Error("expected global due-today=false to apply")
	}
	if !cfg.Notifications.Urgent {
		t.Error("expected urgent to keep its default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, config.FileName), `
[storage]
backend = "sqlite"
dir = "/from/file"
`)
	t.Setenv(config.EnvStorage, "memory")
	t.Setenv(config.EnvDataDir, "/from/env")
	t.Setenv(config.EnvFirestoreProject, "demo")

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.Backend != "memory" || cfg.Storage.Dir != "/from/env" || cfg.Storage.FirestoreProject != "demo" {
		t.Errorf("expected env overrides, got %+v", cfg.Storage)
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	testsupport.SetupTestHome(t)
	clearEnv(t)
	tmpDir := t.TempDir()

	writeFile(t, filepath.Join(tmpDir, ".env"), "TASKNEST_REDIS_ADDR=localhost:6380\nTASKNEST_STORAGE=redis\n")
	t.Setenv(config.EnvStorage, "file")

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Storage.RedisAddr != "localhost:6380" {
		t.Errorf("expected redis addr from .env, got %q", cfg.Storage.RedisAddr)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("expected process env to win over .env, got %q", cfg.Storage.Backend)
	}
}
