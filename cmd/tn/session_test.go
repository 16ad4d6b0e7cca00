package main

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/tasknest/internal/config"
	"github.com/amonks/tasknest/internal/kv"
	"github.com/amonks/tasknest/todo"
)

func TestStoreConfigDefaultsToFileBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := storeConfig(config.Storage{})
	if err != nil {
		t.Fatalf("store config: %v", err)
	}
	if got.Backend != kv.BackendFile {
		t.Fatalf("expected file backend, got %q", got.Backend)
	}
	if got.Namespace != defaultNamespace {
		t.Fatalf("expected namespace %q, got %q", defaultNamespace, got.Namespace)
	}
	want := filepath.Join(home, ".local", "share", "tasknest")
	if got.Dir != want {
		t.Fatalf("expected data dir %q, got %q", want, got.Dir)
	}
}

func TestStoreConfigPlacesSQLiteInDataDir(t *testing.T) {
	dir := t.TempDir()

	got, err := storeConfig(config.Storage{Backend: "sqlite", Dir: dir})
	if err != nil {
		t.Fatalf("store config: %v", err)
	}
	if want := filepath.Join(dir, "tasknest.db"); got.SQLitePath != want {
		t.Fatalf("expected sqlite path %q, got %q", want, got.SQLitePath)
	}
}

func TestStoreConfigLeavesRemoteBackendsAlone(t *testing.T) {
	got, err := storeConfig(config.Storage{Backend: "redis", RedisAddr: "localhost:6379", Namespace: "team"})
	if err != nil {
		t.Fatalf("store config: %v", err)
	}
	if got.Dir != "" {
		t.Fatalf("expected no data dir for redis, got %q", got.Dir)
	}
	if got.Namespace != "team" || got.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected config %+v", got)
	}
}

func TestCreateDefaults(t *testing.T) {
	got, err := createDefaults(config.Defaults{Priority: "High", Category: "work"})
	if err != nil {
		t.Fatalf("create defaults: %v", err)
	}
	if got.Priority != todo.PriorityHigh || got.Category != todo.CategoryWork {
		t.Fatalf("unexpected defaults %+v", got)
	}

	_, err = createDefaults(config.Defaults{Priority: "urgent"})
	if !errors.Is(err, todo.ErrInvalidPriority) {
		t.Fatalf("expected invalid priority, got %v", err)
	}
}

func TestClockFromEnv(t *testing.T) {
	t.Setenv(nowEnvVar, "2024-03-15T14:30:00Z")
	now, err := clockFromEnv()
	if err != nil {
		t.Fatalf("clock: %v", err)
	}
	if want := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC); !now().Equal(want) {
		t.Fatalf("expected %v, got %v", want, now())
	}

	t.Setenv(nowEnvVar, "yesterday")
	if _, err := clockFromEnv(); err == nil {
		t.Fatal("expected parse error")
	}
}
