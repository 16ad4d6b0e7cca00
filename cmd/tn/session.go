package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/internal/config"
	"github.com/amonks/tasknest/internal/eventlog"
	"github.com/amonks/tasknest/internal/kv"
	"github.com/amonks/tasknest/internal/notify"
	"github.com/amonks/tasknest/internal/paths"
	"github.com/amonks/tasknest/registry"
	"github.com/amonks/tasknest/storage"
	"github.com/amonks/tasknest/todo"
	"github.com/spf13/cobra"
)

// nowEnvVar pins the clock to an RFC 3339 timestamp. Scripted tests use it.
const nowEnvVar = "TASKNEST_NOW"

const defaultNamespace = "tasknest"

// session is one invocation's registry and the settings it was built from.
type session struct {
	reg      *registry.Registry
	cfg      *config.Config
	store    kv.Store
	storeCfg kv.Config
	now      func() time.Time
	defaults todo.CreateInput
}

// openSession loads config, opens the configured store, and loads the
// registry. adjust may tweak the registry options before it is built.
func openSession(cmd *cobra.Command, adjust ...func(*registry.Options)) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	now, err := clockFromEnv()
	if err != nil {
		return nil, err
	}
	defaults, err := createDefaults(cfg.Defaults)
	if err != nil {
		return nil, err
	}

	kvCfg, err := storeConfig(cfg.Storage)
	if err != nil {
		return nil, err
	}
	store, err := kv.Open(ctx, kvCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", kvCfg.Backend, err)
	}

	logger := eventlog.NewConsoleLogger(cmd.ErrOrStderr(), rootVerbose)
	opts := registry.Options{
		Key:      cfg.Storage.Key,
		Now:      now,
		Logger:   logger,
		Notifier: notify.LogNotifier{Logger: logger},
		NotifyPolicy: notify.Policy{
			Urgent:   cfg.Notifications.Urgent,
			DueToday: cfg.Notifications.DueToday,
		},
		Matrix: analytics.MatrixOptions{IncludeCompleted: cfg.Analytics.MatrixIncludeCompleted},
	}
	for _, fn := range adjust {
		fn(&opts)
	}

	reg := registry.New(store, opts)
	// A read failure aborts rather than risk overwriting unread data.
	if _, err := reg.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return &session{reg: reg, cfg: cfg, store: store, storeCfg: kvCfg, now: now, defaults: defaults}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

// withSession runs fn against a freshly loaded registry.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error, adjust ...func(*registry.Options)) error {
	s, err := openSession(cmd, adjust...)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, s)
}

func storeConfig(cfg config.Storage) (kv.Config, error) {
	out := kv.Config{
		Backend:             kv.Backend(cfg.Backend),
		Namespace:           cfg.Namespace,
		Dir:                 cfg.Dir,
		SQLitePath:          cfg.SQLitePath,
		RedisAddr:           cfg.RedisAddr,
		FirestoreProject:    cfg.FirestoreProject,
		FirestoreCollection: cfg.FirestoreCollection,
	}
	if out.Backend == "" {
		out.Backend = kv.BackendFile
	}
	if out.Namespace == "" {
		out.Namespace = defaultNamespace
	}
	if out.Backend != kv.BackendFile && out.Backend != kv.BackendSQLite {
		return out, nil
	}

	dir, err := paths.ResolveWithDefault(out.Dir, paths.DefaultDataDir)
	if err != nil {
		return out, err
	}
	out.Dir = dir
	if out.Backend == kv.BackendSQLite && out.SQLitePath == "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return out, fmt.Errorf("create data dir: %w", err)
		}
		out.SQLitePath = filepath.Join(dir, "tasknest.db")
	}
	return out, nil
}

func createDefaults(cfg config.Defaults) (todo.CreateInput, error) {
	var defaults todo.CreateInput
	var err error
	if cfg.Priority != "" {
		if defaults.Priority, err = todo.ParsePriority(cfg.Priority); err != nil {
			return defaults, fmt.Errorf("config defaults: %w", err)
		}
	}
	if cfg.Category != "" {
		if defaults.Category, err = todo.ParseCategory(cfg.Category); err != nil {
			return defaults, fmt.Errorf("config defaults: %w", err)
		}
	}
	return defaults, nil
}

func clockFromEnv() (func() time.Time, error) {
	value := os.Getenv(nowEnvVar)
	if value == "" {
		return time.Now, nil
	}
	pinned, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", nowEnvVar, err)
	}
	return func() time.Time { return pinned }, nil
}

// storageKey returns the configured document key.
func (s *session) storageKey() string {
	if s.cfg.Storage.Key != "" {
		return s.cfg.Storage.Key
	}
	return storage.DefaultKey
}
