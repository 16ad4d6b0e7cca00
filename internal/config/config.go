// Package config handles loading tasknest.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasknest/internal/paths"
	"github.com/joho/godotenv"
)

// FileName is the name of the project config file.
const FileName = "tasknest.toml"

// Environment variables that override both config files.
const (
	EnvStorage          = "TASKNEST_STORAGE"
	EnvDataDir          = "TASKNEST_DATA_DIR"
	EnvRedisAddr        = "TASKNEST_REDIS_ADDR"
	EnvFirestoreProject = "TASKNEST_FIRESTORE_PROJECT"
)

// Config represents the tasknest.toml configuration file.
type Config struct {
	Storage       Storage       `toml:"storage"`
	Defaults      Defaults      `toml:"defaults"`
	Notifications Notifications `toml:"notifications"`
	Analytics     Analytics     `toml:"analytics"`
}

// Storage selects where the registry document lives.
type Storage struct {
	// Backend is one of file, memory, sqlite, redis, firestore.
	// Defaults to file.
	Backend string `toml:"backend"`

	// Namespace scopes keys within the backend.
	Namespace string `toml:"namespace"`

	// Key is the key of the registry document.
	Key string `toml:"key"`

	// Dir is the file backend's directory.
	Dir string `toml:"dir"`

	SQLitePath          string `toml:"sqlite-path"`
	RedisAddr           string `toml:"redis-addr"`
	FirestoreProject    string `toml:"firestore-project"`
	FirestoreCollection string `toml:"firestore-collection"`
}

// Defaults are applied to todos created without an explicit value.
type Defaults struct {
	Priority string `toml:"priority"`
	Category string `toml:"category"`
}

// Notifications toggles reminders. Both default to on.
type Notifications struct {
	Urgent   bool `toml:"urgent"`
	DueToday bool `toml:"due-today"`
}

// Analytics configures the analytics views.
type Analytics struct {
	// MatrixIncludeCompleted keeps completed todos in the Eisenhower matrix.
	MatrixIncludeCompleted bool `toml:"matrix-include-completed"`
}

// Load reads the global config file and dir/tasknest.toml, merges them key
// by key with the project file winning, and applies environment overrides.
// Variables from dir/.env are used when the process environment does not
// set them. Missing files are not an error.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)

	dotenv, err := readDotenv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, err
	}
	applyEnv(merged, func(key string) (string, bool) {
		if value := os.Getenv(key); value != "" {
			return value, true
		}
		value, ok := dotenv[key]
		return value, ok
	})
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	str := func(section, key, projectValue, globalValue string) string {
		return mergeString(projectMeta.IsDefined(section, key), projectValue, globalValue)
	}
	flag := func(section, key string, projectValue, globalValue, fallback bool) bool {
		switch {
		case projectMeta.IsDefined(section, key):
			return projectValue
		case globalMeta.IsDefined(section, key):
			return globalValue
		default:
			return fallback
		}
	}

	p, g := projectCfg, globalCfg
	merged := Config{}
	merged.Storage.Backend = str("storage", "backend", p.Storage.Backend, g.Storage.Backend)
	merged.Storage.Namespace = str("storage", "namespace", p.Storage.Namespace, g.Storage.Namespace)
	merged.Storage.Key = str("storage", "key", p.Storage.Key, g.Storage.Key)
	merged.Storage.Dir = str("storage", "dir", p.Storage.Dir, g.Storage.Dir)
	merged.Storage.SQLitePath = str("storage", "sqlite-path", p.Storage.SQLitePath, g.Storage.SQLitePath)
	merged.Storage.RedisAddr = str("storage", "redis-addr", p.Storage.RedisAddr, g.Storage.RedisAddr)
	merged.Storage.FirestoreProject = str("storage", "firestore-project", p.Storage.FirestoreProject, g.Storage.FirestoreProject)
	merged.Storage.FirestoreCollection = str("storage", "firestore-collection", p.Storage.FirestoreCollection, g.Storage.FirestoreCollection)
	merged.Defaults.Priority = str("defaults", "priority", p.Defaults.Priority, g.Defaults.Priority)
	merged.Defaults.Category = str("defaults", "category", p.Defaults.Category, g.Defaults.Category)
	merged.Notifications.Urgent = flag("notifications", "urgent", p.Notifications.Urgent, g.Notifications.Urgent, true)
	merged.Notifications.DueToday = flag("notifications", "due-today", p.Notifications.DueToday, g.Notifications.DueToday, true)
	merged.Analytics.MatrixIncludeCompleted = flag("analytics", "matrix-include-completed", p.Analytics.MatrixIncludeCompleted, g.Analytics.MatrixIncludeCompleted, false)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func(target *string, key string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	set(&cfg.Storage.Backend, EnvStorage)
	set(&cfg.Storage.Dir, EnvDataDir)
	set(&cfg.Storage.RedisAddr, EnvRedisAddr)
	set(&cfg.Storage.FirestoreProject, EnvFirestoreProject)
}
