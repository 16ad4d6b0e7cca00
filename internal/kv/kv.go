// Package kv provides the string key-value stores tasknest persists to.
//
// Every backend scopes keys by a namespace so several applications (or test
// runs) can share one database, bucket, or directory.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBackend is returned by Open for an unrecognized backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// ErrEmptyKey is returned when a key is empty.
var ErrEmptyKey = errors.New("key cannot be empty")

// Store reads and writes string values by key.
type Store interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the store's resources.
	Close() error
}

// Backend names a Store implementation.
type Backend string

const (
	BackendFile      Backend = "file"
	BackendMemory    Backend = "memory"
	BackendSQLite    Backend = "sqlite"
	BackendRedis     Backend = "redis"
	BackendFirestore Backend = "firestore"
)

// Backends returns every backend name.
func Backends() []Backend {
	return []Backend{BackendFile, BackendMemory, BackendSQLite, BackendRedis, BackendFirestore}
}

// Config selects and configures a backend.
type Config struct {
	Backend   Backend
	Namespace string

	// Dir is the root directory of the file backend.
	Dir string

	// SQLitePath is the database file of the sqlite backend. ":memory:" is allowed.
	SQLitePath string

	// RedisAddr is the host:port of the redis backend.
	RedisAddr string

	// FirestoreProject and FirestoreCollection locate the firestore backend.
	FirestoreProject    string
	FirestoreCollection string
}

// Open returns the Store described by cfg.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Dir, cfg.Namespace), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return OpenSQLite(cfg.SQLitePath, cfg.Namespace)
	case BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.Namespace)
	case BackendFirestore:
		return OpenFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection, cfg.Namespace)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Qualify joins namespace and key as "namespace:key". An empty namespace
// leaves the key unchanged.
func Qualify(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}
