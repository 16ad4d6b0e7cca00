package kv

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

// FileStore keeps one file per key under dir/namespace. Writes are atomic
// (temp file plus rename) and serialized across processes with flock.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir. Keys live in the
// namespace subdirectory.
func NewFileStore(dir, namespace string) *FileStore {
	if namespace != "" {
		dir = filepath.Join(dir, sanitizeName(namespace))
	}
	return &FileStore{dir: dir}
}

// Dir returns the directory holding the store's files.
func (s *FileStore) Dir() string {
	return s.dir
}

// valuePath returns the path to the file holding key.
func (s *FileStore) valuePath(key string) string {
	return filepath.Join(s.dir, sanitizeName(key)+".json")
}

// lockPath returns the path to the lock file.
func (s *FileStore) lockPath() string {
	return filepath.Join(s.dir, "store.lock")
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.valuePath(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read value file: %w", err)
	}
	return string(data), true, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.withLock(ctx, func() error {
		return s.write(s.valuePath(key), []byte(value))
	})
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	return s.withLock(ctx, func() error {
		err := os.Remove(s.valuePath(key))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove value file: %w", err)
		}
		return nil
	})
}

// Close implements Store.
func (s *FileStore) Close() error {
	return nil
}

// withLock runs fn while holding the store's exclusive lock.
func (s *FileStore) withLock(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Ensure directory exists
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	lockFile, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

// write replaces path with data via a temp file, skipping identical content.
func (s *FileStore) write(path string, data []byte) error {
	if existing, err := os.ReadFile(path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("read value file: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp value file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp value file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename value file: %w", err)
	}
	return nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// sanitizeName maps a key or namespace to a safe file name.
func sanitizeName(name string) string {
	name = unsafeNameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "_"
	}
	return name
}
