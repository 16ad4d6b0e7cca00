package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "localhost:6379"

// runStoreContract checks the Get/Set/Delete behaviour every backend shares.
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "todoAppData")
	require.NoError(t, err)
	assert.False(t, ok, "expected missing key before first write")

	require.NoError(t, store.Set(ctx, "todoAppData", `{"projects":{}}`))
	value, ok, err := store.Get(ctx, "todoAppData")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"projects":{}}`, value)

	require.NoError(t, store.Set(ctx, "todoAppData", "second"))
	value, _, err = store.Get(ctx, "todoAppData")
	require.NoError(t, err)
	assert.Equal(t, "second", value)

	require.NoError(t, store.Set(ctx, "other", "kept"))
	require.NoError(t, store.Delete(ctx, "todoAppData"))
	_, ok, err = store.Get(ctx, "todoAppData")
	require.NoError(t, err)
	assert.False(t, ok, "expected key gone after delete")

	value, ok, err = store.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "kept", value)

	require.NoError(t, store.Delete(ctx, "never-written"), "deleting a missing key")

	err = store.Set(ctx, "  ", "x")
	assert.True(t, errors.Is(err, ErrEmptyKey), "expected empty key error, got %v", err)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(t.TempDir(), "tasknest")
	runStoreContract(t, store)
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "task/nest")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "todoAppData", "{}"))

	data, err := os.ReadFile(filepath.Join(dir, "task-nest", "todoAppData.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temp files should be renamed away")
	}
}

func TestFileStore_NamespacesAreIsolated(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	a := NewFileStore(dir, "a")
	b := NewFileStore(dir, "b")

	require.NoError(t, a.Set(ctx, "k", "from a"))
	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFileStore(t.TempDir(), "x").Set(ctx, "k", "v")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(":memory:", "tasknest")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	runStoreContract(t, store)
}

func TestSQLiteStore_NamespacesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	a, err := OpenSQLite(path, "a")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	b, err := OpenSQLite(path, "b")
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })

	require.NoError(t, a.Set(ctx, "k", "from a"))
	require.NoError(t, b.Set(ctx, "k", "from b"))

	value, _, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "from a", value)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store, err := OpenRedis(ctx, testRedisAddr, "tasknest-test-"+t.Name())
	if err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}
	t.Cleanup(func() {
		store.Delete(ctx, "other")
		store.Close()
	})

	runStoreContract(t, store)
}

func TestFirestoreStore(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	store, err := OpenFirestore(ctx, "tasknest-test", "", "tasknest-test")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Delete(ctx, "other")
		store.Close()
	})

	runStoreContract(t, store)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, Config{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(ctx, Config{Dir: t.TempDir(), Namespace: "tasknest"})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store, "file is the default backend")

	_, err = Open(ctx, Config{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestQualify(t *testing.T) {
	assert.Equal(t, "tasknest:todoAppData", Qualify("tasknest", "todoAppData"))
	assert.Equal(t, "todoAppData", Qualify("", "todoAppData"))
}
