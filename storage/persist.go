package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/amonks/tasknest/internal/kv"
	"github.com/amonks/tasknest/todo"
)

// Load reads and deserializes the document stored under key. A missing or
// malformed document returns an error matching ErrEmptyState; a failing
// store returns an error matching todo.ErrPersistence.
func Load(ctx context.Context, store kv.Store, key string, now time.Time) (*State, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", todo.ErrPersistence, key, err)
	}
	if !ok {
		return nil, ErrEmptyState
	}
	return Deserialize([]byte(raw), now)
}

// Save serializes state and writes it under key, returning the size of
// the written document. Errors match todo.ErrPersistence.
func Save(ctx context.Context, store kv.Store, key string, state *State) (int, error) {
	data, err := Serialize(state)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", todo.ErrPersistence, err)
	}
	if err := store.Set(ctx, key, string(data)); err != nil {
		return 0, fmt.Errorf("%w: write %s: %w", todo.ErrPersistence, key, err)
	}
	return len(data), nil
}
