// Package registry owns every project, the selected project, and the
// templates of a tasknest session, and persists them after each change.
//
// A Registry is not safe for concurrent use; each command builds one,
// loads it, applies a mutation, and exits.
package registry

import (
	"context"
	"errors"
	"time"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/internal/eventlog"
	"github.com/amonks/tasknest/internal/kv"
	"github.com/amonks/tasknest/internal/notify"
	"github.com/amonks/tasknest/storage"
)

// Options configures a Registry. Zero values select defaults.
type Options struct {
	// Key is the storage key of the document. Defaults to storage.DefaultKey.
	Key string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Logger receives registry events. Defaults to eventlog.Nop().
	Logger eventlog.Logger

	// Notifier receives reminder messages. Defaults to notify.Discard.
	Notifier notify.Notifier

	// NotifyPolicy selects which reminders fire.
	NotifyPolicy notify.Policy

	// Matrix configures EisenhowerMatrix.
	Matrix analytics.MatrixOptions
}

// LoadResult reports how Load obtained its state.
type LoadResult struct {
	// Fallback is true when the registry started from a fresh state.
	Fallback bool

	// Reason explains the fallback.
	Reason string
}

// Fallback reasons.
const (
	ReasonNothingStored = "nothing stored yet"
	ReasonMalformed     = "stored document is malformed"
	ReasonReadFailed    = "storage read failed"
)

// Registry is the aggregate root of a tasknest session.
type Registry struct {
	store kv.Store
	opts  Options
	state *storage.State
}

// New creates a registry holding a fresh state. Call Load to read the
// stored state.
func New(store kv.Store, opts Options) *Registry {
	if opts.Key == "" {
		opts.Key = storage.DefaultKey
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = eventlog.Nop()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Discard{}
	}
	r := &Registry{store: store, opts: opts}
	r.state = storage.FreshState(r.now())
	return r
}

func (r *Registry) now() time.Time {
	return r.opts.Now()
}

// Load replaces the in-memory state with the stored one. A missing or
// malformed document leaves a fresh state and reports it in the result.
// A failing store also leaves a fresh state; the read error is returned
// alongside the result.
func (r *Registry) Load(ctx context.Context) (LoadResult, error) {
	now := r.now()
	state, err := storage.Load(ctx, r.store, r.opts.Key, now)
	if err == nil {
		r.state = state
		return LoadResult{}, nil
	}

	r.state = storage.FreshState(now)
	result := LoadResult{Fallback: true}
	var returned error
	switch {
	case errors.Is(err, storage.ErrMalformedDocument):
		result.Reason = ReasonMalformed
		r.opts.Logger.LoadFallback(eventlog.FallbackLog{Key: r.opts.Key, Reason: result.Reason, Err: err})
	case errors.Is(err, storage.ErrEmptyState):
		result.Reason = ReasonNothingStored
		r.opts.Logger.LoadFallback(eventlog.FallbackLog{Key: r.opts.Key, Reason: result.Reason})
	default:
		result.Reason = ReasonReadFailed
		returned = err
		r.opts.Logger.LoadFallback(eventlog.FallbackLog{Key: r.opts.Key, Reason: result.Reason, Err: err})
	}
	return result, returned
}

// Save refreshes the analytics snapshot and writes the full state. Errors
// match todo.ErrPersistence; the in-memory state is kept either way.
func (r *Registry) Save(ctx context.Context) error {
	r.state.Analytics = analytics.Compute(r.AllTodos(), r.now())
	size, err := storage.Save(ctx, r.store, r.opts.Key, r.state)
	if err != nil {
		r.opts.Logger.SaveFailed(eventlog.SaveFailedLog{Key: r.opts.Key, Err: err})
		return err
	}
	r.opts.Logger.Saved(eventlog.SaveLog{
		Key:      r.opts.Key,
		Bytes:    size,
		Projects: len(r.state.Projects),
		Todos:    r.state.Analytics.TotalTasks,
	})
	return nil
}

// State returns a deep copy of the current state.
func (r *Registry) State() *storage.State {
	c := &storage.State{
		SelectedProjectID: r.state.SelectedProjectID,
		Analytics:         r.state.Analytics,
	}
	for _, p := range r.state.Projects {
		c.Projects = append(c.Projects, p.Clone())
	}
	for _, tpl := range r.state.Templates {
		clone := tpl.Clone()
		c.Templates = append(c.Templates, &clone)
	}
	return c
}
