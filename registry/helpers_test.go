package registry

import (
	"context"
	"testing"
	"time"

	"github.com/amonks/tasknest/internal/eventlog"
	"github.com/amonks/tasknest/internal/kv"
	"github.com/amonks/tasknest/internal/notify"
	"github.com/amonks/tasknest/todo"
)

var testStart = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

type captureLogger struct {
	saved        []eventlog.SaveLog
	saveFailed   []eventlog.SaveFailedLog
	fallbacks    []eventlog.FallbackLog
	notification []eventlog.NotificationLog
	recurred     []eventlog.RecurrenceLog
}

func (logger *captureLogger) Saved(entry eventlog.SaveLog) {
	logger.saved = append(logger.saved, entry)
}

func (logger *captureLogger) SaveFailed(entry eventlog.SaveFailedLog) {
	logger.saveFailed = append(logger.saveFailed, entry)
}

func (logger *captureLogger) LoadFallback(entry eventlog.FallbackLog) {
	logger.fallbacks = append(logger.fallbacks, entry)
}

func (logger *captureLogger) Notification(entry eventlog.NotificationLog) {
	logger.notification = append(logger.notification, entry)
}

func (logger *captureLogger) Recurred(entry eventlog.RecurrenceLog) {
	logger.recurred = append(logger.recurred, entry)
}

// clock is a manually advanced time source.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	reg      *Registry
	store    kv.Store
	clock    *clock
	logger   *captureLogger
	notifier *notify.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, kv.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, store kv.Store) *testEnv {
	t.Helper()
	env := &testEnv{
		store:    store,
		clock:    &clock{now: testStart},
		logger:   &captureLogger{},
		notifier: &notify.Recorder{},
	}
	env.reg = New(store, Options{
		Now:          env.clock.Now,
		Logger:       env.logger,
		Notifier:     env.notifier,
		NotifyPolicy: notify.DefaultPolicy(),
	})
	if _, err := env.reg.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return env
}

// reload builds a second registry over the same store.
func (env *testEnv) reload(t *testing.T) *Registry {
	t.Helper()
	reg := New(env.store, Options{Now: env.clock.Now})
	result, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if result.Fallback {
		t.Fatalf("expected stored state on reload, got fallback %q", result.Reason)
	}
	return reg
}

func mustCreateProject(t *testing.T, reg *Registry, name string) *todo.Project {
	t.Helper()
	p, err := reg.CreateProject(context.Background(), name, todo.CategoryGeneral)
	if err != nil {
		t.Fatalf("create project %q: %v", name, err)
	}
	return p
}

func mustAddTodo(t *testing.T, reg *Registry, projectID string, input todo.CreateInput) *todo.Todo {
	t.Helper()
	created, err := reg.AddTodo(context.Background(), projectID, input)
	if err != nil {
		t.Fatalf("add todo %q: %v", input.Title, err)
	}
	return created
}

func mustDate(t *testing.T, value string) todo.Date {
	t.Helper()
	d, err := todo.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

func ptr[T any](v T) *T {
	return &v
}
