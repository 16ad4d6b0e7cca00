package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/amonks/tasknest/internal/kv"
	"github.com/amonks/tasknest/storage"
	"github.com/amonks/tasknest/todo"
)

var errDisk = errors.New("disk full")

// flakyStore fails writes (and optionally reads) on demand.
type flakyStore struct {
	*kv.MemoryStore
	failSet bool
	failGet bool
}

func (s *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.failGet {
		return "", false, errDisk
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key, value string) error {
	if s.failSet {
		return errDisk
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestLoad_NothingStored(t *testing.T) {
	store := kv.NewMemoryStore()
	reg := New(store, Options{Now: (&clock{now: testStart}).Now})

	result, err := reg.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !result.Fallback || result.Reason != ReasonNothingStored {
		t.Errorf("unexpected result: %+v", result)
	}
	if _, ok, _ := store.Get(context.Background(), storage.DefaultKey); ok {
		t.Error("expected fresh state not to be persisted until a mutation")
	}
}

func TestLoad_CorruptedDocumentFallsBack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "garbage", raw: "{{{ not json"},
		{name: "wrong shape", raw: `{"projects": 42}`},
		{name: "empty", raw: ""},
		{name: "null", raw: "null"},
		{name: "no projects", raw: `{"currentProjectId": "default"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kv.NewMemoryStore()
			if err := store.Set(ctx, storage.DefaultKey, tt.raw); err != nil {
				t.Fatalf("seed: %v", err)
			}
			logger := &captureLogger{}
			reg := New(store, Options{Now: (&clock{now: testStart}).Now, Logger: logger})

			result, err := reg.Load(ctx)
			if err != nil {
				t.Fatalf("expected no error for an unreadable document, got %v", err)
			}
			if !result.Fallback {
				t.Fatal("expected fallback")
			}
			projects := reg.Projects()
			if len(projects) != 1 || projects[0].ID != todo.DefaultProjectID {
				t.Fatalf("expected exactly the default project, got %d projects", len(projects))
			}
			if reg.SelectedProjectID() != todo.DefaultProjectID {
				t.Errorf("expected default selection, got %q", reg.SelectedProjectID())
			}
			if len(logger.fallbacks) != 1 {
				t.Errorf("expected one fallback log, got %d", len(logger.fallbacks))
			}
		})
	}
}

func TestLoad_ReadFailureReturnsError(t *testing.T) {
	store := &flakyStore{MemoryStore: kv.NewMemoryStore(), failGet: true}
	reg := New(store, Options{Now: (&clock{now: testStart}).Now})

	result, err := reg.Load(context.Background())
	if !errors.Is(err, todo.ErrPersistence) || !errors.Is(err, errDisk) {
		t.Fatalf("expected persistence error wrapping cause, got %v", err)
	}
	if !result.Fallback || result.Reason != ReasonReadFailed {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(reg.Projects()) != 1 {
		t.Errorf("expected a usable fresh state, got %d projects", len(reg.Projects()))
	}
}

func TestSave_FailureKeepsInMemoryState(t *testing.T) {
	store := &flakyStore{MemoryStore: kv.NewMemoryStore()}
	env := newTestEnvWithStore(t, store)
	ctx := context.Background()
	store.failSet = true

	created, err := env.reg.AddTodo(ctx, todo.DefaultProjectID, todo.CreateInput{Title: "unsaved"})
	if !errors.Is(err, todo.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if created == nil {
		t.Fatal("expected the created todo alongside the error")
	}
	if _, _, ok := env.reg.FindTodo(created.ID); !ok {
		t.Error("expected the todo to stay in memory")
	}
	if len(env.logger.saveFailed) != 1 {
		t.Errorf("expected one save failure logged, got %d", len(env.logger.saveFailed))
	}

	store.failSet = false
	if err := env.reg.Save(ctx); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	reloaded := env.reload(t)
	if _, _, ok := reloaded.FindTodo(created.ID); !ok {
		t.Error("expected the todo after a successful retry")
	}
}

func TestSave_StoresAnalyticsSnapshot(t *testing.T) {
	env := newTestEnv(t)
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "a", Priority: todo.PriorityHigh})
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "b"})

	state := env.reload(t).State()
	if state.Analytics.TotalTasks != 2 || state.Analytics.ImportantTasks != 1 {
		t.Errorf("unexpected stored analytics: %+v", state.Analytics)
	}
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := mustCreateProject(t, env.reg, "Work")
	created := mustAddTodo(t, env.reg, work.ID, todo.CreateInput{Title: "x"})

	data, err := env.reg.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	other := newTestEnv(t)
	if err := other.reg.Import(ctx, data); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, p, ok := other.reg.FindTodo(created.ID); !ok || p.ID != work.ID {
		t.Errorf("expected imported todo in Work, got %+v", p)
	}
	if _, ok := other.reload(t).Project(work.ID); !ok {
		t.Error("expected import to be persisted")
	}
}

func TestImport_MalformedKeepsState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := mustCreateProject(t, env.reg, "Work")

	for _, raw := range []string{"not json", `{"projects": [], "bogus": true} trailing`, ""} {
		err := env.reg.Import(ctx, []byte(raw))
		if err == nil {
			t.Fatalf("Import(%q): expected error", raw)
		}
		if _, ok := env.reg.Project(work.ID); !ok {
			t.Fatalf("Import(%q): expected state untouched", raw)
		}
	}
}
