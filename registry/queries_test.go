package registry

import (
	"context"
	"testing"
	"time"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/todo"
)

func titlesOf(items []todo.Todo) []string {
	out := make([]string, len(items))
	for i, t := range items {
		out[i] = t.Title
	}
	return out
}

func equalTitles(t *testing.T, got []todo.Todo, want ...string) {
	t.Helper()
	titles := titlesOf(got)
	if len(titles) != len(want) {
		t.Fatalf("expected %q, got %q", want, titles)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("expected %q, got %q", want, titles)
		}
	}
}

func TestVisibleTodos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	work := mustCreateProject(t, env.reg, "Work")
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "home"})
	mustAddTodo(t, env.reg, work.ID, todo.CreateInput{Title: "office"})

	equalTitles(t, env.reg.VisibleTodos(), "home")
	if err := env.reg.SelectProject(ctx, work.ID); err != nil {
		t.Fatal(err)
	}
	equalTitles(t, env.reg.VisibleTodos(), "office")
	if err := env.reg.SelectProject(ctx, todo.AllProjectsID); err != nil {
		t.Fatal(err)
	}
	equalTitles(t, env.reg.VisibleTodos(), "home", "office")
}

func TestSearchFilterSort(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "Buy milk", Priority: todo.PriorityLow})
	env.clock.Advance(time.Second)
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "File taxes", Priority: todo.PriorityHigh, Notes: "ask about milk money"})
	env.clock.Advance(time.Second)
	done := mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "Call mom"})
	if _, err := env.reg.ToggleTodo(ctx, todo.DefaultProjectID, done.ID); err != nil {
		t.Fatal(err)
	}

	equalTitles(t, env.reg.SearchTodos("MILK"), "Buy milk", "File taxes")
	equalTitles(t, env.reg.SearchTodos("milk money"), "File taxes")
	equalTitles(t, env.reg.FilterTodos(todo.FilterCompleted), "Call mom")
	equalTitles(t, env.reg.FilterTodos(todo.FilterActive), "Buy milk", "File taxes")
	equalTitles(t, env.reg.SortTodos(env.reg.AllTodos(), todo.SortPriority), "File taxes", "Call mom", "Buy milk")
}

func TestDepTree(t *testing.T) {
	env := newTestEnv(t)
	a := mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "A"})
	b := mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "B", Dependencies: []string{a.ID}})

	tree, err := env.reg.DepTree(b.ID)
	if err != nil {
		t.Fatalf("dep tree: %v", err)
	}
	if tree.Todo.ID != b.ID || len(tree.Children) != 1 || tree.Children[0].Todo.ID != a.ID {
		t.Errorf("unexpected tree: %+v", tree)
	}
	pending, err := env.reg.PendingDependencies(b.ID)
	if err != nil {
		t.Fatal(err)
	}
	equalTitles(t, pending, "A")
}

func TestEisenhowerMatrix(t *testing.T) {
	env := newTestEnv(t)
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "fire", Priority: todo.PriorityHigh, DueDate: mustDate(t, "2024-03-14")})
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "plan", Priority: todo.PriorityHigh})
	mustAddTodo(t, env.reg, todo.DefaultProjectID, todo.CreateInput{Title: "idle"})

	m := env.reg.EisenhowerMatrix()
	equalTitles(t, m[analytics.QuadrantDo], "fire")
	equalTitles(t, m[analytics.QuadrantSchedule], "plan")
	equalTitles(t, m[analytics.QuadrantDelegate])
	equalTitles(t, m[analytics.QuadrantEliminate], "idle")

	dist := env.reg.CategoryDistribution()
	if len(dist) == 0 || dist[0].Category != todo.CategoryGeneral || dist[0].Count != 3 {
		t.Errorf("unexpected distribution: %+v", dist)
	}
}
