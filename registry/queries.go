package registry

import (
	"fmt"
	"slices"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/todo"
)

// AllTodos returns copies of every todo, in project order.
func (r *Registry) AllTodos() []todo.Todo {
	var out []todo.Todo
	for _, p := range r.state.Projects {
		for i := range p.Todos {
			out = append(out, p.Todos[i].Clone())
		}
	}
	return out
}

// VisibleTodos returns copies of the selected project's todos, or of every
// todo when all projects are selected.
func (r *Registry) VisibleTodos() []todo.Todo {
	if r.state.SelectedProjectID == todo.AllProjectsID {
		return r.AllTodos()
	}
	p, ok := r.Project(r.state.SelectedProjectID)
	if !ok {
		return nil
	}
	return p.Clone().Todos
}

// SearchTodos returns the todos whose title, description, and notes contain
// every whitespace-separated token of query, ignoring case. An empty query
// matches everything.
func (r *Registry) SearchTodos(query string) []todo.Todo {
	var out []todo.Todo
	for _, t := range r.AllTodos() {
		if todo.MatchesQuery(&t, query) {
			out = append(out, t)
		}
	}
	return out
}

// FilterTodos returns the todos of every project matching kind.
func (r *Registry) FilterTodos(kind todo.FilterKind) []todo.Todo {
	return todo.Filter(r.AllTodos(), kind, r.now())
}

// SortTodos returns a stably sorted copy of items.
func (r *Registry) SortTodos(items []todo.Todo, key todo.SortKey) []todo.Todo {
	out := slices.Clone(items)
	todo.SortStable(out, key)
	return out
}

// PendingDependencies returns the incomplete dependencies of a todo that
// still exist.
func (r *Registry) PendingDependencies(todoID string) ([]todo.Todo, error) {
	t, _, ok := r.FindTodo(todoID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, todoID)
	}
	var out []todo.Todo
	for _, dep := range todo.PendingDependencies(t, r.lookup) {
		out = append(out, dep.Clone())
	}
	return out, nil
}

// IsBlocked reports whether a todo has an incomplete dependency that still
// exists.
func (r *Registry) IsBlocked(todoID string) (bool, error) {
	t, _, ok := r.findTodo(todoID)
	if !ok {
		return false, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, todoID)
	}
	return todo.IsBlocked(t, r.lookup), nil
}

// DepTree returns the dependency tree rooted at a todo.
func (r *Registry) DepTree(todoID string) (*todo.DepTreeNode, error) {
	t, _, ok := r.FindTodo(todoID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, todoID)
	}
	return todo.BuildDepTree(t, r.lookup), nil
}

// GetAnalytics recomputes and caches the analytics snapshot.
func (r *Registry) GetAnalytics() analytics.Analytics {
	r.state.Analytics = analytics.Compute(r.AllTodos(), r.now())
	return r.state.Analytics
}

// EisenhowerMatrix classifies every todo by urgency and importance.
func (r *Registry) EisenhowerMatrix() analytics.Matrix {
	return analytics.ComputeMatrix(r.AllTodos(), r.now(), r.opts.Matrix)
}

// CategoryDistribution counts every todo per category.
func (r *Registry) CategoryDistribution() []analytics.CategoryCount {
	return analytics.CategoryDistribution(r.AllTodos())
}
