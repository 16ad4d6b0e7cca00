package registry

import (
	"context"
	"fmt"

	"github.com/amonks/tasknest/todo"
)

// AddTodo creates a todo in a project. New dependency IDs must exist.
func (r *Registry) AddTodo(ctx context.Context, projectID string, input todo.CreateInput) (*todo.Todo, error) {
	p, err := r.requireProject(projectID)
	if err != nil {
		return nil, err
	}
	now := r.now()
	created, err := todo.New(input, now)
	if err != nil {
		return nil, err
	}
	if err := todo.CheckDependencies(created.ID, created.Dependencies, r.lookup); err != nil {
		return nil, err
	}
	r.remind(p.AddTodo(*created, now))
	return detach(created), r.Save(ctx)
}

// UpdateTodo applies a partial update. Nothing changes when validation fails.
func (r *Registry) UpdateTodo(ctx context.Context, projectID, todoID string, input todo.UpdateInput) (*todo.Todo, error) {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	if input.Dependencies != nil {
		deps := todo.NormalizeIDs(*input.Dependencies)
		if err := todo.CheckDependencyChange(t.ID, t.Dependencies, deps, r.lookup); err != nil {
			return nil, err
		}
	}
	now := r.now()
	wasCompleted := t.Completed
	if err := t.Update(input, now); err != nil {
		return nil, err
	}
	p.Touch(now)
	id := t.ID
	if !wasCompleted && t.Completed {
		r.recur(p, t, now)
	}
	t, _ = p.TodoByID(id)
	r.remind(t)
	return detach(t), r.Save(ctx)
}

// DeleteTodo removes a todo. Dependencies on it are left dangling.
func (r *Registry) DeleteTodo(ctx context.Context, projectID, todoID string) error {
	p, _, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return err
	}
	p.RemoveTodo(todoID, r.now())
	return r.Save(ctx)
}

// ToggleTodo flips a todo's completion. Completing stops a running timer
// and, for recurring todos, adds the next occurrence to the same project.
func (r *Registry) ToggleTodo(ctx context.Context, projectID, todoID string) (*todo.Todo, error) {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	now := r.now()
	t.ToggleComplete(now)
	p.Touch(now)
	// recur may grow p.Todos, so keep the ID rather than the pointer.
	id := t.ID
	if t.Completed {
		r.recur(p, t, now)
	} else {
		r.remind(t)
	}
	t, _ = p.TodoByID(id)
	return detach(t), r.Save(ctx)
}

// StartTimer starts a todo's timer. Completed or already-running todos are
// left unchanged.
func (r *Registry) StartTimer(ctx context.Context, projectID, todoID string) (*todo.Todo, error) {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	now := r.now()
	if !t.StartTiming(now) {
		return detach(t), nil
	}
	p.Touch(now)
	return detach(t), r.Save(ctx)
}

// StopTimer stops a todo's timer and accumulates the elapsed time.
func (r *Registry) StopTimer(ctx context.Context, projectID, todoID string) (*todo.Todo, error) {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	if !t.IsTiming() {
		return detach(t), nil
	}
	now := r.now()
	t.StopTiming(now)
	p.Touch(now)
	return detach(t), r.Save(ctx)
}

// AddSubtask appends a subtask to a todo.
func (r *Registry) AddSubtask(ctx context.Context, projectID, todoID, title string) (todo.Subtask, error) {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return todo.Subtask{}, err
	}
	now := r.now()
	subtask, err := t.AddSubtask(title, now)
	if err != nil {
		return todo.Subtask{}, err
	}
	p.Touch(now)
	return subtask, r.Save(ctx)
}

// ToggleSubtask flips a subtask's completion.
func (r *Registry) ToggleSubtask(ctx context.Context, projectID, todoID, subtaskID string) (todo.Subtask, error) {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return todo.Subtask{}, err
	}
	now := r.now()
	if err := t.ToggleSubtask(subtaskID, now); err != nil {
		return todo.Subtask{}, err
	}
	p.Touch(now)
	subtask, _ := t.Subtask(subtaskID)
	return subtask, r.Save(ctx)
}

// RemoveSubtask deletes a subtask.
func (r *Registry) RemoveSubtask(ctx context.Context, projectID, todoID, subtaskID string) error {
	p, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return err
	}
	now := r.now()
	if err := t.RemoveSubtask(subtaskID, now); err != nil {
		return err
	}
	p.Touch(now)
	return r.Save(ctx)
}

// MoveTodo moves a todo between projects, keeping its ID.
func (r *Registry) MoveTodo(ctx context.Context, fromProjectID, todoID, toProjectID string) (*todo.Todo, error) {
	from, t, err := r.requireTodo(fromProjectID, todoID)
	if err != nil {
		return nil, err
	}
	to, err := r.requireProject(toProjectID)
	if err != nil {
		return nil, err
	}
	if from.ID == to.ID {
		return detach(t), nil
	}
	now := r.now()
	moved := t.Clone()
	moved.UpdatedAt = now
	from.RemoveTodo(todoID, now)
	to.AddTodo(moved, now)
	return detach(&moved), r.Save(ctx)
}

// FindTodo locates a todo in any project. The returned todo is a copy;
// change it through the registry's mutators.
func (r *Registry) FindTodo(todoID string) (*todo.Todo, *todo.Project, bool) {
	t, p, ok := r.findTodo(todoID)
	if !ok {
		return nil, nil, false
	}
	return detach(t), p, true
}

// findTodo returns the stored todo. The pointer is only valid until the
// owning project's todos change.
func (r *Registry) findTodo(todoID string) (*todo.Todo, *todo.Project, bool) {
	for _, p := range r.state.Projects {
		if t, ok := p.TodoByID(todoID); ok {
			return t, p, true
		}
	}
	return nil, nil, false
}

func (r *Registry) requireTodo(projectID, todoID string) (*todo.Project, *todo.Todo, error) {
	p, err := r.requireProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	t, ok := p.TodoByID(todoID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, todoID)
	}
	return p, t, nil
}

// lookup adapts findTodo to todo.Lookup.
func (r *Registry) lookup(id string) (*todo.Todo, bool) {
	t, _, ok := r.findTodo(id)
	return t, ok
}

// detach copies a stored todo so callers never hold pointers into a
// project's todo slice.
func detach(t *todo.Todo) *todo.Todo {
	c := t.Clone()
	return &c
}
