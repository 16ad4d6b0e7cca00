package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/amonks/tasknest/internal/ids"
	"github.com/amonks/tasknest/todo"
)

// TemplateIDPrefix starts every template ID.
const TemplateIDPrefix = "tpl-"

// CreateTemplate snapshots a todo as a template. The snapshot is incomplete,
// has no tracked time, and carries its own ID as TemplateID.
func (r *Registry) CreateTemplate(ctx context.Context, projectID, todoID string) (*todo.Todo, error) {
	_, t, err := r.requireTodo(projectID, todoID)
	if err != nil {
		return nil, err
	}
	now := r.now()
	tpl := t.Clone()
	tpl.ID = ids.NewPrefixed(TemplateIDPrefix)
	tpl.TemplateID = tpl.ID
	tpl.Completed = false
	tpl.TimeSpent = 0
	tpl.TimerStartedAt = nil
	tpl.NextOccurrenceID = ""
	tpl.Subtasks = freshSubtasks(t.Subtasks)
	tpl.CreatedAt = now
	tpl.UpdatedAt = now
	r.state.Templates = append(r.state.Templates, &tpl)
	return detach(&tpl), r.Save(ctx)
}

// ApplyTemplate creates a todo in a project from a template. The new todo
// has a fresh ID, fresh subtask IDs, and TemplateID set to the template.
func (r *Registry) ApplyTemplate(ctx context.Context, templateID, projectID string) (*todo.Todo, error) {
	tpl, ok := r.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", todo.ErrTemplateNotFound, templateID)
	}
	p, err := r.requireProject(projectID)
	if err != nil {
		return nil, err
	}
	now := r.now()
	created := tpl.Clone()
	created.ID = todo.GenerateID()
	created.TemplateID = tpl.ID
	created.Completed = false
	created.TimeSpent = 0
	created.TimerStartedAt = nil
	created.NextOccurrenceID = ""
	created.Subtasks = freshSubtasks(tpl.Subtasks)
	created.CreatedAt = now
	created.UpdatedAt = now
	r.remind(p.AddTodo(created, now))
	return detach(&created), r.Save(ctx)
}

// Template returns the template with the given ID.
func (r *Registry) Template(id string) (*todo.Todo, bool) {
	for _, tpl := range r.state.Templates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return nil, false
}

// Templates returns every template in creation order.
func (r *Registry) Templates() []*todo.Todo {
	return slices.Clone(r.state.Templates)
}

// DeleteTemplate removes a template. Todos created from it keep their
// TemplateID.
func (r *Registry) DeleteTemplate(ctx context.Context, id string) error {
	idx := slices.IndexFunc(r.state.Templates, func(t *todo.Todo) bool { return t.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", todo.ErrTemplateNotFound, id)
	}
	r.state.Templates = slices.Delete(r.state.Templates, idx, idx+1)
	return r.Save(ctx)
}
