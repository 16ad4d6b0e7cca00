package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/amonks/tasknest/internal/ids"
	"github.com/amonks/tasknest/todo"
)

// ResolveProject finds a project by exact ID, exact name, or unique ID
// prefix, in that order.
func (r *Registry) ResolveProject(ref string) (*todo.Project, error) {
	if p, ok := r.Project(ref); ok {
		return p, nil
	}
	for _, p := range r.state.Projects {
		if p.Name == ref {
			return p, nil
		}
	}
	projectIDs := make([]string, 0, len(r.state.Projects))
	for _, p := range r.state.Projects {
		projectIDs = append(projectIDs, p.ID)
	}
	id, err := resolvePrefix(projectIDs, ref, todo.ErrProjectNotFound)
	if err != nil {
		return nil, err
	}
	p, _ := r.Project(id)
	return p, nil
}

// ResolveTodo finds a todo by exact ID or unique ID prefix across all
// projects.
func (r *Registry) ResolveTodo(ref string) (*todo.Todo, *todo.Project, error) {
	var todoIDs []string
	for _, p := range r.state.Projects {
		for _, t := range p.Todos {
			todoIDs = append(todoIDs, t.ID)
		}
	}
	id, err := resolvePrefix(todoIDs, ref, todo.ErrTodoNotFound)
	if err != nil {
		return nil, nil, err
	}
	t, p, _ := r.FindTodo(id)
	return t, p, nil
}

// ResolveTemplate finds a template by exact ID or unique ID prefix. The
// "tpl-" prefix may be omitted.
func (r *Registry) ResolveTemplate(ref string) (*todo.Todo, error) {
	var templateIDs []string
	for _, tpl := range r.state.Templates {
		templateIDs = append(templateIDs, tpl.ID)
	}
	id, err := resolvePrefix(templateIDs, ref, todo.ErrTemplateNotFound)
	if errors.Is(err, todo.ErrTemplateNotFound) {
		id, err = resolvePrefix(templateIDs, TemplateIDPrefix+ref, todo.ErrTemplateNotFound)
	}
	if err != nil {
		return nil, err
	}
	tpl, _ := r.Template(id)
	return tpl, nil
}

// TodoPrefixLengths returns the shortest unique prefix length of every todo ID.
func (r *Registry) TodoPrefixLengths() map[string]int {
	var todoIDs []string
	for _, p := range r.state.Projects {
		for _, t := range p.Todos {
			todoIDs = append(todoIDs, t.ID)
		}
	}
	return ids.UniquePrefixLengths(todoIDs)
}

// resolvePrefix maps ref to one of values. The index matches
// case-insensitively; the original spelling is returned.
func resolvePrefix(values []string, ref string, notFound error) (string, error) {
	if slices.Contains(values, ref) {
		return ref, nil
	}
	id, err := ids.NewIndex(values).Resolve(ref)
	switch {
	case errors.Is(err, ids.ErrAmbiguous):
		return "", fmt.Errorf("%w: %s", todo.ErrAmbiguousIDPrefix, ref)
	case err != nil:
		return "", fmt.Errorf("%w: %s", notFound, ref)
	}
	for _, value := range values {
		if strings.EqualFold(value, id) {
			return value, nil
		}
	}
	return id, nil
}
