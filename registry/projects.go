package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/amonks/tasknest/todo"
)

// CreateProject adds a project named name. Names are trimmed and must be
// unique (case-sensitive).
func (r *Registry) CreateProject(ctx context.Context, name string, category todo.Category) (*todo.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, todo.ErrEmptyProjectName
	}
	if err := r.checkNameFree(name, ""); err != nil {
		return nil, err
	}
	p, err := todo.NewProject(name, category, r.now())
	if err != nil {
		return nil, err
	}
	r.state.Projects = append(r.state.Projects, p)
	return p, r.Save(ctx)
}

// DeleteProject removes a project and its todos. The default project cannot
// be deleted. Deleting the selected project selects the default one.
func (r *Registry) DeleteProject(ctx context.Context, id string) error {
	if id == todo.DefaultProjectID {
		return todo.ErrDefaultProjectProtected
	}
	idx := slices.IndexFunc(r.state.Projects, func(p *todo.Project) bool { return p.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", todo.ErrProjectNotFound, id)
	}
	r.state.Projects = slices.Delete(r.state.Projects, idx, idx+1)
	if r.state.SelectedProjectID == id {
		r.state.SelectedProjectID = todo.DefaultProjectID
	}
	return r.Save(ctx)
}

// SelectProject selects a project, or every project with todo.AllProjectsID.
// An unknown ID leaves the selection unchanged.
func (r *Registry) SelectProject(ctx context.Context, id string) error {
	if id != todo.AllProjectsID {
		if _, ok := r.Project(id); !ok {
			return fmt.Errorf("%w: %s", todo.ErrProjectNotFound, id)
		}
	}
	r.state.SelectedProjectID = id
	return r.Save(ctx)
}

// RenameProject changes a project's name, keeping names unique.
func (r *Registry) RenameProject(ctx context.Context, id, name string) (*todo.Project, error) {
	p, err := r.requireProject(id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, todo.ErrEmptyProjectName
	}
	if name == p.Name {
		return p, nil
	}
	if err := r.checkNameFree(name, id); err != nil {
		return nil, err
	}
	p.Name = name
	p.Touch(r.now())
	return p, r.Save(ctx)
}

// Project returns the project with the given ID.
func (r *Registry) Project(id string) (*todo.Project, bool) {
	return r.state.Project(id)
}

// Projects returns every project, default first.
func (r *Registry) Projects() []*todo.Project {
	return slices.Clone(r.state.Projects)
}

// SelectedProjectID returns the selected project ID or todo.AllProjectsID.
func (r *Registry) SelectedProjectID() string {
	return r.state.SelectedProjectID
}

// GetProjectProgress returns the completion counts of a project, or the
// zero Progress when it does not exist.
func (r *Registry) GetProjectProgress(id string) todo.Progress {
	p, ok := r.Project(id)
	if !ok {
		return todo.Progress{}
	}
	return p.Progress()
}

func (r *Registry) requireProject(id string) (*todo.Project, error) {
	p, ok := r.Project(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", todo.ErrProjectNotFound, id)
	}
	return p, nil
}

func (r *Registry) checkNameFree(name, exceptID string) error {
	for _, p := range r.state.Projects {
		if p.Name == name && p.ID != exceptID {
			return fmt.Errorf("%w: project %q", todo.ErrDuplicateName, name)
		}
	}
	return nil
}
