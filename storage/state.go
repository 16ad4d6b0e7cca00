// Package storage converts the tasknest object graph to and from its
// persisted JSON document and moves that document through a kv.Store.
//
// Construction of new entities is validated by package todo; this package
// restores trusted data and applies one normalization step instead.
package storage

import (
	"cmp"
	"slices"
	"time"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/todo"
)

// DefaultKey is the key the document is stored under.
const DefaultKey = "todoAppData"

// State is the full persisted state of a registry.
type State struct {
	// Projects in display order. The default project is always present.
	Projects []*todo.Project

	// SelectedProjectID is an existing project ID or todo.AllProjectsID.
	SelectedProjectID string

	// Templates in creation order. Each template's TemplateID is its own ID.
	Templates []*todo.Todo

	// Analytics is the last computed snapshot.
	Analytics analytics.Analytics
}

// FreshState returns the state of a new installation: one default project,
// selected.
func FreshState(now time.Time) *State {
	return &State{
		Projects:          []*todo.Project{todo.NewDefaultProject(now)},
		SelectedProjectID: todo.DefaultProjectID,
		Templates:         []*todo.Todo{},
	}
}

// Project returns the project with the given ID.
func (s *State) Project(id string) (*todo.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ensureInvariants inserts the default project when missing and coerces an
// unknown selection to the default project.
func (s *State) ensureInvariants(now time.Time) {
	if _, ok := s.Project(todo.DefaultProjectID); !ok {
		s.Projects = append([]*todo.Project{todo.NewDefaultProject(now)}, s.Projects...)
	}
	if s.SelectedProjectID == todo.AllProjectsID {
		return
	}
	if _, ok := s.Project(s.SelectedProjectID); !ok {
		s.SelectedProjectID = todo.DefaultProjectID
	}
}

// sortProjects orders projects with the default first, then by creation
// time, then by ID.
func sortProjects(projects []*todo.Project) {
	slices.SortStableFunc(projects, func(a, b *todo.Project) int {
		if a.IsDefault() != b.IsDefault() {
			if a.IsDefault() {
				return -1
			}
			return 1
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
