package todo

import (
	"math"
	"strings"
	"time"
)

// Project is a named, ordered collection of todos.
type Project struct {
	// ID is the unique identifier. DefaultProjectID is reserved.
	ID string

	// Name is unique across projects (case-sensitive, trimmed).
	Name string

	// Category classifies the project.
	Category Category

	// Todos are owned by the project, in insertion order.
	Todos []Todo

	// CreatedAt is when the project was created.
	CreatedAt time.Time

	// UpdatedAt is refreshed whenever the todo collection changes.
	UpdatedAt time.Time
}

// Progress counts completed todos.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Percent returns the rounded completion percentage, 0 when Total is 0.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
}

// NewProject creates a project with a fresh ID. Name uniqueness is the
// registry's concern.
func NewProject(name string, category Category, now time.Time) (*Project, error) {
	return newProject(GenerateID(), name, category, now)
}

// NewDefaultProject creates the reserved default project.
func NewDefaultProject(now time.Time) *Project {
	p, _ := newProject(DefaultProjectID, DefaultProjectName, CategoryGeneral, now)
	return p
}

func newProject(id, name string, category Category, now time.Time) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}
	if category == "" {
		category = CategoryGeneral
	}
	if err := ValidateCategory(category); err != nil {
		return nil, err
	}
	return &Project{
		ID:        id,
		Name:      name,
		Category:  category,
		Todos:     []Todo{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsDefault reports whether p is the reserved default project.
func (p *Project) IsDefault() bool {
	return p.ID == DefaultProjectID
}

// AddTodo appends t and returns a pointer to the stored copy. The pointer
// is only valid until the next AddTodo or RemoveTodo.
func (p *Project) AddTodo(t Todo, now time.Time) *Todo {
	p.Todos = append(p.Todos, t)
	p.UpdatedAt = now
	return &p.Todos[len(p.Todos)-1]
}

// RemoveTodo removes the todo with the given ID and reports whether it was
// present. Removing an absent ID is not an error.
func (p *Project) RemoveTodo(id string, now time.Time) bool {
	removed := false
	kept := make([]Todo, 0, len(p.Todos))
	for _, t := range p.Todos {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	p.Todos = kept
	p.UpdatedAt = now
	return removed
}

// TodoByID returns the todo with the given ID.
func (p *Project) TodoByID(id string) (*Todo, bool) {
	for i := range p.Todos {
		if p.Todos[i].ID == id {
			return &p.Todos[i], true
		}
	}
	return nil, false
}

// Touch refreshes UpdatedAt after an in-place mutation of an owned todo.
func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now
}

// Progress counts completed todos.
func (p *Project) Progress() Progress {
	progress := Progress{Total: len(p.Todos)}
	for _, t := range p.Todos {
		if t.Completed {
			progress.Completed++
		}
	}
	return progress
}

// CalculateProgress returns the percentage of completed todos, 0 for an
// empty project.
func (p *Project) CalculateProgress() int {
	return p.Progress().Percent()
}

// FilterByCategory returns copies of the todos in category c.
func (p *Project) FilterByCategory(c Category) []Todo {
	var out []Todo
	for i := range p.Todos {
		if p.Todos[i].Category == c {
			out = append(out, p.Todos[i].Clone())
		}
	}
	return out
}

// FilterByStatus returns copies of the todos whose completion state matches.
func (p *Project) FilterByStatus(completed bool) []Todo {
	var out []Todo
	for i := range p.Todos {
		if p.Todos[i].Completed == completed {
			out = append(out, p.Todos[i].Clone())
		}
	}
	return out
}

// Clone returns a deep copy of p.
func (p *Project) Clone() *Project {
	c := *p
	c.Todos = make([]Todo, len(p.Todos))
	for i := range p.Todos {
		c.Todos[i] = p.Todos[i].Clone()
	}
	return &c
}
