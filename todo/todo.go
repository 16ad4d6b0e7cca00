package todo

import (
	"strings"
	"time"

	"github.com/amonks/tasknest/internal/ids"
)

// Todo represents a single task.
type Todo struct {
	// ID is a unique identifier (8-char lowercase base32), immutable after creation.
	ID string

	// Title is the short summary of the todo (max 500 chars).
	Title string

	// Description provides additional context about the todo.
	Description string

	// DueDate is the calendar day the todo is due (zero when unset).
	DueDate Date

	// Priority is the importance level.
	Priority Priority

	// Notes holds free-form text, rendered as markdown by the CLI.
	Notes string

	// Category groups the todo.
	Category Category

	// Tags are display labels, de-duplicated, in insertion order.
	Tags []string

	// Dependencies lists IDs of todos that must be completed first.
	// IDs are weak references and may dangle after deletions.
	Dependencies []string

	// Subtasks is the ordered checklist owned by the todo.
	Subtasks []Subtask

	// Completed reports whether the todo is done.
	Completed bool

	// Recurrence is the repeat interval (RecurrenceNone when not recurring).
	Recurrence Recurrence

	// NextOccurrenceID is the occurrence spawned when this recurring todo was
	// completed. Once set, completing the todo again spawns nothing.
	NextOccurrenceID string

	// TimeSpent is the accumulated tracked time. It only grows through StopTiming.
	TimeSpent time.Duration

	// TimerStartedAt is when the running timer started (nil when stopped).
	TimerStartedAt *time.Time

	// TemplateID marks a template (its own ID) or the template a todo was created from.
	TemplateID string

	// CreatedAt is when the todo was created.
	CreatedAt time.Time

	// UpdatedAt is when the todo was last modified.
	UpdatedAt time.Time
}

// Subtask is a checklist entry of a todo.
type Subtask struct {
	ID        string
	Title     string
	Completed bool
}

// GenerateID creates a new random todo, project, or subtask ID.
func GenerateID() string {
	return ids.New()
}

// New validates input and creates a todo with a fresh ID.
func New(input CreateInput, now time.Time) (*Todo, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	category := input.Category
	if category == "" {
		category = CategoryGeneral
	}

	t := &Todo{
		ID:           GenerateID(),
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		DueDate:      input.DueDate,
		Priority:     priority,
		Notes:        input.Notes,
		Category:     category,
		Tags:         NormalizeTags(input.Tags),
		Dependencies: NormalizeIDs(input.Dependencies),
		Subtasks:     []Subtask{},
		Recurrence:   input.Recurrence,
		TemplateID:   input.TemplateID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, title := range input.Subtasks {
		t.Subtasks = append(t.Subtasks, Subtask{ID: GenerateID(), Title: strings.TrimSpace(title)})
	}

	if err := ValidateTodo(t); err != nil {
		return nil, err
	}
	return t, nil
}

// IsRecurring reports whether the todo repeats.
func (t *Todo) IsRecurring() bool {
	return t.Recurrence != RecurrenceNone
}

// Clone returns a deep copy of t.
func (t *Todo) Clone() Todo {
	c := *t
	c.Tags = append([]string{}, t.Tags...)
	c.Dependencies = append([]string{}, t.Dependencies...)
	c.Subtasks = append([]Subtask{}, t.Subtasks...)
	if t.TimerStartedAt != nil {
		started := *t.TimerStartedAt
		c.TimerStartedAt = &started
	}
	return c
}

// NormalizeTags trims tags, drops empty ones, and removes duplicates while
// keeping the first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// NormalizeIDs drops empty and duplicate IDs while keeping order.
func NormalizeIDs(values []string) []string {
	return NormalizeTags(values)
}
