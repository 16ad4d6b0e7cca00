package storage

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/amonks/tasknest/internal/ids"
	internalstrings "github.com/amonks/tasknest/internal/strings"
	"github.com/amonks/tasknest/todo"
)

// normalizeProject restores a project record, filling defaults.
func normalizeProject(rec ProjectRecord) (*todo.Project, error) {
	p := &todo.Project{
		ID:        rec.ID,
		Name:      rec.Name,
		Category:  normalizeCategory(rec.Category),
		Todos:     make([]todo.Todo, 0, len(rec.Todos)),
		CreatedAt: rec.CreatedDate,
		UpdatedAt: rec.LastModified,
	}
	if strings.TrimSpace(p.Name) == "" {
		if p.IsDefault() {
			p.Name = todo.DefaultProjectName
		} else {
			p.Name = p.ID
		}
	}
	p.CreatedAt, p.UpdatedAt = fillTimestamps(p.CreatedAt, p.UpdatedAt)

	for _, tr := range rec.Todos {
		t, err := normalizeTodo(tr)
		if err != nil {
			return nil, err
		}
		p.Todos = append(p.Todos, t)
	}
	return p, nil
}

// normalizeTemplate restores a template entry. A template's TemplateID is
// always its own ID.
func normalizeTemplate(entry TemplateEntry) (*todo.Todo, error) {
	rec := entry.Todo
	if rec.ID == "" {
		rec.ID = entry.ID
	}
	t, err := normalizeTodo(rec)
	if err != nil {
		return nil, err
	}
	t.ID = entry.ID
	t.TemplateID = entry.ID
	t.Completed = false
	t.TimeSpent = 0
	t.TimerStartedAt = nil
	return &t, nil
}

// normalizeTodo restores a todo record. It is the only place defaults are
// filled in for stored todos:
//   - priority medium and category general when missing or unknown
//   - nil slices become empty
//   - negative or non-finite timeSpent becomes zero
//   - recurrence is cleared unless isRecurring
//   - subtasks without IDs get deterministic ones
//   - a completed todo has no running timer
func normalizeTodo(rec TodoRecord) (todo.Todo, error) {
	if rec.ID == "" {
		return todo.Todo{}, fmt.Errorf("todo %q has no id", rec.Title)
	}

	t := todo.Todo{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		DueDate:      rec.DueDate,
		Priority:     normalizePriority(rec.Priority),
		Notes:        rec.Notes,
		Category:     normalizeCategory(rec.Category),
		Tags:         nonNil(rec.Tags),
		Dependencies: nonNil(rec.Dependencies),
		Subtasks:     make([]todo.Subtask, 0, len(rec.Subtasks)),
		Completed:    rec.Completed,
		TimeSpent:    secondsToDuration(rec.TimeSpent),
	}

	recurrence, err := normalizeRecurrence(rec.IsRecurring, rec.Recurrence)
	if err != nil {
		return todo.Todo{}, fmt.Errorf("todo %s: %w", rec.ID, err)
	}
	t.Recurrence = recurrence

	for i, s := range rec.Subtasks {
		id := s.ID
		if id == "" {
			id = ids.Generate(rec.ID+"/"+strconv.Itoa(i)+"/"+s.Title, 8)
		}
		t.Subtasks = append(t.Subtasks, todo.Subtask{ID: id, Title: s.Title, Completed: s.Completed})
	}

	if rec.StartTime != nil && !rec.Completed {
		started := *rec.StartTime
		t.TimerStartedAt = &started
	}
	if rec.TemplateID != nil {
		t.TemplateID = *rec.TemplateID
	}
	if rec.NextID != nil && t.IsRecurring() {
		t.NextOccurrenceID = *rec.NextID
	}
	t.CreatedAt, t.UpdatedAt = fillTimestamps(rec.CreatedDate, rec.LastModified)
	return t, nil
}

func normalizePriority(value string) todo.Priority {
	p := todo.Priority(internalstrings.NormalizeLowerTrimSpace(value))
	if !p.IsValid() {
		return todo.PriorityMedium
	}
	return p
}

func normalizeCategory(value string) todo.Category {
	c := todo.Category(internalstrings.NormalizeLowerTrimSpace(value))
	if !c.IsValid() {
		return todo.CategoryGeneral
	}
	return c
}

func normalizeRecurrence(isRecurring bool, value *string) (todo.Recurrence, error) {
	if !isRecurring {
		return todo.RecurrenceNone, nil
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		return "", todo.ErrMissingRecurrence
	}
	return todo.ParseRecurrence(*value)
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// fillTimestamps substitutes one missing timestamp with the other.
func fillTimestamps(created, modified time.Time) (time.Time, time.Time) {
	if created.IsZero() {
		created = modified
	}
	if modified.IsZero() {
		modified = created
	}
	return created, modified
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
