package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/todo"
)

// ErrEmptyState signals that no usable state was stored. Missing and
// malformed documents both produce it; callers fall back to FreshState.
var ErrEmptyState = errors.New("no stored state")

// ErrMalformedDocument marks a document that could not be decoded.
var ErrMalformedDocument = fmt.Errorf("%w: malformed document", todo.ErrPersistence)

// Serialize encodes state as the persisted document.
func Serialize(state *State) ([]byte, error) {
	data, err := json.Marshal(ToDocument(state))
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// SerializeIndent encodes state as an indented document for export.
func SerializeIndent(state *State) ([]byte, error) {
	data, err := json.MarshalIndent(ToDocument(state), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// Deserialize reconstructs the state stored in raw. Empty input returns
// ErrEmptyState; malformed input returns an error matching both
// ErrEmptyState and ErrMalformedDocument. No partial state is ever returned.
func Deserialize(raw []byte, now time.Time) (*State, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrEmptyState
	}
	state, err := Decode(raw, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmptyState, err)
	}
	return state, nil
}

// Decode strictly decodes and normalizes a document. Errors match
// ErrMalformedDocument.
func Decode(raw []byte, now time.Time) (*State, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedDocument)
	}
	if doc.Projects == nil {
		return nil, fmt.Errorf("%w: missing projects object", ErrMalformedDocument)
	}
	state, err := FromDocument(doc, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return state, nil
}

// ToDocument converts state to its persisted records.
func ToDocument(state *State) Document {
	doc := Document{
		Projects:         make(map[string]ProjectRecord, len(state.Projects)),
		CurrentProjectID: state.SelectedProjectID,
		Templates:        make([]TemplateEntry, 0, len(state.Templates)),
		AnalyticsData:    analyticsRecord(state.Analytics),
	}
	for _, p := range state.Projects {
		doc.Projects[p.ID] = NewProjectRecord(p)
	}
	for _, tpl := range state.Templates {
		doc.Templates = append(doc.Templates, TemplateEntry{ID: tpl.ID, Todo: NewTodoRecord(tpl)})
	}
	return doc
}

// FromDocument rebuilds state from decoded records, applying normalization
// and the state invariants.
func FromDocument(doc Document, now time.Time) (*State, error) {
	state := &State{
		SelectedProjectID: doc.CurrentProjectID,
		Projects:          make([]*todo.Project, 0, len(doc.Projects)),
		Templates:         make([]*todo.Todo, 0, len(doc.Templates)),
		Analytics:         analyticsFromRecord(doc.AnalyticsData),
	}

	seenTodos := make(map[string]string)
	for key, rec := range doc.Projects {
		if rec.ID == "" {
			return nil, fmt.Errorf("project %q has no id", key)
		}
		if rec.ID != key {
			return nil, fmt.Errorf("project key %q does not match id %q", key, rec.ID)
		}
		p, err := normalizeProject(rec)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", rec.ID, err)
		}
		for _, t := range p.Todos {
			if owner, dup := seenTodos[t.ID]; dup {
				return nil, fmt.Errorf("duplicate todo id %q in projects %s and %s", t.ID, owner, p.ID)
			}
			seenTodos[t.ID] = p.ID
		}
		state.Projects = append(state.Projects, p)
	}
	sortProjects(state.Projects)

	seenTemplates := make(map[string]bool)
	for _, entry := range doc.Templates {
		if entry.ID == "" {
			return nil, fmt.Errorf("template has no id")
		}
		if seenTemplates[entry.ID] {
			return nil, fmt.Errorf("duplicate template id %q", entry.ID)
		}
		seenTemplates[entry.ID] = true
		tpl, err := normalizeTemplate(entry)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", entry.ID, err)
		}
		state.Templates = append(state.Templates, tpl)
	}

	state.ensureInvariants(now)
	return state, nil
}

// NewProjectRecord converts a project and its todos to their stored form.
func NewProjectRecord(p *todo.Project) ProjectRecord {
	rec := ProjectRecord{
		ID:           p.ID,
		Name:         p.Name,
		Category:     string(p.Category),
		CreatedDate:  p.CreatedAt.UTC(),
		LastModified: p.UpdatedAt.UTC(),
		Todos:        make([]TodoRecord, 0, len(p.Todos)),
	}
	for i := range p.Todos {
		rec.Todos = append(rec.Todos, NewTodoRecord(&p.Todos[i]))
	}
	return rec
}

// NewTodoRecord converts a todo to its stored form.
func NewTodoRecord(t *todo.Todo) TodoRecord {
	rec := TodoRecord{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		Priority:     string(t.Priority),
		Notes:        t.Notes,
		Completed:    t.Completed,
		Category:     string(t.Category),
		Tags:         append([]string{}, t.Tags...),
		Dependencies: append([]string{}, t.Dependencies...),
		Subtasks:     make([]SubtaskRecord, 0, len(t.Subtasks)),
		IsRecurring:  t.IsRecurring(),
		TimeSpent:    t.TimeSpent.Seconds(),
		CreatedDate:  t.CreatedAt.UTC(),
		LastModified: t.UpdatedAt.UTC(),
	}
	for _, s := range t.Subtasks {
		rec.Subtasks = append(rec.Subtasks, SubtaskRecord{ID: s.ID, Title: s.Title, Completed: s.Completed})
	}
	if t.IsRecurring() {
		r := string(t.Recurrence)
		rec.Recurrence = &r
	}
	if t.TimerStartedAt != nil {
		started := t.TimerStartedAt.UTC()
		rec.StartTime = &started
	}
	if t.TemplateID != "" {
		id := t.TemplateID
		rec.TemplateID = &id
	}
	if t.NextOccurrenceID != "" {
		id := t.NextOccurrenceID
		rec.NextID = &id
	}
	return rec
}

func analyticsRecord(a analytics.Analytics) AnalyticsRecord {
	return AnalyticsRecord{
		TotalTasks:       a.TotalTasks,
		CompletedTasks:   a.CompletedTasks,
		AverageTimeSpent: a.AverageTimeSpent,
		UrgentTasks:      a.UrgentTasks,
		ImportantTasks:   a.ImportantTasks,
	}
}

func analyticsFromRecord(rec AnalyticsRecord) analytics.Analytics {
	return analytics.Analytics{
		TotalTasks:       rec.TotalTasks,
		CompletedTasks:   rec.CompletedTasks,
		AverageTimeSpent: rec.AverageTimeSpent,
		UrgentTasks:      rec.UrgentTasks,
		ImportantTasks:   rec.ImportantTasks,
	}
}
