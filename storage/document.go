package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/amonks/tasknest/todo"
)

// Document is the persisted JSON shape.
type Document struct {
	Projects         map[string]ProjectRecord `json:"projects"`
	CurrentProjectID string                   `json:"currentProjectId"`
	Templates        []TemplateEntry          `json:"templates"`
	AnalyticsData    AnalyticsRecord          `json:"analyticsData"`
}

// ProjectRecord is the persisted form of a project.
type ProjectRecord struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	CreatedDate  time.Time    `json:"createdDate"`
	LastModified time.Time    `json:"lastModified"`
	Todos        []TodoRecord `json:"todos"`
}

// TodoRecord is the persisted form of a todo.
type TodoRecord struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	DueDate      todo.Date       `json:"dueDate"`
	Priority     string          `json:"priority"`
	Notes        string          `json:"notes"`
	Completed    bool            `json:"completed"`
	Category     string          `json:"category"`
	Tags         []string        `json:"tags"`
	Dependencies []string        `json:"dependencies"`
	Subtasks     []SubtaskRecord `json:"subtasks"`
	IsRecurring  bool            `json:"isRecurring"`
	Recurrence   *string         `json:"recurrence"`
	NextID       *string         `json:"nextOccurrenceId,omitempty"`

	// TimeSpent is in seconds.
	TimeSpent float64 `json:"timeSpent"`

	StartTime    *time.Time `json:"startTime"`
	TemplateID   *string    `json:"templateId"`
	CreatedDate  time.Time  `json:"createdDate"`
	LastModified time.Time  `json:"lastModified"`
}

// SubtaskRecord is the persisted form of a subtask.
type SubtaskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// AnalyticsRecord is the persisted analytics snapshot.
type AnalyticsRecord struct {
	TotalTasks       int     `json:"totalTasks"`
	CompletedTasks   int     `json:"completedTasks"`
	AverageTimeSpent float64 `json:"averageTimeSpent"`
	UrgentTasks      int     `json:"urgentTasks"`
	ImportantTasks   int     `json:"importantTasks"`
}

// TemplateEntry is one template, encoded as a two-element [id, todo] array.
type TemplateEntry struct {
	ID   string
	Todo TodoRecord
}

// MarshalJSON implements json.Marshaler.
func (e TemplateEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.ID, e.Todo})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *TemplateEntry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("template entry: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("template entry: expected [id, todo], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.ID); err != nil {
		return fmt.Errorf("template entry id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Todo); err != nil {
		return fmt.Errorf("template entry %s: %w", e.ID, err)
	}
	return nil
}
