// Package todo implements the task and project entities of tasknest.
//
// A Project owns an ordered list of Todos; each Todo owns its Subtasks.
// Entities are built through validated constructors (New, NewProject) and
// mutated in place through methods that keep their invariants:
//   - ToggleComplete, StartTiming, StopTiming for lifecycle and time tracking
//   - Update for partial edits described by an UpdateInput
//   - AddSubtask, ToggleSubtask, RemoveSubtask for checklists
//
// Derived classifications (IsUrgent, IsImportant, IsOverdue, IsDueToday) take
// the current time explicitly so callers control the clock.
package todo

import internalstrings "github.com/amonks/tasknest/internal/strings"

const (
	// DefaultProjectID is the reserved ID of the project that always exists.
	DefaultProjectID = "default"

	// DefaultProjectName is the display name of the default project.
	DefaultProjectName = "Default"

	// AllProjectsID selects the virtual view spanning every project.
	AllProjectsID = "all"
)

// MaxTitleLength is the maximum allowed length for a todo title.
const MaxTitleLength = 500

// Priority is the importance level of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium" // default
	PriorityHigh   Priority = "high"
)

// ValidPriorities returns all valid priority values, lowest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// Rank returns the sort rank for a priority; high sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ParsePriority normalizes and validates a priority name.
func ParsePriority(value string) (Priority, error) {
	p := Priority(internalstrings.NormalizeLowerTrimSpace(value))
	if err := ValidatePriority(p); err != nil {
		return "", err
	}
	return p, nil
}

// Category groups todos and projects by area of life.
type Category string

const (
	CategoryGeneral  Category = "general" // default
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryShopping Category = "shopping"
	CategoryTravel   Category = "travel"
)

// ValidCategories returns all valid category values in display order.
func ValidCategories() []Category {
	return []Category{CategoryGeneral, CategoryWork, CategoryPersonal, CategoryShopping, CategoryTravel}
}

// IsValid returns true if the category is a known valid value.
func (c Category) IsValid() bool {
	for _, valid := range ValidCategories() {
		if c == valid {
			return true
		}
	}
	return false
}

// ParseCategory normalizes and validates a category name.
func ParseCategory(value string) (Category, error) {
	c := Category(internalstrings.NormalizeLowerTrimSpace(value))
	if err := ValidateCategory(c); err != nil {
		return "", err
	}
	return c, nil
}

// Recurrence is the repeat interval of a recurring todo.
// RecurrenceNone marks a todo that does not repeat.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// ValidRecurrences returns all repeating recurrence values.
func ValidRecurrences() []Recurrence {
	return []Recurrence{RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly}
}

// IsValid returns true for RecurrenceNone and every repeating value.
func (r Recurrence) IsValid() bool {
	if r == RecurrenceNone {
		return true
	}
	for _, valid := range ValidRecurrences() {
		if r == valid {
			return true
		}
	}
	return false
}

// ParseRecurrence normalizes and validates a recurrence name. "none" and the
// empty string both parse to RecurrenceNone.
func ParseRecurrence(value string) (Recurrence, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	if normalized == "none" {
		return RecurrenceNone, nil
	}
	r := Recurrence(normalized)
	if err := ValidateRecurrence(r); err != nil {
		return "", err
	}
	return r, nil
}

// Next advances date by one recurrence period. Monthly and yearly steps clamp
// to the last day of the target month. RecurrenceNone returns date unchanged.
func (r Recurrence) Next(date Date) Date {
	switch r {
	case RecurrenceDaily:
		return date.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return date.AddDate(0, 0, 7)
	case RecurrenceMonthly:
		return date.AddMonths(1)
	case RecurrenceYearly:
		return date.AddMonths(12)
	default:
		return date
	}
}
