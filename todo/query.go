package todo

import (
	"slices"
	"time"

	internalstrings "github.com/amonks/tasknest/internal/strings"
	"github.com/amonks/tasknest/internal/validation"
)

// FilterKind selects a subset of todos.
type FilterKind string

const (
	FilterAll       FilterKind = "all"
	FilterActive    FilterKind = "active"
	FilterCompleted FilterKind = "completed"
	FilterUrgent    FilterKind = "urgent"
	FilterImportant FilterKind = "important"
	FilterOverdue   FilterKind = "overdue"
	FilterDueToday  FilterKind = "due-today"
	FilterTiming    FilterKind = "timing"
)

// ValidFilterKinds returns all filter kinds.
func ValidFilterKinds() []FilterKind {
	return []FilterKind{
		FilterAll, FilterActive, FilterCompleted, FilterUrgent,
		FilterImportant, FilterOverdue, FilterDueToday, FilterTiming,
	}
}

// ParseFilterKind parses a filter kind. The empty string means FilterAll.
func ParseFilterKind(value string) (FilterKind, error) {
	kind := FilterKind(internalstrings.NormalizeLowerTrimSpace(value))
	if kind == "" {
		return FilterAll, nil
	}
	if !slices.Contains(ValidFilterKinds(), kind) {
		return "", validation.FormatInvalidValueError(ErrInvalidFilter, kind, ValidFilterKinds())
	}
	return kind, nil
}

// Matches reports whether t belongs to the subset selected by kind.
func Matches(t *Todo, kind FilterKind, now time.Time) bool {
	switch kind {
	case FilterAll, "":
		return true
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	case FilterUrgent:
		return t.IsUrgent(now)
	case FilterImportant:
		return t.IsImportant()
	case FilterOverdue:
		return t.IsOverdue(now)
	case FilterDueToday:
		return t.IsDueToday(now)
	case FilterTiming:
		return t.IsTiming()
	default:
		return false
	}
}

// Filter returns the todos matching kind, in order.
func Filter(todos []Todo, kind FilterKind, now time.Time) []Todo {
	out := make([]Todo, 0, len(todos))
	for i := range todos {
		if Matches(&todos[i], kind, now) {
			out = append(out, todos[i])
		}
	}
	return out
}

// MatchesQuery reports whether every whitespace-separated token of query
// occurs in the title, description, or notes, ignoring case.
func MatchesQuery(t *Todo, query string) bool {
	tokens := internalstrings.Tokens(query)
	if len(tokens) == 0 {
		return true
	}
	return internalstrings.ContainsAllTokens(t.Title+" "+t.Description+" "+t.Notes, tokens)
}

// SortKey selects an ordering of todos.
type SortKey string

const (
	SortPriority SortKey = "priority"
	SortDueDate  SortKey = "dueDate"
	SortCreated  SortKey = "created"
	SortModified SortKey = "modified"
)

// ValidSortKeys returns all sort keys.
func ValidSortKeys() []SortKey {
	return []SortKey{SortPriority, SortDueDate, SortCreated, SortModified}
}

// ParseSortKey parses a sort key, accepting "due-date" and "due" as aliases
// for dueDate.
func ParseSortKey(value string) (SortKey, error) {
	switch internalstrings.NormalizeLowerTrimSpace(value) {
	case "priority":
		return SortPriority, nil
	case "duedate", "due-date", "due":
		return SortDueDate, nil
	case "created":
		return SortCreated, nil
	case "modified":
		return SortModified, nil
	}
	return "", validation.FormatInvalidValueError(ErrInvalidSortKey, SortKey(value), ValidSortKeys())
}

// Compare orders a before b under key:
//   - priority: high, medium, low
//   - dueDate: earliest first, undated last
//   - created, modified: newest first
func Compare(a, b *Todo, key SortKey) int {
	switch key {
	case SortPriority:
		return cmpInt(a.Priority.Rank(), b.Priority.Rank())
	case SortDueDate:
		switch {
		case a.DueDate.IsZero() && b.DueDate.IsZero():
			return 0
		case a.DueDate.IsZero():
			return 1
		case b.DueDate.IsZero():
			return -1
		}
		return a.DueDate.Compare(b.DueDate)
	case SortCreated:
		return b.CreatedAt.Compare(a.CreatedAt)
	case SortModified:
		return b.UpdatedAt.Compare(a.UpdatedAt)
	default:
		return 0
	}
}

// SortStable sorts todos in place by key. Todos with equal keys keep their
// relative order.
func SortStable(todos []Todo, key SortKey) {
	slices.SortStableFunc(todos, func(a, b Todo) int {
		return Compare(&a, &b, key)
	})
}
