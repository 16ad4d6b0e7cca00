package main

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/amonks/tasknest/todo"
)

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSICodes(input string) string {
	return ansiSequence.ReplaceAllString(input, "")
}

func tableFixture(now time.Time) []todo.Todo {
	due, _ := todo.ParseDate("2024-03-16")
	started := now.Add(-time.Minute)
	return []todo.Todo{
		{
			ID:        "abc12345",
			Title:     "First item",
			Priority:  todo.PriorityHigh,
			Category:  todo.CategoryWork,
			DueDate:   due,
			Completed: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:             "abd67890",
			Title:          "Second item",
			Priority:       todo.PriorityLow,
			Category:       todo.CategoryGeneral,
			Recurrence:     todo.RecurrenceDaily,
			Subtasks:       []todo.Subtask{{ID: "s1", Title: "one", Completed: true}, {ID: "s2", Title: "two"}},
			TimeSpent:      90 * time.Second,
			TimerStartedAt: &started,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

func TestFormatTodoTablePreservesAlignmentWithANSI(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	items := tableFixture(now)

	plain := formatTodoTable(items, func(id string) string { return id }, now)
	ansi := formatTodoTable(items, func(id string) string {
		return "\x1b[1m\x1b[36m" + id[:3] + "\x1b[0m" + id[3:]
	}, now)

	if stripANSICodes(ansi) != plain {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, ansi)
	}
}

func TestFormatTodoTableCells(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	output := formatTodoTable(tableFixture(now), func(id string) string { return id }, now)

	for _, want := range []string{
		"ID", "PRI", "DUE",
		"[ ]", "[x]",
		"2024-03-16 (tomorrow)",
		"Second item (1/2) ↻",
		"2m30s*",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected table to contain %q, got:\n%s", want, output)
		}
	}
}

func TestTodoEmptyListMessage(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		kind   todo.FilterKind
		search string
		want   string
	}{
		{name: "nothing stored", total: 0, kind: todo.FilterActive, want: "No todos found."},
		{name: "no criteria", total: 2, kind: todo.FilterAll, want: "No todos found."},
		{name: "filter", total: 2, kind: todo.FilterOverdue, want: `No todos match filter "overdue" (2 total).`},
		{name: "filter and search", total: 3, kind: todo.FilterUrgent, search: "milk", want: `No todos match filter "urgent" and search "milk" (3 total).`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := todoEmptyListMessage(tt.total, tt.kind, tt.search); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveTextFromStdin(t *testing.T) {
	got, err := resolveTextFromStdin("-", strings.NewReader("from stdin\n\n"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "from stdin" {
		t.Fatalf("expected trimmed stdin, got %q", got)
	}

	got, err = resolveTextFromStdin("literal", strings.NewReader("ignored"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "literal" {
		t.Fatalf("expected literal value, got %q", got)
	}
}

func TestListFilterKind(t *testing.T) {
	tests := []struct {
		name          string
		filterChanged bool
		filter        string
		all           bool
		want          todo.FilterKind
	}{
		{name: "default hides completed", want: todo.FilterActive},
		{name: "all includes completed", all: true, want: todo.FilterAll},
		{name: "explicit filter wins", filterChanged: true, filter: "overdue", all: true, want: todo.FilterOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := listFilterKind(tt.filterChanged, tt.filter, tt.all)
			if err != nil {
				t.Fatalf("filter kind: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
