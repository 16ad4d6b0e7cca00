package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/amonks/tasknest/internal/ui"
	"github.com/amonks/tasknest/todo"
)

func formatTodoTable(items []todo.Todo, highlight func(string) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "", "PRI", "DUE", "CATEGORY", "TIME", "TITLE"}, len(items))
	for i := range items {
		t := &items[i]
		builder.AddRow(
			highlight(t.ID),
			completionIcon(t.Completed),
			string(t.Priority),
			ui.FormatDue(t.DueDate, now),
			string(t.Category),
			todoTimeCell(t, now),
			todoTitleCell(t),
		)
	}
	return builder.String()
}

func completionIcon(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func todoTimeCell(t *todo.Todo, now time.Time) string {
	cell := ui.FormatTimeSpent(t.Elapsed(now))
	if t.IsTiming() {
		cell += "*"
	}
	return cell
}

func todoTitleCell(t *todo.Todo) string {
	title := ui.TruncateTableCell(t.Title)
	if len(t.Subtasks) > 0 {
		done := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				done++
			}
		}
		title += fmt.Sprintf(" (%d/%d)", done, len(t.Subtasks))
	}
	if t.IsRecurring() {
		title += " ↻"
	}
	return title
}

func todoHighlighter(s *session) func(string) string {
	return logHighlighter(s.reg.TodoPrefixLengths(), ui.HighlightID)
}

// resolveTextFromStdin returns value, or the whole of stdin when value is "-".
func resolveTextFromStdin(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
