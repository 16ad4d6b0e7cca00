package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/tasknest/internal/markdown"
	"github.com/amonks/tasknest/internal/ui"
	"github.com/amonks/tasknest/todo"
)

const detailIndent = 4

func printTodoDetail(w io.Writer, s *session, t *todo.Todo, p *todo.Project, highlight func(string) string) {
	now := s.now()
	status := "active"
	if t.Completed {
		status = "completed"
	} else if blocked, _ := s.reg.IsBlocked(t.ID); blocked {
		status = "blocked"
	}

	fmt.Fprintf(w, "ID:         %s\n", highlight(t.ID))
	fmt.Fprintf(w, "Title:      %s\n", t.Title)
	fmt.Fprintf(w, "Project:    %s\n", p.Name)
	fmt.Fprintf(w, "Status:     %s\n", status)
	fmt.Fprintf(w, "Priority:   %s\n", t.Priority)
	fmt.Fprintf(w, "Category:   %s\n", t.Category)
	fmt.Fprintf(w, "Due:        %s\n", ui.FormatDue(t.DueDate, now))
	if t.IsRecurring() {
		fmt.Fprintf(w, "Recurrence: %s\n", t.Recurrence)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(w, "Tags:       %s\n", strings.Join(t.Tags, ", "))
	}
	timeSpent := ui.FormatTimeSpent(t.Elapsed(now))
	if t.IsTiming() {
		timeSpent += " (running)"
	}
	fmt.Fprintf(w, "Time spent: %s\n", timeSpent)
	if t.TemplateID != "" {
		fmt.Fprintf(w, "Template:   %s\n", t.TemplateID)
	}
	fmt.Fprintf(w, "Created:    %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated:    %s\n", t.UpdatedAt.Format("2006-01-02 15:04"))

	if t.Description != "" {
		fmt.Fprintf(w, "\nDescription:\n%s\n", indentLines(t.Description))
	}

	if len(t.Dependencies) > 0 {
		fmt.Fprintln(w, "\nDepends on:")
		for _, id := range t.Dependencies {
			dep, _, ok := s.reg.FindTodo(id)
			if !ok {
				fmt.Fprintf(w, "    %s (missing)\n", id)
				continue
			}
			fmt.Fprintf(w, "    %s %s %s\n", completionIcon(dep.Completed), highlight(dep.ID), dep.Title)
		}
	}

	if len(t.Subtasks) > 0 {
		fmt.Fprintf(w, "\nSubtasks (%d%%):\n", t.SubtaskProgress())
		for _, st := range t.Subtasks {
			fmt.Fprintf(w, "    %s %s %s\n", completionIcon(st.Completed), st.ID, st.Title)
		}
	}

	if strings.TrimSpace(t.Notes) != "" {
		fmt.Fprintln(w, "\nNotes:")
		fmt.Fprintln(w, string(markdown.SafeRender(80, detailIndent, []byte(t.Notes))))
	}
}

func indentLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = strings.Repeat(" ", detailIndent) + line
		}
	}
	return strings.Join(lines, "\n")
}
