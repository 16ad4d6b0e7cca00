package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tasknest/internal/validation"
	"github.com/amonks/tasknest/todo"
)

// TodoData is rendered into the editable TOML document.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	ID       string

	Title        string
	Description  string
	Due          string
	Priority     todo.Priority
	Category     todo.Category
	Recurrence   todo.Recurrence
	Tags         []string
	Dependencies []string

	// Subtasks are only offered when creating.
	Subtasks []string

	// Completed is only offered when updating.
	Completed bool

	// Notes become the document body.
	Notes string
}

// DefaultCreateData returns TodoData for a new todo.
func DefaultCreateData(priority todo.Priority, category todo.Category) TodoData {
	if priority == "" {
		priority = todo.PriorityMedium
	}
	if category == "" {
		category = todo.CategoryGeneral
	}
	return TodoData{Priority: priority, Category: category}
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t *todo.Todo) TodoData {
	return TodoData{
		IsUpdate:     true,
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Due:          t.DueDate.String(),
		Priority:     t.Priority,
		Category:     t.Category,
		Recurrence:   t.Recurrence,
		Tags:         t.Tags,
		Dependencies: t.Dependencies,
		Completed:    t.Completed,
		Notes:        t.Notes,
	}
}

var todoTemplate = template.Must(template.New("todo").Funcs(template.FuncMap{
	"list": func(values []string) string {
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	},
}).Parse(`title = {{ printf "%q" .Title }}
description = {{ printf "%q" .Description }}
due = {{ printf "%q" .Due }} # YYYY-MM-DD, empty for none
priority = {{ printf "%q" .Priority }} # {{ .PriorityChoices }}
category = {{ printf "%q" .Category }} # {{ .CategoryChoices }}
recurrence = {{ printf "%q" .Recurrence }} # none, {{ .RecurrenceChoices }}
tags = {{ list .Tags }}
dependencies = {{ list .Dependencies }}
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- else }}
subtasks = {{ list .Subtasks }}
{{- end }}
---
{{ .Notes }}
`))

type templateData struct {
	TodoData
	PriorityChoices   string
	CategoryChoices   string
	RecurrenceChoices string
}

// RenderTodoTOML renders the todo data as TOML frontmatter followed by the
// notes.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	err := todoTemplate.Execute(&buf, templateData{
		TodoData:          data,
		PriorityChoices:   validation.FormatValidValues(todo.ValidPriorities()),
		CategoryChoices:   validation.FormatValidValues(todo.ValidCategories()),
		RecurrenceChoices: validation.FormatValidValues(todo.ValidRecurrences()),
	})
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo is the validated result of an editing session.
type ParsedTodo struct {
	Title        string   `toml:"title"`
	Description  string   `toml:"description"`
	Due          string   `toml:"due"`
	Priority     string   `toml:"priority"`
	Category     string   `toml:"category"`
	Recurrence   string   `toml:"recurrence"`
	Tags         []string `toml:"tags"`
	Dependencies []string `toml:"dependencies"`
	Subtasks     []string `toml:"subtasks"`
	Completed    *bool    `toml:"completed"`
	Notes        string   `toml:"-"`

	dueDate    todo.Date
	priority   todo.Priority
	category   todo.Category
	recurrence todo.Recurrence
}

// ParseTodoTOML parses and validates the editor output.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	meta, err := toml.Decode(frontmatter, &parsed)
	if err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w %q", todo.ErrUnknownField, undecoded[0].String())
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Notes = strings.TrimSpace(body)

	if err := todo.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if parsed.dueDate, err = todo.ParseDate(parsed.Due); err != nil {
		return nil, err
	}
	if parsed.Priority != "" {
		if parsed.priority, err = todo.ParsePriority(parsed.Priority); err != nil {
			return nil, err
		}
	}
	if parsed.Category != "" {
		if parsed.category, err = todo.ParseCategory(parsed.Category); err != nil {
			return nil, err
		}
	}
	if parsed.recurrence, err = todo.ParseRecurrence(parsed.Recurrence); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

// EditTodo opens the editor for data and returns the parsed result.
func EditTodo(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "tn-todo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}
	return ParseTodoTOML(string(edited))
}

// ToCreateInput converts the parsed document to a todo.CreateInput.
func (p *ParsedTodo) ToCreateInput() todo.CreateInput {
	return todo.CreateInput{
		Title:        p.Title,
		Description:  p.Description,
		DueDate:      p.dueDate,
		Priority:     p.priority,
		Notes:        p.Notes,
		Category:     p.category,
		Tags:         p.Tags,
		Dependencies: p.Dependencies,
		Subtasks:     p.Subtasks,
		Recurrence:   p.recurrence,
	}
}

// ToUpdateInput converts the parsed document to a todo.UpdateInput that
// rewrites every editable field.
func (p *ParsedTodo) ToUpdateInput() todo.UpdateInput {
	tags := append([]string{}, p.Tags...)
	deps := append([]string{}, p.Dependencies...)
	input := todo.UpdateInput{
		Title:        &p.Title,
		Description:  &p.Description,
		DueDate:      &p.dueDate,
		Notes:        &p.Notes,
		Tags:         &tags,
		Dependencies: &deps,
		Recurrence:   &p.recurrence,
		Completed:    p.Completed,
	}
	if p.priority != "" {
		input.Priority = &p.priority
	}
	if p.category != "" {
		input.Category = &p.category
	}
	return input
}
