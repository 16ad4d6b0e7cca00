package todo

import (
	"fmt"
	"strings"
	"time"
)

// ToggleComplete flips the completion state. A running timer is stopped
// first so its elapsed time is kept.
func (t *Todo) ToggleComplete(now time.Time) {
	t.SetCompleted(!t.Completed, now)
}

// SetCompleted sets the completion state, stopping a running timer when
// completing.
func (t *Todo) SetCompleted(completed bool, now time.Time) {
	if completed {
		t.StopTiming(now)
	}
	t.Completed = completed
	t.UpdatedAt = now
}

// Update applies the non-nil fields of input. Every present field is
// validated before any of them is written.
func (t *Todo) Update(input UpdateInput, now time.Time) error {
	if err := input.Validate(); err != nil {
		return err
	}
	if input.Dependencies != nil {
		if err := ValidateDependencies(t.ID, *input.Dependencies); err != nil {
			return err
		}
	}

	if input.Title != nil {
		t.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.DueDate != nil {
		t.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.Notes != nil {
		t.Notes = *input.Notes
	}
	if input.Category != nil {
		t.Category = *input.Category
	}
	if input.Tags != nil {
		t.Tags = NormalizeTags(*input.Tags)
	}
	if input.Dependencies != nil {
		t.Dependencies = NormalizeIDs(*input.Dependencies)
	}
	if input.Recurrence != nil {
		t.Recurrence = *input.Recurrence
	}
	if input.Completed != nil {
		t.SetCompleted(*input.Completed, now)
	}
	t.UpdatedAt = now
	return nil
}

// AddSubtask appends a new subtask and returns it.
func (t *Todo) AddSubtask(title string, now time.Time) (Subtask, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Subtask{}, ErrEmptySubtaskTitle
	}
	subtask := Subtask{ID: GenerateID(), Title: title}
	t.Subtasks = append(t.Subtasks, subtask)
	t.UpdatedAt = now
	return subtask, nil
}

// RemoveSubtask deletes the subtask with the given ID.
func (t *Todo) RemoveSubtask(id string, now time.Time) error {
	idx := t.subtaskIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSubtaskNotFound, id)
	}
	t.Subtasks = append(t.Subtasks[:idx], t.Subtasks[idx+1:]...)
	t.UpdatedAt = now
	return nil
}

// ToggleSubtask flips the completion state of a subtask.
func (t *Todo) ToggleSubtask(id string, now time.Time) error {
	idx := t.subtaskIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSubtaskNotFound, id)
	}
	return t.SetSubtask(id, !t.Subtasks[idx].Completed, now)
}

// SetSubtask sets the completion state of a subtask.
func (t *Todo) SetSubtask(id string, completed bool, now time.Time) error {
	idx := t.subtaskIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrSubtaskNotFound, id)
	}
	t.Subtasks[idx].Completed = completed
	t.UpdatedAt = now
	return nil
}

// Subtask returns the subtask with the given ID.
func (t *Todo) Subtask(id string) (Subtask, bool) {
	idx := t.subtaskIndex(id)
	if idx < 0 {
		return Subtask{}, false
	}
	return t.Subtasks[idx], true
}

func (t *Todo) subtaskIndex(id string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return i
		}
	}
	return -1
}
