package todo

import (
	"errors"
	"testing"
	"time"
)

func TestToggleComplete(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})
	later := testNow.Add(time.Minute)

	td.ToggleComplete(later)
	if !td.Completed {
		t.Fatal("expected completed")
	}
	if !td.UpdatedAt.Equal(later) {
		t.Errorf("expected UpdatedAt %v, got %v", later, td.UpdatedAt)
	}

	td.ToggleComplete(later)
	if td.Completed {
		t.Fatal("expected incomplete")
	}
}

func TestToggleComplete_StopsTimer(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})
	td.StartTiming(testNow)

	td.ToggleComplete(testNow.Add(90 * time.Second))

	if td.IsTiming() {
		t.Error("expected timer stopped")
	}
	if td.TimeSpent != 90*time.Second {
		t.Errorf("expected 90s accumulated, got %v", td.TimeSpent)
	}
}

func TestUpdate_AppliesFields(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})
	later := testNow.Add(time.Hour)

	title := " Renamed "
	priority := PriorityHigh
	due := mustDate(t, "2024-03-20")
	tags := []string{"a", "a", "b"}
	err := td.Update(UpdateInput{Title: &title, Priority: &priority, DueDate: &due, Tags: &tags}, later)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if td.Title != "Renamed" {
		t.Errorf("expected title 'Renamed', got %q", td.Title)
	}
	if td.Priority != PriorityHigh {
		t.Errorf("expected priority high, got %q", td.Priority)
	}
	if td.DueDate != due {
		t.Errorf("expected due date %v, got %v", due, td.DueDate)
	}
	if len(td.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", td.Tags)
	}
	if td.Category != CategoryGeneral {
		t.Errorf("expected untouched category, got %q", td.Category)
	}
	if !td.UpdatedAt.Equal(later) {
		t.Errorf("expected UpdatedAt refreshed")
	}
}

func TestUpdate_EmptyInputRefreshesTimestamp(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})
	later := testNow.Add(time.Hour)

	if err := td.Update(UpdateInput{}, later); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !td.UpdatedAt.Equal(later) {
		t.Errorf("expected UpdatedAt refreshed")
	}
}

func TestUpdate_AllOrNothing(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "Original"})
	before := td.Clone()

	title := "Changed"
	priority := Priority("extreme")
	err := td.Update(UpdateInput{Title: &title, Priority: &priority}, testNow.Add(time.Hour))
	if !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected invalid priority, got %v", err)
	}
	if td.Title != before.Title || !td.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("expected no change on failed update, got %+v", td)
	}
}

func TestUpdate_RejectsSelfDependency(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})
	deps := []string{td.ID}

	err := td.Update(UpdateInput{Dependencies: &deps}, testNow)
	if !errors.Is(err, ErrSelfDependency) {
		t.Fatalf("expected self dependency error, got %v", err)
	}
}

func TestSubtasks(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})

	first, err := td.AddSubtask("first", testNow)
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	second, err := td.AddSubtask("second", testNow)
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}

	if err := td.ToggleSubtask(first.ID, testNow); err != nil {
		t.Fatalf("toggle subtask: %v", err)
	}
	if got, _ := td.Subtask(first.ID); !got.Completed {
		t.Error("expected first subtask completed")
	}
	if got := td.SubtaskProgress(); got != 50 {
		t.Errorf("expected progress 50, got %d", got)
	}

	if err := td.RemoveSubtask(second.ID, testNow); err != nil {
		t.Fatalf("remove subtask: %v", err)
	}
	if len(td.Subtasks) != 1 || td.Subtasks[0].ID != first.ID {
		t.Errorf("expected only first subtask left, got %+v", td.Subtasks)
	}
}

func TestSubtasks_UnknownID(t *testing.T) {
	td := mustNew(t, CreateInput{Title: "x"})

	if err := td.ToggleSubtask("missing", testNow); !errors.Is(err, ErrSubtaskNotFound) {
		t.Errorf("toggle: expected subtask not found, got %v", err)
	}
	if err := td.RemoveSubtask("missing", testNow); !errors.Is(err, ErrNotFound) {
		t.Errorf("remove: expected not found kind, got %v", err)
	}
	if _, err := td.AddSubtask("  ", testNow); !errors.Is(err, ErrEmptySubtaskTitle) {
		t.Errorf("add: expected empty title error, got %v", err)
	}
}
