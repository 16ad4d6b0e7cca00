package todo

import (
	"math"
	"time"
)

// IsImportant reports whether the todo has high priority.
func (t *Todo) IsImportant() bool {
	return t.Priority == PriorityHigh
}

// IsUrgent reports whether the todo is high priority, open, and due at or
// before now. A due date counts from the start of its day in now's location.
func (t *Todo) IsUrgent(now time.Time) bool {
	if t.Completed || !t.IsImportant() || t.DueDate.IsZero() {
		return false
	}
	return !t.DueDate.StartIn(now.Location()).After(now)
}

// IsOverdue reports whether the todo is open and was due before today.
func (t *Todo) IsOverdue(now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(DateOf(now))
}

// IsDueToday reports whether the todo is open and due on now's calendar day.
func (t *Todo) IsDueToday(now time.Time) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate == DateOf(now)
}

// SubtaskProgress returns the rounded percentage of completed subtasks, or 0
// when there are none.
func (t *Todo) SubtaskProgress() int {
	if len(t.Subtasks) == 0 {
		return 0
	}
	done := 0
	for _, subtask := range t.Subtasks {
		if subtask.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(t.Subtasks))))
}
