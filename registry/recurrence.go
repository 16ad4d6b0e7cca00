package registry

import (
	"time"

	"github.com/amonks/tasknest/internal/eventlog"
	"github.com/amonks/tasknest/todo"
)

// recur appends the next occurrence of a just-completed recurring todo to
// its project. The next due date is one period after the old one, or after
// today when the todo had none. A todo spawns at most one occurrence, so
// reopening and completing it again adds nothing.
func (r *Registry) recur(p *todo.Project, t *todo.Todo, now time.Time) {
	if !t.IsRecurring() || t.NextOccurrenceID != "" {
		return
	}
	base := t.DueDate
	if base.IsZero() {
		base = todo.DateOf(now)
	}

	next := t.Clone()
	next.ID = todo.GenerateID()
	next.DueDate = t.Recurrence.Next(base)
	next.Completed = false
	next.TimeSpent = 0
	next.TimerStartedAt = nil
	next.NextOccurrenceID = ""
	next.Subtasks = freshSubtasks(t.Subtasks)
	next.CreatedAt = now
	next.UpdatedAt = now

	completedID := t.ID
	t.NextOccurrenceID = next.ID
	p.AddTodo(next, now)
	r.opts.Logger.Recurred(eventlog.RecurrenceLog{
		TodoID:      completedID,
		NextID:      next.ID,
		Title:       next.Title,
		NextDueDate: next.DueDate.String(),
	})
}

// freshSubtasks copies subtasks with new IDs, all incomplete.
func freshSubtasks(subtasks []todo.Subtask) []todo.Subtask {
	out := make([]todo.Subtask, 0, len(subtasks))
	for _, s := range subtasks {
		out = append(out, todo.Subtask{ID: todo.GenerateID(), Title: s.Title})
	}
	return out
}
