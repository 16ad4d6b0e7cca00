// Package analytics computes derived views over a set of todos: aggregate
// counts, time totals, the Eisenhower urgency/importance matrix, and the
// per-category distribution.
package analytics

import (
	"math"
	"time"

	"github.com/amonks/tasknest/todo"
)

// Analytics is the aggregate snapshot of a set of todos.
type Analytics struct {
	TotalTasks     int `json:"totalTasks"`
	CompletedTasks int `json:"completedTasks"`

	// AverageTimeSpent is in whole seconds; 0 when TotalTasks is 0.
	AverageTimeSpent float64 `json:"averageTimeSpent"`

	UrgentTasks    int `json:"urgentTasks"`
	ImportantTasks int `json:"importantTasks"`

	TotalTimeSpent time.Duration `json:"-"`
	OverdueTasks   int           `json:"-"`
	DueTodayTasks  int           `json:"-"`
}

// CompletionRate returns the rounded percentage of completed tasks.
func (a Analytics) CompletionRate() int {
	if a.TotalTasks == 0 {
		return 0
	}
	return int(math.Round(100 * float64(a.CompletedTasks) / float64(a.TotalTasks)))
}

// Compute aggregates todos as of now. Time spent counts accumulated time only;
// running timers are not included until stopped.
func Compute(todos []todo.Todo, now time.Time) Analytics {
	var a Analytics
	for i := range todos {
		t := &todos[i]
		a.TotalTasks++
		if t.Completed {
			a.CompletedTasks++
		}
		if t.IsUrgent(now) {
			a.UrgentTasks++
		}
		if t.IsImportant() {
			a.ImportantTasks++
		}
		if t.IsOverdue(now) {
			a.OverdueTasks++
		}
		if t.IsDueToday(now) {
			a.DueTodayTasks++
		}
		a.TotalTimeSpent += t.TimeSpent
	}
	if a.TotalTasks > 0 {
		a.AverageTimeSpent = a.TotalTimeSpent.Seconds() / float64(a.TotalTasks)
	}
	return a
}

// CategoryCount is the number of todos in one category.
type CategoryCount struct {
	Category todo.Category `json:"category"`
	Count    int           `json:"count"`
}

// CategoryDistribution counts todos per category in canonical category order.
// Every category appears, including empty ones.
func CategoryDistribution(todos []todo.Todo) []CategoryCount {
	counts := make(map[todo.Category]int)
	for _, t := range todos {
		counts[t.Category]++
	}
	var out []CategoryCount
	for _, c := range todo.ValidCategories() {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}
