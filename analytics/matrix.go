package analytics

import (
	"time"

	"github.com/amonks/tasknest/todo"
)

// Quadrant names one cell of the Eisenhower matrix.
type Quadrant string

const (
	// QuadrantDo holds urgent, important todos.
	QuadrantDo Quadrant = "urgent-important"
	// QuadrantSchedule holds important todos that are not urgent.
	QuadrantSchedule Quadrant = "not-urgent-important"
	// QuadrantDelegate holds urgent todos that are not important.
	QuadrantDelegate Quadrant = "urgent-not-important"
	// QuadrantEliminate holds the rest.
	QuadrantEliminate Quadrant = "not-urgent-not-important"
)

// Quadrants returns the quadrants in display order.
func Quadrants() []Quadrant {
	return []Quadrant{QuadrantDo, QuadrantSchedule, QuadrantDelegate, QuadrantEliminate}
}

// Title returns a display heading for q.
func (q Quadrant) Title() string {
	switch q {
	case QuadrantDo:
		return "Urgent & Important"
	case QuadrantSchedule:
		return "Not Urgent & Important"
	case QuadrantDelegate:
		return "Urgent & Not Important"
	case QuadrantEliminate:
		return "Not Urgent & Not Important"
	default:
		return string(q)
	}
}

// MatrixOptions configures ComputeMatrix.
type MatrixOptions struct {
	// IncludeCompleted keeps completed todos in the matrix. They are excluded
	// by default.
	IncludeCompleted bool
}

// Matrix partitions todos by urgency and importance.
type Matrix map[Quadrant][]todo.Todo

// Len returns the number of todos across all quadrants.
func (m Matrix) Len() int {
	n := 0
	for _, todos := range m {
		n += len(todos)
	}
	return n
}

// QuadrantOf classifies a single todo.
func QuadrantOf(t *todo.Todo, now time.Time) Quadrant {
	urgent, important := t.IsUrgent(now), t.IsImportant()
	switch {
	case urgent && important:
		return QuadrantDo
	case important:
		return QuadrantSchedule
	case urgent:
		return QuadrantDelegate
	default:
		return QuadrantEliminate
	}
}

// ComputeMatrix places each todo in exactly one quadrant, preserving input
// order within a quadrant.
func ComputeMatrix(todos []todo.Todo, now time.Time, opts MatrixOptions) Matrix {
	m := make(Matrix, 4)
	for _, q := range Quadrants() {
		m[q] = []todo.Todo{}
	}
	for i := range todos {
		t := &todos[i]
		if t.Completed && !opts.IncludeCompleted {
			continue
		}
		q := QuadrantOf(t, now)
		m[q] = append(m[q], t.Clone())
	}
	return m
}
