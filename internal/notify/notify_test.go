package notify

import (
	"testing"
	"time"

	"github.com/amonks/tasknest/todo"
)

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func TestMessages(t *testing.T) {
	tests := []struct {
		name      string
		priority  todo.Priority
		due       string
		completed bool
		policy    Policy
		want      []string
	}{
		{"urgent and due today", todo.PriorityHigh, "2024-03-15", false, DefaultPolicy(), []string{
			`Task "Ship" is urgent and needs attention!`,
			`Task "Ship" is due today!`,
		}},
		{"overdue high", todo.PriorityHigh, "2024-03-01", false, DefaultPolicy(), []string{
			`Task "Ship" is urgent and needs attention!`,
		}},
		{"due today medium", todo.PriorityMedium, "2024-03-15", false, DefaultPolicy(), []string{
			`Task "Ship" is due today!`,
		}},
		{"completed", todo.PriorityHigh, "2024-03-15", true, DefaultPolicy(), nil},
		{"urgent disabled", todo.PriorityHigh, "2024-03-15", false, Policy{DueToday: true}, []string{
			`Task "Ship" is due today!`,
		}},
		{"all disabled", todo.PriorityHigh, "2024-03-15", false, Policy{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := todo.ParseDate(tt.due)
			if err != nil {
				t.Fatalf("parse date: %v", err)
			}
			td, err := todo.New(todo.CreateInput{Title: "Ship", Priority: tt.priority, DueDate: due}, testNow)
			if err != nil {
				t.Fatalf("failed to create todo: %v", err)
			}
			td.Completed = tt.completed

			got := Messages(td, testNow, tt.policy)
			if len(got) != len(tt.want) {
				t.Fatalf("Messages() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Messages()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	if err := r.Notify("abcd1234", "hello"); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(r.Messages) != 1 || r.Messages[0] != "hello" {
		t.Errorf("unexpected messages %q", r.Messages)
	}
	if len(r.TodoIDs) != 1 || r.TodoIDs[0] != "abcd1234" {
		t.Errorf("unexpected todo ids %q", r.TodoIDs)
	}
}
