// Package notify turns todo state into reminder messages and delivers them.
package notify

import (
	"fmt"
	"time"

	"github.com/amonks/tasknest/internal/eventlog"
	"github.com/amonks/tasknest/todo"
)

// Notifier delivers a reminder message about the todo with the given ID.
type Notifier interface {
	Notify(todoID, message string) error
}

// Policy selects which conditions trigger a reminder.
type Policy struct {
	Urgent   bool
	DueToday bool
}

// DefaultPolicy enables every reminder.
func DefaultPolicy() Policy {
	return Policy{Urgent: true, DueToday: true}
}

// UrgentMessage is the reminder for an urgent todo.
func UrgentMessage(title string) string {
	return fmt.Sprintf("Task %q is urgent and needs attention!", title)
}

// DueTodayMessage is the reminder for a todo due today.
func DueTodayMessage(title string) string {
	return fmt.Sprintf("Task %q is due today!", title)
}

// Messages returns the reminders policy allows for t at now. Completed todos
// never produce reminders.
func Messages(t *todo.Todo, now time.Time, policy Policy) []string {
	if t.Completed {
		return nil
	}
	var messages []string
	if policy.Urgent && t.IsUrgent(now) {
		messages = append(messages, UrgentMessage(t.Title))
	}
	if policy.DueToday && t.IsDueToday(now) {
		messages = append(messages, DueTodayMessage(t.Title))
	}
	return messages
}

// LogNotifier forwards reminders to an event log.
type LogNotifier struct {
	Logger eventlog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(todoID, message string) error {
	if n.Logger != nil {
		n.Logger.Notification(eventlog.NotificationLog{TodoID: todoID, Message: message})
	}
	return nil
}

// Recorder keeps every message it is given. Err, when set, is returned
// from Notify after recording.
type Recorder struct {
	Messages []string
	TodoIDs  []string
	Err      error
}

// Notify implements Notifier.
func (r *Recorder) Notify(todoID, message string) error {
	r.Messages = append(r.Messages, message)
	r.TodoIDs = append(r.TodoIDs, todoID)
	return r.Err
}

// Discard drops every message.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(string, string) error {
	return nil
}
