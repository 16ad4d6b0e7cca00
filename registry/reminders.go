package registry

import (
	"github.com/amonks/tasknest/internal/eventlog"
	"github.com/amonks/tasknest/internal/notify"
	"github.com/amonks/tasknest/todo"
)

// Remind sends the reminders due for every open todo and returns them.
func (r *Registry) Remind() []string {
	var sent []string
	for _, p := range r.state.Projects {
		for i := range p.Todos {
			sent = append(sent, r.remind(&p.Todos[i])...)
		}
	}
	return sent
}

// remind sends the reminders policy allows for t. Delivery failures are
// logged and do not fail the calling mutation.
func (r *Registry) remind(t *todo.Todo) []string {
	messages := notify.Messages(t, r.now(), r.opts.NotifyPolicy)
	for _, message := range messages {
		if err := r.opts.Notifier.Notify(t.ID, message); err != nil {
			r.opts.Logger.Notification(eventlog.NotificationLog{TodoID: t.ID, Message: message, Err: err})
		}
	}
	return messages
}
