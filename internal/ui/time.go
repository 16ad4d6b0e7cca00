package ui

import (
	"fmt"
	"time"

	"github.com/amonks/tasknest/todo"
)

// FormatDurationShort formats a duration using its largest unit (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	seconds := int64(max(duration, 0).Truncate(time.Second).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	default:
		return fmt.Sprintf("%dd", seconds/(24*60*60))
	}
}

// FormatTimeSpent formats tracked time as "1h02m", "4m05s", or "9s".
// Zero renders as "-".
func FormatTimeSpent(duration time.Duration) string {
	seconds := int64(max(duration, 0).Truncate(time.Second).Seconds())
	hours, minutes, secs := seconds/3600, seconds/60%60, seconds%60
	switch {
	case seconds == 0:
		return "-"
	case hours > 0:
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm%02ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatDue describes a due date relative to now's calendar day, such as
// "2024-03-20 (in 5d)" or "2024-03-14 (1d overdue)". The zero date renders
// as "-".
func FormatDue(due todo.Date, now time.Time) string {
	if due.IsZero() {
		return "-"
	}
	today := todo.DateOf(now)
	days := int(due.StartIn(time.UTC).Sub(today.StartIn(time.UTC)).Hours() / 24)
	var relative string
	switch {
	case days == 0:
		relative = "today"
	case days == 1:
		relative = "tomorrow"
	case days > 1:
		relative = fmt.Sprintf("in %dd", days)
	default:
		relative = fmt.Sprintf("%dd overdue", -days)
	}
	return fmt.Sprintf("%s (%s)", due, relative)
}
