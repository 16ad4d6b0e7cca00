// Package eventlog records what the registry did: saves, load fallbacks,
// notifications, and recurrences.
package eventlog

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Logger captures registry events.
type Logger interface {
	Saved(SaveLog)
	SaveFailed(SaveFailedLog)
	LoadFallback(FallbackLog)
	Notification(NotificationLog)
	Recurred(RecurrenceLog)
}

// SaveLog describes a successful save.
type SaveLog struct {
	Key      string
	Bytes    int
	Projects int
	Todos    int
}

// SaveFailedLog describes a failed save. The in-memory change is kept.
type SaveFailedLog struct {
	Key string
	Err error
}

// FallbackLog describes a load that fell back to a fresh state.
type FallbackLog struct {
	Key    string
	Reason string
	Err    error
}

// NotificationLog describes a notification trigger. Err is set when
// delivery failed.
type NotificationLog struct {
	TodoID  string
	Message string
	Err     error
}

// RecurrenceLog describes the next occurrence spawned by completing a
// recurring todo.
type RecurrenceLog struct {
	TodoID      string
	NextID      string
	Title       string
	NextDueDate string
}

type noopLogger struct{}

func (noopLogger) Saved(SaveLog)                {}
func (noopLogger) SaveFailed(SaveFailedLog)     {}
func (noopLogger) LoadFallback(FallbackLog)     {}
func (noopLogger) Notification(NotificationLog) {}
func (noopLogger) Recurred(RecurrenceLog)       {}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return noopLogger{}
}

// ConsoleLogger writes formatted log output.
type ConsoleLogger struct {
	writer      io.Writer
	headerStyle lipgloss.Style
	warnStyle   lipgloss.Style
	verbose     bool
	started     bool
}

// NewConsoleLogger builds a styled logger for interactive output. Successful
// saves are only reported when verbose is set.
func NewConsoleLogger(writer io.Writer, verbose bool) *ConsoleLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &ConsoleLogger{
		writer:      writer,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		warnStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		verbose:     verbose,
	}
}

// Saved logs a successful save.
func (logger *ConsoleLogger) Saved(entry SaveLog) {
	if logger == nil || !logger.verbose {
		return
	}
	body := fmt.Sprintf("%d bytes, %d projects, %d todos under %q", entry.Bytes, entry.Projects, entry.Todos, entry.Key)
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render("Saved:"), 0),
		formatLogBody(body, documentIndent),
	)
}

// SaveFailed logs a failed save.
func (logger *ConsoleLogger) SaveFailed(entry SaveFailedLog) {
	if logger == nil {
		return
	}
	body := fmt.Sprintf("Changes were not saved: %v", entry.Err)
	logger.writeBlock(
		formatLogLabel(logger.warnStyle.Render("Save failed:"), 0),
		formatLogBody(body, documentIndent),
	)
}

// LoadFallback logs a load that started from a fresh state.
func (logger *ConsoleLogger) LoadFallback(entry FallbackLog) {
	if logger == nil {
		return
	}
	// A first run with nothing stored is not worth a warning.
	if entry.Err == nil && !logger.verbose {
		return
	}
	body := entry.Reason
	if entry.Err != nil {
		body = fmt.Sprintf("%s: %v", entry.Reason, entry.Err)
	}
	logger.writeBlock(
		formatLogLabel(logger.warnStyle.Render("Starting from a fresh state:"), 0),
		formatLogBody(body, documentIndent),
	)
}

// Notification logs a notification message.
func (logger *ConsoleLogger) Notification(entry NotificationLog) {
	if logger == nil {
		return
	}
	if entry.Err != nil {
		body := fmt.Sprintf("%s (%s): %v", entry.Message, entry.TodoID, entry.Err)
		logger.writeBlock(
			formatLogLabel(logger.warnStyle.Render("Reminder not delivered:"), 0),
			formatLogBody(body, documentIndent),
		)
		return
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render("Reminder:"), 0),
		formatLogBody(entry.Message, documentIndent),
	)
}

// Recurred logs a spawned occurrence of a recurring todo.
func (logger *ConsoleLogger) Recurred(entry RecurrenceLog) {
	if logger == nil {
		return
	}
	body := fmt.Sprintf("Next %q is %s", entry.Title, entry.NextID)
	if entry.NextDueDate != "" {
		body += ", due " + entry.NextDueDate
	}
	logger.writeBlock(
		formatLogLabel(logger.headerStyle.Render("Recurring:"), 0),
		formatLogBody(body, documentIndent),
	)
}

func (logger *ConsoleLogger) writeBlock(lines ...string) {
	if len(lines) == 0 {
		return
	}
	if logger.started {
		fmt.Fprintln(logger.writer)
	}
	logger.started = true
	for _, line := range lines {
		fmt.Fprintln(logger.writer, line)
	}
}

func formatLogLabel(label string, indent int) string {
	if strings.TrimSpace(label) == "" {
		return ""
	}
	return IndentBlock(label, indent)
}

func formatLogBody(body string, indent int) string {
	body = strings.TrimRight(body, "\r\n")
	if strings.TrimSpace(body) == "" {
		body = "-"
	}
	return ReflowIndentedText(body, lineWidth, indent)
}
