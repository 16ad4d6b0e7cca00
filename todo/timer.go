package todo

import "time"

// IsTiming reports whether the timer is running.
func (t *Todo) IsTiming() bool {
	return t.TimerStartedAt != nil
}

// StartTiming starts the timer. It does nothing if the todo is completed or
// the timer is already running, and reports whether the timer was started.
func (t *Todo) StartTiming(now time.Time) bool {
	if t.Completed || t.IsTiming() {
		return false
	}
	started := now
	t.TimerStartedAt = &started
	return true
}

// StopTiming stops a running timer and adds the elapsed time to TimeSpent.
// It returns the time added, which is zero when the timer was not running or
// the clock moved backwards.
func (t *Todo) StopTiming(now time.Time) time.Duration {
	if !t.IsTiming() {
		return 0
	}
	elapsed := max(now.Sub(*t.TimerStartedAt), 0)
	t.TimeSpent += elapsed
	t.TimerStartedAt = nil
	t.UpdatedAt = now
	return elapsed
}

// Elapsed returns TimeSpent plus the running segment, if any.
func (t *Todo) Elapsed(now time.Time) time.Duration {
	if !t.IsTiming() {
		return t.TimeSpent
	}
	return t.TimeSpent + max(now.Sub(*t.TimerStartedAt), 0)
}
