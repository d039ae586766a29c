package model

import "time"

// TimerStatus is the state of the focus timer.
type TimerStatus string

const (
	TimerIdle    TimerStatus = "idle"
	TimerRunning TimerStatus = "running"
	TimerPaused  TimerStatus = "paused"
	TimerBreak   TimerStatus = "break"
)

// DefaultTargetMinutes is the classic pomodoro length.
const DefaultTargetMinutes = 25

// TimeEntry records one focus session.
type TimeEntry struct {
	ID string `json:"id"`

	// TaskID is a soft reference; the task may no longer exist.
	TaskID string `json:"task_id,omitempty"`

	Title     string       `json:"title"`
	Category  TaskCategory `json:"category"`
	StartTime time.Time    `json:"start_time"`
	EndTime   *time.Time   `json:"end_time,omitempty"`

	// Duration is in seconds and only authoritative once EndTime is set.
	Duration int `json:"duration"`
}

// Closed reports whether the entry has been stopped.
func (e TimeEntry) Closed() bool {
	return e.EndTime != nil
}

// TimerState is the live state of the focus timer.
type TimerState struct {
	Status         TimerStatus `json:"status"`
	CurrentEntry   *TimeEntry  `json:"current_entry,omitempty"`
	ElapsedSeconds int         `json:"elapsed_seconds"`
	TargetMinutes  int         `json:"target_minutes"`
}

// RemainingSeconds is how much of the target is left, floored at zero.
func (s TimerState) RemainingSeconds() int {
	left := s.TargetMinutes*60 - s.ElapsedSeconds
	if left < 0 {
		return 0
	}
	return left
}
