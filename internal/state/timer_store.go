package state

import (
	"slices"

	"github.com/nhle/prodowl/internal/model"
)

// TimerSnapshot is the persisted form of TimerStore.
type TimerSnapshot struct {
	model.TimerState
	Entries []model.TimeEntry `json:"entries"`
}

// DefaultTimerSnapshot is an idle timer with the default target.
func DefaultTimerSnapshot(targetMinutes int) TimerSnapshot {
	if targetMinutes <= 0 {
		targetMinutes = model.DefaultTargetMinutes
	}
	return TimerSnapshot{
		TimerState: model.TimerState{Status: model.TimerIdle, TargetMinutes: targetMinutes},
		Entries:    []model.TimeEntry{},
	}
}

// TimerStore runs the focus timer and keeps the log of closed sessions.
type TimerStore struct {
	state   model.TimerState
	entries []model.TimeEntry
	opts    Options
	hook    Hook[TimerSnapshot]
}

// NewTimerStore creates a TimerStore seeded with initial.
func NewTimerStore(initial TimerSnapshot, opts Options, hook Hook[TimerSnapshot]) *TimerStore {
	st := initial.TimerState
	if st.Status == "" {
		st.Status = model.TimerIdle
	}
	if st.TargetMinutes <= 0 {
		st.TargetMinutes = model.DefaultTargetMinutes
	}
	return &TimerStore{state: st, entries: slices.Clone(initial.Entries), opts: opts.withDefaults(), hook: hook}
}

// Snapshot returns a copy of the store's state.
func (s *TimerStore) Snapshot() TimerSnapshot {
	st := s.state
	if st.CurrentEntry != nil {
		e := *st.CurrentEntry
		st.CurrentEntry = &e
	}
	return TimerSnapshot{TimerState: st, Entries: slices.Clone(s.entries)}
}

func (s *TimerStore) commit() { emit(s.hook, s.Snapshot()) }

// State returns the live timer state.
func (s *TimerStore) State() model.TimerState { return s.Snapshot().TimerState }

// Start opens a new session and starts counting from zero. Any session in
// progress is discarded.
func (s *TimerStore) Start(title string, category model.TaskCategory, taskID string) bool {
	if category == "" {
		category = model.CategoryWork
	}
	s.state.CurrentEntry = &model.TimeEntry{
		ID:        s.opts.NewID(),
		TaskID:    taskID,
		Title:     title,
		Category:  category,
		StartTime: s.opts.Now(),
	}
	s.state.Status = model.TimerRunning
	s.state.ElapsedSeconds = 0
	s.commit()
	return true
}

// Pause stops counting. Only a running timer can be paused.
func (s *TimerStore) Pause() bool {
	if s.state.Status != model.TimerRunning {
		return false
	}
	s.state.Status = model.TimerPaused
	s.commit()
	return true
}

// Resume continues a paused timer.
func (s *TimerStore) Resume() bool {
	if s.state.Status != model.TimerPaused {
		return false
	}
	s.state.Status = model.TimerRunning
	s.commit()
	return true
}

// Stop closes the current session with the elapsed duration, logs it and
// returns the timer to idle.
func (s *TimerStore) Stop() (model.TimeEntry, bool) {
	if s.state.CurrentEntry == nil {
		return model.TimeEntry{}, false
	}
	e := *s.state.CurrentEntry
	end := s.opts.Now()
	e.EndTime = &end
	e.Duration = s.state.ElapsedSeconds

	s.entries = append(s.entries, e)
	s.state.Status = model.TimerIdle
	s.state.CurrentEntry = nil
	s.state.ElapsedSeconds = 0
	s.commit()
	return e, true
}

// Reset abandons the current session without logging it.
func (s *TimerStore) Reset() bool {
	s.state.Status = model.TimerIdle
	s.state.CurrentEntry = nil
	s.state.ElapsedSeconds = 0
	s.commit()
	return true
}

// Tick advances a running timer by one second.
func (s *TimerStore) Tick() bool {
	if s.state.Status != model.TimerRunning {
		return false
	}
	s.state.ElapsedSeconds++
	s.commit()
	return true
}

// SetTargetMinutes changes the session target. Non-positive values are ignored.
func (s *TimerStore) SetTargetMinutes(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	s.state.TargetMinutes = minutes
	s.commit()
	return true
}

// TargetReached reports whether a running session has hit its target.
func (s *TimerStore) TargetReached() bool {
	return s.state.Status == model.TimerRunning && s.state.RemainingSeconds() == 0
}

// Entries returns every closed session.
func (s *TimerStore) Entries() []model.TimeEntry { return slices.Clone(s.entries) }

// TodaysEntries returns sessions started since midnight.
func (s *TimerStore) TodaysEntries() []model.TimeEntry {
	start := model.StartOfDay(s.opts.Now())
	var out []model.TimeEntry
	for _, e := range s.entries {
		if !e.StartTime.Before(start) {
			out = append(out, e)
		}
	}
	return out
}

// TotalTimeToday sums today's session durations in seconds.
func (s *TimerStore) TotalTimeToday() int {
	total := 0
	for _, e := range s.TodaysEntries() {
		total += e.Duration
	}
	return total
}

// TimeByCategory sums today's session durations for category in seconds.
func (s *TimerStore) TimeByCategory(category model.TaskCategory) int {
	total := 0
	for _, e := range s.TodaysEntries() {
		if e.Category == category {
			total += e.Duration
		}
	}
	return total
}
