package state

import (
	"slices"
	"strings"
	"time"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/streak"
)

// HabitSnapshot is the persisted form of HabitStore.
type HabitSnapshot struct {
	Habits []model.Habit `json:"habits"`
}

// HabitInput holds the user-supplied fields of a new habit.
type HabitInput struct {
	Title       string
	Description string
	Frequency   model.HabitFrequency
	TargetDays  []time.Weekday
	Color       string
	Icon        string
}

// HabitPatch is a partial update. Derived fields cannot be patched.
type HabitPatch struct {
	Title       *string
	Description *string
	Frequency   *model.HabitFrequency
	TargetDays  []time.Weekday
	Color       *string
	Icon        *string
}

// HabitStore owns habits and keeps their streaks in step with their
// completion dates.
type HabitStore struct {
	habits []model.Habit
	opts   Options
	hook   Hook[HabitSnapshot]
}

// NewHabitStore creates a HabitStore seeded with initial.
func NewHabitStore(initial HabitSnapshot, opts Options, hook Hook[HabitSnapshot]) *HabitStore {
	habits := make([]model.Habit, len(initial.Habits))
	for i, h := range initial.Habits {
		h.CompletedDates = streak.Normalize(h.CompletedDates)
		habits[i] = h
	}
	return &HabitStore{habits: habits, opts: opts.withDefaults(), hook: hook}
}

// Snapshot returns a copy of the store's state.
func (s *HabitStore) Snapshot() HabitSnapshot {
	out := make([]model.Habit, len(s.habits))
	for i, h := range s.habits {
		h.CompletedDates = slices.Clone(h.CompletedDates)
		h.TargetDays = slices.Clone(h.TargetDays)
		out[i] = h
	}
	return HabitSnapshot{Habits: out}
}

func (s *HabitStore) commit() { emit(s.hook, s.Snapshot()) }

func (s *HabitStore) index(id string) int {
	return slices.IndexFunc(s.habits, func(h model.Habit) bool { return h.ID == id })
}

// Add creates a habit with no completions. A blank title is ignored.
func (s *HabitStore) Add(in HabitInput) (model.Habit, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Habit{}, false
	}
	h := model.Habit{
		ID:             s.opts.NewID(),
		Title:          title,
		Description:    in.Description,
		Frequency:      in.Frequency,
		TargetDays:     slices.Clone(in.TargetDays),
		CompletedDates: []string{},
		CreatedAt:      s.opts.Now(),
		Color:          in.Color,
		Icon:           in.Icon,
	}
	if h.Frequency == "" {
		h.Frequency = model.FrequencyDaily
	}
	s.habits = append(s.habits, h)
	s.commit()
	return h, true
}

// Update merges p into the habit with id.
func (s *HabitStore) Update(id string, p HabitPatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return false
	}
	h := s.habits[i]
	if p.Title != nil {
		h.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.TargetDays != nil {
		h.TargetDays = slices.Clone(p.TargetDays)
	}
	if p.Color != nil {
		h.Color = *p.Color
	}
	if p.Icon != nil {
		h.Icon = *p.Icon
	}
	s.habits[i] = h
	s.commit()
	return true
}

// Delete removes the habit with id.
func (s *HabitStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.habits = slices.Delete(s.habits, i, i+1)
	s.commit()
	return true
}

// ToggleCompletion adds date to the habit's completions, or removes it if
// already present, then recomputes the streak from the full set. An empty
// date means today. Dates that are not YYYY-MM-DD are ignored.
func (s *HabitStore) ToggleCompletion(id, date string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	now := s.opts.Now()
	if date == "" {
		date = streak.Today(now)
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return false
	}

	h := s.habits[i]
	if j, found := slices.BinarySearch(h.CompletedDates, date); found {
		h.CompletedDates = slices.Delete(slices.Clone(h.CompletedDates), j, j+1)
	} else {
		h.CompletedDates = slices.Insert(slices.Clone(h.CompletedDates), j, date)
	}
	s.habits[i] = recompute(h, now)
	s.commit()
	return true
}

// Refresh recomputes every streak against the current day, which may have
// advanced since the last mutation. It persists only when something moved.
func (s *HabitStore) Refresh() bool {
	now := s.opts.Now()
	changed := false
	for i, h := range s.habits {
		r := recompute(h, now)
		if r.Streak != h.Streak || r.LongestStreak != h.LongestStreak {
			s.habits[i] = r
			changed = true
		}
	}
	if changed {
		s.commit()
	}
	return changed
}

func recompute(h model.Habit, now time.Time) model.Habit {
	h.Streak = streak.Calculate(h.CompletedDates, now)
	h.LongestStreak = max(h.LongestStreak, h.Streak)
	return h
}

// All returns every habit in insertion order.
func (s *HabitStore) All() []model.Habit { return s.Snapshot().Habits }

// Get returns the habit with id.
func (s *HabitStore) Get(id string) (model.Habit, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Habit{}, false
	}
	return s.habits[i], true
}

// Streak returns the current streak of the habit with id, or 0.
func (s *HabitStore) Streak(id string) int {
	h, _ := s.Get(id)
	return h.Streak
}

// TodaysHabits returns habits expected today.
func (s *HabitStore) TodaysHabits() []model.Habit {
	now := s.opts.Now()
	var out []model.Habit
	for _, h := range s.habits {
		if h.DueOn(now) {
			out = append(out, h)
		}
	}
	return out
}

// CompletedTodayCount counts habits with a completion recorded today.
func (s *HabitStore) CompletedTodayCount() int {
	today := streak.Today(s.opts.Now())
	n := 0
	for _, h := range s.habits {
		if h.CompletedOn(today) {
			n++
		}
	}
	return n
}

// MaxStreak returns the best current streak across all habits.
func (s *HabitStore) MaxStreak() int {
	best := 0
	for _, h := range s.habits {
		best = max(best, h.Streak)
	}
	return best
}
