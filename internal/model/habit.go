package model

import "time"

// DateLayout is the calendar-day format used for habit completion dates.
const DateLayout = "2006-01-02"

// HabitFrequency controls on which days a habit is expected.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
	FrequencyCustom HabitFrequency = "custom"
)

// Habit is a recurring activity whose completions are tracked per calendar day.
type Habit struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Frequency   HabitFrequency `json:"frequency"`

	// TargetDays lists weekdays (0 = Sunday) for custom frequency.
	TargetDays []time.Weekday `json:"target_days,omitempty"`

	// Streak is derived from CompletedDates; never set it directly.
	Streak int `json:"streak"`

	// LongestStreak is the high-water mark of Streak.
	LongestStreak int `json:"longest_streak"`

	// CompletedDates is a sorted set of YYYY-MM-DD strings.
	CompletedDates []string `json:"completed_dates"`

	CreatedAt time.Time `json:"created_at"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
}

// DueOn reports whether the habit is expected on the weekday of day.
// Daily and weekly habits are always shown; custom habits only on their target days.
func (h Habit) DueOn(day time.Time) bool {
	if h.Frequency != FrequencyCustom || h.TargetDays == nil {
		return true
	}
	wd := day.Weekday()
	for _, d := range h.TargetDays {
		if d == wd {
			return true
		}
	}
	return false
}

// CompletedOn reports whether date (YYYY-MM-DD) is in the completion set.
func (h Habit) CompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}
