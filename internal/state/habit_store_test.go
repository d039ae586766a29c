package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/model"
)

func TestHabitAdd(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), nil)

	h, ok := s.Add(HabitInput{Title: "Read", Color: "#f00", Icon: "book"})
	require.True(t, ok)
	assert.Equal(t, model.FrequencyDaily, h.Frequency)
	assert.Zero(t, h.Streak)
	assert.Zero(t, h.LongestStreak)
	assert.Empty(t, h.CompletedDates)

	_, ok = s.Add(HabitInput{Title: " "})
	assert.False(t, ok)
	assert.Len(t, s.All(), 1)
}

func TestHabitToggleBuildsStreak(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), nil)
	h, _ := s.Add(HabitInput{Title: "Run"})

	require.True(t, s.ToggleCompletion(h.ID, "2026-05-02"))
	assert.Equal(t, 0, s.Streak(h.ID), "two days ago alone is a broken streak")

	require.True(t, s.ToggleCompletion(h.ID, "2026-05-03"))
	assert.Equal(t, 2, s.Streak(h.ID))

	require.True(t, s.ToggleCompletion(h.ID, ""))
	assert.Equal(t, 3, s.Streak(h.ID))

	got, _ := s.Get(h.ID)
	assert.Equal(t, []string{"2026-05-02", "2026-05-03", "2026-05-04"}, got.CompletedDates)
	assert.Equal(t, 3, got.LongestStreak)
	assert.Equal(t, 3, s.MaxStreak())
}

func TestHabitToggleTwiceRestores(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), nil)
	h, _ := s.Add(HabitInput{Title: "Run"})
	s.ToggleCompletion(h.ID, "2026-05-03")
	s.ToggleCompletion(h.ID, "2026-05-04")

	before, _ := s.Get(h.ID)
	for _, d := range []string{"2026-05-01", "2026-05-04", "2026-04-20"} {
		require.True(t, s.ToggleCompletion(h.ID, d))
		require.True(t, s.ToggleCompletion(h.ID, d))
		after, _ := s.Get(h.ID)
		assert.Equal(t, before.CompletedDates, after.CompletedDates, d)
		assert.Equal(t, before.Streak, after.Streak, d)
	}
}

func TestHabitLongestNeverDecreases(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), nil)
	h, _ := s.Add(HabitInput{Title: "Run"})

	seq := []string{"2026-05-02", "2026-05-03", "2026-05-04", "2026-05-03", "2026-05-04", "2026-05-01", "2026-05-03"}
	longest := 0
	for _, d := range seq {
		s.ToggleCompletion(h.ID, d)
		got, _ := s.Get(h.ID)
		assert.GreaterOrEqual(t, got.LongestStreak, got.Streak)
		assert.GreaterOrEqual(t, got.LongestStreak, longest)
		longest = got.LongestStreak
	}
	assert.Equal(t, 3, longest)
}

func TestHabitToggleRejectsBadInput(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	rec := &recorder[HabitSnapshot]{}
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), rec.Hook())
	h, _ := s.Add(HabitInput{Title: "Run"})

	assert.False(t, s.ToggleCompletion("missing", ""))
	assert.False(t, s.ToggleCompletion(h.ID, "05/04/2026"))
	assert.Len(t, rec.snaps, 1)
}

func TestHabitUpdateKeepsDerivedFields(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), nil)
	h, _ := s.Add(HabitInput{Title: "Run"})
	s.ToggleCompletion(h.ID, "")

	freq := model.FrequencyCustom
	require.True(t, s.Update(h.ID, HabitPatch{Title: ptr("Jog"), Frequency: &freq, TargetDays: []time.Weekday{time.Monday}}))
	got, _ := s.Get(h.ID)
	assert.Equal(t, "Jog", got.Title)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, []string{"2026-05-04"}, got.CompletedDates)
}

func TestHabitTodaysHabits(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8)) // Monday
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), nil)
	daily, _ := s.Add(HabitInput{Title: "Daily"})
	s.Add(HabitInput{Title: "Weekend", Frequency: model.FrequencyCustom, TargetDays: []time.Weekday{time.Saturday, time.Sunday}})
	monday, _ := s.Add(HabitInput{Title: "Monday", Frequency: model.FrequencyCustom, TargetDays: []time.Weekday{time.Monday}})

	got := ids(s.TodaysHabits(), func(h model.Habit) string { return h.ID })
	assert.Equal(t, []string{daily.ID, monday.ID}, got)

	s.ToggleCompletion(monday.ID, "")
	assert.Equal(t, 1, s.CompletedTodayCount())
}

func TestHabitRefreshDecaysStreak(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	rec := &recorder[HabitSnapshot]{}
	s := NewHabitStore(HabitSnapshot{}, testOptions(c), rec.Hook())
	h, _ := s.Add(HabitInput{Title: "Run"})
	s.ToggleCompletion(h.ID, "")
	require.Equal(t, 1, s.Streak(h.ID))

	c.Advance(24 * time.Hour)
	assert.False(t, s.Refresh(), "yesterday still counts")

	c.Advance(24 * time.Hour)
	assert.True(t, s.Refresh())
	assert.Equal(t, 0, s.Streak(h.ID))
	got, _ := s.Get(h.ID)
	assert.Equal(t, 1, got.LongestStreak)
}

func TestHabitLoadNormalizesDates(t *testing.T) {
	c := newClock(at(2026, 5, 4, 8))
	s := NewHabitStore(HabitSnapshot{Habits: []model.Habit{{
		ID:             "h",
		Title:          "Run",
		CompletedDates: []string{"2026-05-04", "garbage", "2026-05-03", "2026-05-04"},
	}}}, testOptions(c), nil)

	got, _ := s.Get("h")
	assert.Equal(t, []string{"2026-05-03", "2026-05-04"}, got.CompletedDates)
}
