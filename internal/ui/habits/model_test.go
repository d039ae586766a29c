package habits

import (
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/listing"
)

// Monday.
var now = time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func newStore() *state.HabitStore {
	n := 0
	return state.NewHabitStore(state.HabitSnapshot{}, state.Options{
		Now:   clock,
		NewID: func() string { n++; return "h" + strconv.Itoa(n) },
	}, nil)
}

func keyMsg(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestToggleToday(t *testing.T) {
	st := newStore()
	st.Add(state.HabitInput{Title: "Read"})
	m := New(st, keys.DefaultKeyMap(), clock, 80, 20)

	m, cmd := m.Update(keyMsg("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, ui.FlashMsg("Read done. Streak 1!"), cmd())
	assert.Equal(t, 1, st.Streak("h1"))

	r, _ := listing.Selected(m.list)
	assert.True(t, r.Done)

	m, cmd = m.Update(keyMsg("x"))
	assert.Equal(t, ui.FlashMsg("Read unchecked"), cmd())
	assert.Equal(t, 0, st.Streak("h1"))
}

func TestTodayFilterHidesOffDays(t *testing.T) {
	st := newStore()
	st.Add(state.HabitInput{Title: "Daily"})
	st.Add(state.HabitInput{
		Title:      "Weekend run",
		Frequency:  model.FrequencyCustom,
		TargetDays: []time.Weekday{time.Saturday, time.Sunday},
	})
	m := New(st, keys.DefaultKeyMap(), clock, 80, 20)
	assert.Len(t, m.list.Items(), 1)

	require.True(t, m.Focus("h2"))
	assert.True(t, m.showAll)
	assert.Len(t, m.list.Items(), 2)
	r, _ := listing.Selected(m.list)
	assert.Equal(t, "h2", r.ID)
}

func TestStrip(t *testing.T) {
	h := model.Habit{
		Frequency:      model.FrequencyCustom,
		TargetDays:     []time.Weekday{time.Monday, time.Sunday, time.Saturday},
		CompletedDates: []string{"2026-05-03", "2026-05-04"},
	}
	// Tue 28 Apr .. Mon 4 May.
	assert.Equal(t, "····□■■", Strip(h, now))
}

func TestViewSummary(t *testing.T) {
	st := newStore()
	m := New(st, keys.DefaultKeyMap(), clock, 80, 20)
	assert.Contains(t, m.View(), "No habits yet")

	st.Add(state.HabitInput{Title: "Read"})
	st.ToggleCompletion("h1", "")
	m.Refresh()
	assert.Contains(t, m.View(), "1/1 done today")
}
