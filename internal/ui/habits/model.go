package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/streak"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/ui/listing"
)

// weekSpan is how many trailing days the completion strip shows.
const weekSpan = 7

// Model is the habit tracker screen.
type Model struct {
	habits  *state.HabitStore
	keys    *keys.KeyMap
	list    list.Model
	showAll bool
	now     func() time.Time
	width   int
	height  int
}

// New creates the habit screen.
func New(habits *state.HabitStore, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		habits: habits,
		keys:   k,
		list:   listing.New("Today's Habits", width, height-2),
		now:    now,
		width:  width,
		height: height,
	}
	m.Refresh()
	return m
}

// Refresh rebuilds the rows from the store.
func (m *Model) Refresh() {
	now := m.now()
	shown := m.habits.TodaysHabits()
	m.list.Title = "Today's Habits"
	if m.showAll {
		shown = m.habits.All()
		m.list.Title = "All Habits"
	}

	today := streak.Today(now)
	rows := make([]listing.Row, len(shown))
	for i, h := range shown {
		icon := h.Icon
		if icon == "" {
			icon = "•"
		}
		style := theme.HexStyle(h.Color)
		if h.Color == "" {
			style = lipgloss.NewStyle()
		}
		rows[i] = listing.Row{
			ID:     h.ID,
			Done:   h.CompletedOn(today),
			Badges: []string{style.Render(icon)},
			Text:   h.Title,
			Meta:   fmt.Sprintf("🔥%d  best %d  %s", h.Streak, h.LongestStreak, Strip(h, now)),
		}
	}
	listing.SetRows(&m.list, rows)
}

// Strip renders the last weekSpan days oldest first, filled where completed.
func Strip(h model.Habit, now time.Time) string {
	var b strings.Builder
	for i := weekSpan - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		switch {
		case h.CompletedOn(day.Format(model.DateLayout)):
			b.WriteString("■")
		case !h.DueOn(day):
			b.WriteString("·")
		default:
			b.WriteString("□")
		}
	}
	return b.String()
}

// Focus moves the cursor to the habit with id.
func (m *Model) Focus(id string) bool {
	if _, ok := m.habits.Get(id); !ok {
		return false
	}
	for pass := 0; pass < 2; pass++ {
		for i, it := range m.list.Items() {
			if r, ok := it.(listing.Row); ok && r.ID == id {
				m.list.Select(i)
				return true
			}
		}
		m.showAll = true
		m.Refresh()
	}
	return false
}

// Update handles messages for the habit screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.New):
		return m, ui.OpenForm(forms.NewHabit(nil, m.width, m.height))
	case key.Matches(km, m.keys.Filter):
		m.showAll = !m.showAll
		m.list.Select(0)
		m.Refresh()
		return m, nil
	}

	r, ok := listing.Selected(m.list)
	if ok {
		h, found := m.habits.Get(r.ID)
		if found {
			switch {
			case key.Matches(km, m.keys.Toggle):
				m.habits.ToggleCompletion(h.ID, streak.Today(m.now()))
				m.Refresh()
				h, _ = m.habits.Get(h.ID)
				if h.CompletedOn(streak.Today(m.now())) {
					return m, ui.Flash("%s done. Streak %d!", h.Title, h.Streak)
				}
				return m, ui.Flash("%s unchecked", h.Title)
			case key.Matches(km, m.keys.Edit):
				return m, ui.OpenForm(forms.NewHabit(&h, m.width, m.height))
			case key.Matches(km, m.keys.Delete):
				m.habits.Delete(h.ID)
				m.Refresh()
				return m, ui.Flash("Deleted habit %q", h.Title)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the habit list with a summary line.
func (m Model) View() string {
	todays := m.habits.TodaysHabits()
	summary := fmt.Sprintf("%d/%d done today · best running streak %d",
		m.habits.CompletedTodayCount(), len(todays), m.habits.MaxStreak())
	if len(m.list.Items()) == 0 {
		summary = "No habits yet. Press n to start one."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), theme.HelpStyle.Render(summary))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-2, 3))
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "x/space check today · n new · e edit · d delete · f today/all"
}
