package timer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/ui/listing"
)

// targetStep is how much +/- moves the target.
const targetStep = 5

// recentEntries is how many of today's sessions are listed.
const recentEntries = 5

// Model is the focus timer screen.
type Model struct {
	timer  *state.TimerStore
	tasks  *state.TaskStore
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the timer screen. tasks feeds the start form's task picker.
func New(timer *state.TimerStore, tasks *state.TaskStore, k *keys.KeyMap, width, height int) Model {
	return Model{timer: timer, tasks: tasks, keys: k, width: width, height: height}
}

// Refresh is a no-op; the timer view always renders from the store.
func (m *Model) Refresh() {}

// Update handles messages for the timer screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	st := m.timer.State()
	switch {
	case key.Matches(km, m.keys.TimerStart):
		if st.Status == model.TimerIdle {
			return m, ui.OpenForm(forms.NewTimer(m.openTasks(), m.width, m.height))
		}
		return m, ui.Flash("Stop the current session first")

	case key.Matches(km, m.keys.TimerPause):
		switch st.Status {
		case model.TimerRunning:
			m.timer.Pause()
			return m, ui.Flash("Paused")
		case model.TimerPaused:
			m.timer.Resume()
			return m, ui.Flash("Back to it")
		}

	case key.Matches(km, m.keys.TimerStop):
		if e, ok := m.timer.Stop(); ok {
			return m, ui.Flash("Logged %s on %q", listing.Clock(e.Duration), e.Title)
		}

	case key.Matches(km, m.keys.TimerReset):
		m.timer.Reset()
		return m, ui.Flash("Timer reset")

	case key.Matches(km, m.keys.TargetUp):
		m.timer.SetTargetMinutes(st.TargetMinutes + targetStep)

	case key.Matches(km, m.keys.TargetDown):
		m.timer.SetTargetMinutes(st.TargetMinutes - targetStep)
	}
	return m, nil
}

func (m Model) openTasks() []model.Task {
	var out []model.Task
	for _, t := range m.tasks.All() {
		if t.Status == model.TaskStatusPending || t.Status == model.TaskStatusInProgress {
			out = append(out, t)
		}
	}
	return out
}

// View renders the clock, progress and today's log.
func (m Model) View() string {
	st := m.timer.State()

	title := "Ready when you are"
	if st.CurrentEntry != nil {
		title = st.CurrentEntry.Title
	}

	clock := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorOwl).
		Render(listing.Clock(st.ElapsedSeconds))

	status := statusLine(st)
	bar := Bar(st, max(m.width-10, 10))

	var log []string
	entries := m.timer.TodaysEntries()
	slices.Reverse(entries)
	for i, e := range entries {
		if i == recentEntries {
			break
		}
		log = append(log, fmt.Sprintf("  %s  %-6s %s", e.StartTime.Format("15:04"), listing.Clock(e.Duration), e.Title))
	}
	if len(log) == 0 {
		log = append(log, theme.HelpStyle.Render("  No sessions yet today."))
	}

	var cats []string
	for _, c := range model.TaskCategories {
		if secs := m.timer.TimeByCategory(c); secs > 0 {
			cats = append(cats, fmt.Sprintf("%s %s", c, listing.Clock(secs)))
		}
	}

	parts := []string{
		theme.TitleStyle.Render("Focus · " + title),
		clock + "  " + status,
		bar,
		"",
		fmt.Sprintf("Today: %s focused", listing.Clock(m.timer.TotalTimeToday())),
	}
	if len(cats) > 0 {
		parts = append(parts, theme.HelpStyle.Render(strings.Join(cats, " · ")))
	}
	parts = append(parts, "")
	parts = append(parts, log...)

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(parts, "\n"))
}

func statusLine(st model.TimerState) string {
	target := fmt.Sprintf("target %dm", st.TargetMinutes)
	switch st.Status {
	case model.TimerRunning:
		if st.RemainingSeconds() == 0 {
			return theme.StatusStyle(model.TaskStatusCompleted).Render("target reached") + " · " + target
		}
		return fmt.Sprintf("%s left · %s", listing.Clock(st.RemainingSeconds()), target)
	case model.TimerPaused:
		return theme.StatusStyle(model.TaskStatusInProgress).Render("paused") + " · " + target
	}
	return target
}

// Bar renders progress toward the target in width cells.
func Bar(st model.TimerState, width int) string {
	total := st.TargetMinutes * 60
	filled := 0
	if total > 0 {
		filled = min(st.ElapsedSeconds*width/total, width)
	}
	return lipgloss.NewStyle().Foreground(theme.ColorOwl).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.ColorSubtle).Render(strings.Repeat("░", width-filled))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "s start · p/space pause · x stop & log · r reset · +/- target"
}
