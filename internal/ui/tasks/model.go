package tasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/ui/listing"
)

// Filter selects which tasks are listed.
type Filter int

const (
	FilterOpen Filter = iota
	FilterToday
	FilterOverdue
	FilterCompleted
	FilterAll
)

var filterNames = []string{"open", "due today", "overdue", "completed", "all"}

func (f Filter) String() string { return filterNames[f] }

// Model is the task list screen.
type Model struct {
	tasks  *state.TaskStore
	keys   *keys.KeyMap
	list   list.Model
	filter Filter
	now    func() time.Time
	width  int
	height int
}

// New creates the task screen.
func New(tasks *state.TaskStore, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		tasks:  tasks,
		keys:   k,
		list:   listing.New("Tasks", width, height-detailHeight),
		now:    now,
		width:  width,
		height: height,
	}
	m.Refresh()
	return m
}

const detailHeight = 6

// Refresh rebuilds the rows from the store.
func (m *Model) Refresh() {
	now := m.now()
	var shown []model.Task
	switch m.filter {
	case FilterOpen:
		for _, t := range m.tasks.All() {
			if t.Status != model.TaskStatusCompleted && t.Status != model.TaskStatusCancelled {
				shown = append(shown, t)
			}
		}
	case FilterToday:
		shown = m.tasks.Today()
	case FilterOverdue:
		shown = m.tasks.Overdue()
	case FilterCompleted:
		shown = m.tasks.ByStatus(model.TaskStatusCompleted)
	default:
		shown = m.tasks.All()
	}

	rows := make([]listing.Row, len(shown))
	for i, t := range shown {
		rows[i] = row(t, now)
	}
	m.list.Title = fmt.Sprintf("Tasks · %s", m.filter)
	listing.SetRows(&m.list, rows)
}

func row(t model.Task, now time.Time) listing.Row {
	r := listing.Row{
		ID:   t.ID,
		Done: t.Status == model.TaskStatusCompleted,
		Badges: []string{
			theme.PriorityStyle(t.Priority).Render(priorityMark(t.Priority)),
			lipgloss.NewStyle().Foreground(theme.ColorGray).Render("[" + string(t.Category) + "]"),
		},
		Text: t.Title,
	}
	if t.Status == model.TaskStatusInProgress {
		r.Badges = append(r.Badges, theme.StatusStyle(t.Status).Render("▶"))
	}
	if t.DueDate != nil {
		r.Meta = "due " + listing.RelativeTime(*t.DueDate, now)
	}
	if t.IsOverdue(now) {
		r.Alert = "OVERDUE"
	}
	return r
}

func priorityMark(p model.TaskPriority) string {
	switch p {
	case model.PriorityUrgent:
		return "!!!"
	case model.PriorityHigh:
		return "!! "
	case model.PriorityMedium:
		return "!  "
	default:
		return "·  "
	}
}

// Focus moves the cursor to the task with id, widening the filter if needed.
func (m *Model) Focus(id string) bool {
	if _, ok := m.tasks.Get(id); !ok {
		return false
	}
	if !m.selectID(id) {
		m.filter = FilterAll
		m.Refresh()
		return m.selectID(id)
	}
	return true
}

func (m *Model) selectID(id string) bool {
	for i, it := range m.list.Items() {
		if r, ok := it.(listing.Row); ok && r.ID == id {
			m.list.Select(i)
			return true
		}
	}
	return false
}

func (m Model) selected() (model.Task, bool) {
	r, ok := listing.Selected(m.list)
	if !ok {
		return model.Task{}, false
	}
	return m.tasks.Get(r.ID)
}

// Update handles messages for the task screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.New):
		return m, ui.OpenForm(forms.NewTask(nil, m.width, m.height))

	case key.Matches(km, m.keys.Filter):
		m.filter = (m.filter + 1) % Filter(len(filterNames))
		m.list.Select(0)
		m.Refresh()
		return m, nil
	}

	t, ok := m.selected()
	if ok {
		switch {
		case key.Matches(km, m.keys.Edit):
			return m, ui.OpenForm(forms.NewTask(&t, m.width, m.height))

		case key.Matches(km, m.keys.Toggle):
			if t.Status == model.TaskStatusCompleted {
				pending := model.TaskStatusPending
				m.tasks.Update(t.ID, state.TaskPatch{Status: &pending})
				m.Refresh()
				return m, ui.Flash("Reopened %q", t.Title)
			}
			m.tasks.Complete(t.ID)
			m.Refresh()
			return m, ui.Flash("Completed %q", t.Title)

		case key.Matches(km, m.keys.Delete):
			m.tasks.Delete(t.ID)
			m.Refresh()
			return m, ui.Flash("Deleted %q", t.Title)

		case key.Matches(km, m.keys.TimerStart):
			return m, ui.Emit(forms.TimerSubmittedMsg{Title: t.Title, Category: t.Category, TaskID: t.ID})

		case key.Matches(km, m.keys.Execute):
			switch {
			case t.DeepLink != "":
				return m, ui.Follow(t.DeepLink)
			case t.ExternalURL != "":
				return m, ui.Follow(t.ExternalURL)
			}
			return m, ui.Flash("Nothing to open for %q", t.Title)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list and the selected task's details.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.detail())
}

func (m Model) detail() string {
	t, ok := m.selected()
	if !ok {
		return theme.HelpStyle.Render("No tasks here. Press n to add one, f to change the filter.")
	}

	var lines []string
	status := theme.StatusStyle(t.Status).Render(string(t.Status))
	lines = append(lines, fmt.Sprintf("%s · %s · %s", status, t.Priority, t.Category))
	if t.Description != "" {
		lines = append(lines, t.Description)
	}
	if t.DueDate != nil {
		lines = append(lines, "Due "+t.DueDate.Format("Mon Jan 2 15:04"))
	}
	if len(t.Tags) > 0 {
		lines = append(lines, "#"+strings.Join(t.Tags, " #"))
	}
	link := deeplink.Generate(deeplink.Link{Action: deeplink.ActionCompleteTask, ID: t.ID})
	lines = append(lines, theme.HelpStyle.Render("Complete from anywhere: "+link))

	return lipgloss.NewStyle().
		Width(max(m.width-2, 10)).
		MaxHeight(detailHeight).
		Render(strings.Join(lines, "\n"))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-detailHeight, 3))
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "n new · e edit · x complete · d delete · s focus · o open · f filter"
}
