package inbox

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/listing"
)

const bodyHeight = 6

// Model is the notification inbox.
type Model struct {
	app    *state.AppStore
	keys   *keys.KeyMap
	list   list.Model
	now    func() time.Time
	width  int
	height int
}

// New creates the inbox screen.
func New(app *state.AppStore, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		app:    app,
		keys:   k,
		list:   listing.New("Inbox", width, height-bodyHeight),
		now:    now,
		width:  width,
		height: height,
	}
	m.Refresh()
	return m
}

// Refresh rebuilds the rows from the store, newest first.
func (m *Model) Refresh() {
	now := m.now()
	all := m.app.Notifications()
	rows := make([]listing.Row, len(all))
	for i, n := range all {
		r := listing.Row{
			ID:     n.ID,
			Done:   n.Read,
			Badges: []string{theme.NotificationStyle(n.Type).Render("[" + string(n.Type) + "]")},
			Text:   n.Title,
			Meta:   listing.RelativeTime(n.CreatedAt, now),
		}
		if !n.Read {
			r.Alert = "NEW"
		}
		rows[i] = r
	}
	m.list.Title = fmt.Sprintf("Inbox · %d unread", m.app.UnreadCount())
	listing.SetRows(&m.list, rows)
}

func (m Model) selected() (model.Notification, bool) {
	r, ok := listing.Selected(m.list)
	if !ok {
		return model.Notification{}, false
	}
	for _, n := range m.app.Notifications() {
		if n.ID == r.ID {
			return n, true
		}
	}
	return model.Notification{}, false
}

// Update handles messages for the inbox.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.MarkRead):
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.app.MarkRead(n.ID)
		m.Refresh()
		if n.DeepLink != "" {
			return m, ui.Follow(n.DeepLink)
		}
		return m, nil
	case key.Matches(km, m.keys.MarkAllRead):
		m.app.MarkAllRead()
		m.Refresh()
		return m, nil
	case key.Matches(km, m.keys.ClearAll):
		if len(m.app.Notifications()) == 0 {
			return m, nil
		}
		m.app.Clear()
		m.Refresh()
		return m, ui.Flash("Inbox cleared. The owl will remember this.")
	case key.Matches(km, m.keys.TestNotify):
		return m, ui.Emit(ui.TestNotifyMsg{})
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list with the selected message below it.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.list.View(),
			theme.HelpStyle.Render(mascot.Face(model.MoodNeutral)+"  Nothing yet. Press t to poke the owl."),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.body())
}

func (m Model) body() string {
	n, ok := m.selected()
	if !ok {
		return ""
	}
	face := mascot.Face(n.MascotExpression)
	text := theme.NotificationStyle(n.Type).Bold(true).Render(face+"  "+n.Title) + "\n" + n.Message
	if n.DeepLink != "" {
		text += "\n" + theme.HelpStyle.Render("enter → "+n.DeepLink)
	}
	return lipgloss.NewStyle().
		Width(max(m.width-2, 10)).
		MaxHeight(bodyHeight).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(theme.ColorBorder).
		Render(text)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-bodyHeight, 3))
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "r/enter read · R read all · C clear · t test"
}
