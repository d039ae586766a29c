package notes

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
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

const previewHeight = 8

// Model is the notes screen.
type Model struct {
	notes       *state.NoteStore
	keys        *keys.KeyMap
	list        list.Model
	searchInput textinput.Model
	searching   bool
	query       string
	now         func() time.Time
	width       int
	height      int
}

// New creates the notes screen.
func New(notes *state.NoteStore, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	si := textinput.New()
	si.Placeholder = "search titles, content, #tag..."
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		notes:       notes,
		keys:        k,
		list:        listing.New("Notes", width, height-previewHeight),
		searchInput: si,
		now:         now,
		width:       width,
		height:      height,
	}
	m.Refresh()
	return m
}

// Refresh rebuilds the rows: pinned first, then most recently updated.
func (m *Model) Refresh() {
	var shown []model.Note
	switch {
	case strings.HasPrefix(m.query, "#"):
		shown = m.notes.ByTag(strings.TrimPrefix(m.query, "#"))
	case m.query != "":
		shown = m.notes.Search(m.query)
	default:
		shown = m.notes.All()
	}
	Sort(shown)

	now := m.now()
	rows := make([]listing.Row, len(shown))
	for i, n := range shown {
		r := listing.Row{ID: n.ID, Text: n.Title, Meta: listing.RelativeTime(n.UpdatedAt, now)}
		if n.Pinned {
			r.Badges = append(r.Badges, "📌")
		}
		if len(n.Tags) > 0 {
			r.Badges = append(r.Badges, lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("#"+strings.Join(n.Tags, " #")))
		}
		rows[i] = r
	}

	m.list.Title = "Notes"
	if m.query != "" {
		m.list.Title = "Notes · " + m.query
	}
	listing.SetRows(&m.list, rows)
}

// Sort orders pinned notes first, then by most recent update.
func Sort(notes []model.Note) {
	slices.SortStableFunc(notes, func(a, b model.Note) int {
		if a.Pinned != b.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
}

// Capturing reports whether the search box has focus.
func (m Model) Capturing() bool { return m.searching }

// Focus clears any search and moves the cursor to the note with id.
func (m *Model) Focus(id string) bool {
	if _, ok := m.notes.Get(id); !ok {
		return false
	}
	m.query = ""
	m.Refresh()
	for i, it := range m.list.Items() {
		if r, ok := it.(listing.Row); ok && r.ID == id {
			m.list.Select(i)
			return true
		}
	}
	return false
}

// Update handles messages for the notes screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	if m.searching {
		return m.updateSearch(km)
	}

	switch {
	case key.Matches(km, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.query)
		return m, m.searchInput.Focus()
	case key.Matches(km, m.keys.Back):
		if m.query != "" {
			m.query = ""
			m.Refresh()
			return m, nil
		}
	case key.Matches(km, m.keys.New):
		return m, ui.OpenForm(forms.NewNote(nil, m.width, m.height))
	}

	if r, ok := listing.Selected(m.list); ok {
		n, found := m.notes.Get(r.ID)
		if found {
			switch {
			case key.Matches(km, m.keys.Edit), km.String() == "enter":
				return m, ui.OpenForm(forms.NewNote(&n, m.width, m.height))
			case key.Matches(km, m.keys.Pin):
				m.notes.TogglePin(n.ID)
				m.Refresh()
				return m, nil
			case key.Matches(km, m.keys.Delete):
				m.notes.Delete(n.ID)
				m.Refresh()
				return m, ui.Flash("Deleted note %q", n.Title)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(km tea.KeyMsg) (Model, tea.Cmd) {
	switch km.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.query = strings.TrimSpace(m.searchInput.Value())
		m.list.Select(0)
		m.Refresh()
		return m, nil
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(km)
	return m, cmd
}

// View renders the list with a preview of the selected note.
func (m Model) View() string {
	parts := []string{}
	if m.searching {
		parts = append(parts, m.searchInput.View())
	}
	parts = append(parts, m.list.View(), m.preview())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) preview() string {
	r, ok := listing.Selected(m.list)
	if !ok {
		return theme.HelpStyle.Render("No notes. Press n to write one.")
	}
	n, _ := m.notes.Get(r.ID)
	body := n.Content
	if strings.TrimSpace(body) == "" {
		body = theme.HelpStyle.Render("(empty)")
	}
	return lipgloss.NewStyle().
		Width(max(m.width-2, 10)).
		MaxHeight(previewHeight).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(theme.ColorBorder).
		Render(body)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.searchInput.Width = width - 4
	m.list.SetSize(width, max(height-previewHeight, 3))
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	if m.searching {
		return "enter search · esc cancel · #tag filters by tag"
	}
	return "n new · enter/e edit · p pin · d delete · / search"
}
