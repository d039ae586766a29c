package listing

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prodowl/internal/theme"
)

// New returns a list.Model configured the way every screen uses it:
// one line per row, no built-in help or filtering.
func New(title string, width, height int) list.Model {
	l := list.New([]list.Item{}, Delegate{}, width, max(height, 3))
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle
	return l
}

// SetRows replaces the list contents, keeping the cursor in range.
func SetRows(l *list.Model, rows []Row) tea.Cmd {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	idx := l.Index()
	cmd := l.SetItems(items)
	if n := len(items); n > 0 && idx >= n {
		l.Select(n - 1)
	}
	return cmd
}

// Selected returns the row under the cursor.
func Selected(l list.Model) (Row, bool) {
	r, ok := l.SelectedItem().(Row)
	return r, ok
}
