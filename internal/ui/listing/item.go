package listing

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/theme"
)

// Row is one line in any of the entity lists. Badges are rendered
// before the title, Meta is shown dimmed after it.
type Row struct {
	ID     string
	Done   bool
	Alert  string
	Badges []string
	Text   string
	Meta   string
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Text }

// Title returns the row text for the list.
func (r Row) Title() string { return r.Text }

// Description returns the meta line for the list.
func (r Row) Description() string { return r.Meta }

// Delegate implements list.ItemDelegate for rendering rows.
type Delegate struct{}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(Row)
	if !ok {
		return
	}

	prefix := "○"
	if r.Done {
		prefix = "✓"
	}

	parts := []string{prefix}
	parts = append(parts, r.Badges...)
	parts = append(parts, r.Text)
	line := strings.Join(parts, " ")

	if r.Alert != "" {
		line += theme.OverdueStyle.Render(" " + r.Alert)
	}
	if r.Meta != "" {
		line += "  " + lipgloss.NewStyle().Foreground(theme.ColorGray).Render(r.Meta)
	}

	if r.Done {
		line = theme.DimmedStyle.Render(line)
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// RelativeTime returns a human-friendly distance from t to now.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < 0:
		return "in " + shortDuration(-d)
	case d < time.Minute:
		return "just now"
	default:
		return shortDuration(d) + " ago"
	}
}

func shortDuration(d time.Duration) string {
	switch {
	case d < time.Hour:
		return fmt.Sprintf("%dm", max(int(d.Minutes()), 1))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw", int(d.Hours()/24/7))
	}
}

// Clock formats seconds as mm:ss, or h:mm:ss past an hour.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
