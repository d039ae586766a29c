package socialview

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/social"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/ui/listing"
)

// Model is the social tasks screen.
type Model struct {
	social *state.SocialStore
	opener deeplink.Opener
	keys   *keys.KeyMap
	list   list.Model
	now    func() time.Time
	width  int
	height int
}

// New creates the social screen.
func New(st *state.SocialStore, opener deeplink.Opener, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		social: st,
		opener: opener,
		keys:   k,
		list:   listing.New("Social", width, height-3),
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
	tasks := m.social.All()
	rows := make([]listing.Row, len(tasks))
	for i, t := range tasks {
		p := social.Platforms[t.Platform]
		r := listing.Row{
			ID:     t.ID,
			Done:   t.Completed,
			Badges: []string{theme.HexStyle(p.Color).Render(p.Icon)},
			Text:   t.Title,
			Meta:   t.Description,
		}
		if t.Deadline != nil && !t.Completed {
			if t.Deadline.Before(now) {
				r.Alert = "LATE"
			} else {
				r.Meta = strings.TrimSpace(r.Meta + " · due " + listing.RelativeTime(*t.Deadline, now))
			}
		}
		rows[i] = r
	}
	listing.SetRows(&m.list, rows)
}

// Update handles messages for the social screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, m.keys.New):
		return m, ui.OpenForm(forms.NewSocial(m.width, m.height))
	case key.Matches(km, m.keys.Samples):
		m.social.LoadSamples()
		m.Refresh()
		return m, ui.Flash("Loaded sample social tasks")
	}

	if r, ok := listing.Selected(m.list); ok {
		t, found := m.social.Get(r.ID)
		if found {
			switch {
			case key.Matches(km, m.keys.Execute):
				return m, ExecuteCmd(t, m.opener, m.social.Timeout())
			case key.Matches(km, m.keys.Toggle):
				if !t.Completed {
					m.social.Complete(t.ID)
					m.Refresh()
					return m, ui.Flash("Nice. %s ticked off", social.Platforms[t.Platform].Name)
				}
				return m, nil
			case key.Matches(km, m.keys.Delete):
				m.social.Delete(t.ID)
				m.Refresh()
				return m, ui.Flash("Deleted %q", t.Title)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// ExecuteCmd opens task off the UI loop and reports the URL used.
func ExecuteCmd(task model.SocialTask, opener deeplink.Opener, timeout time.Duration) tea.Cmd {
	if opener == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*timeout+time.Second)
		defer cancel()
		url, err := social.Execute(ctx, task, opener, timeout)
		return ui.OpenedMsg{URL: url, Err: err}
	}
}

// View renders the list with per-platform totals.
func (m Model) View() string {
	metrics := m.social.Metrics()
	var stats []string
	for _, p := range model.SocialPlatforms {
		info := social.Platforms[p]
		stats = append(stats, fmt.Sprintf("%s %d", info.Icon, metrics[p].TasksCompleted))
	}
	summary := fmt.Sprintf("%d pending · done: %s", len(m.social.Pending()), strings.Join(stats, "  "))
	if len(m.list.Items()) == 0 {
		summary = "No social chores. Press n to add one or L to load samples."
	}
	nag := ""
	if r, ok := listing.Selected(m.list); ok {
		if t, found := m.social.Get(r.ID); found && !t.Completed {
			nag = NagFor(t)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.list.View(),
		theme.HelpStyle.Render(summary),
		lipgloss.NewStyle().Foreground(theme.ColorOwl).Render(nag),
	)
}

// NagFor picks a guilt line for task that stays the same across redraws.
func NagFor(task model.SocialTask) string {
	h := fnv.New64a()
	h.Write([]byte(task.ID))
	r := rand.New(rand.NewPCG(h.Sum64(), 0))
	return social.Nag(r, task.Platform, nagFill)
}

var nagFill = map[string]string{"friend": "Your rival", "count": "12", "days": "3"}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-3, 3))
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "o/enter open · x done · n new · d delete · L samples"
}
