package app

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/streak"
	"github.com/nhle/prodowl/internal/ui"
)

const openTimeout = 10 * time.Second

// follow dispatches an in-app link into the stores, or opens anything
// else with the system opener.
func (m *Model) follow(url string) tea.Cmd {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}

	var cmd tea.Cmd
	handled := deeplink.Handle(url, deeplink.Handlers{
		CompleteTask: m.linkCompleteTask,
		OpenTask:     m.linkOpenTask,
		CheckHabit:   m.linkCheckHabit,
		StartTimer: func(minutes int) {
			m.stores.Timer.SetTargetMinutes(minutes)
			m.startTimer("Focus session", model.CategoryWork, "")
		},
		OpenNote: m.linkOpenNote,
		External: func(ext string) { cmd = m.openExternal(ext) },
	})
	if handled {
		m.deps.Logger.Debug().Str("url", url).Msg("deep link handled")
		return cmd
	}
	if strings.HasPrefix(url, deeplink.Scheme) {
		m.flash = "Unknown link " + url
		return nil
	}
	return m.openExternal(url)
}

func (m *Model) linkCompleteTask(id string) {
	t, ok := m.stores.Tasks.Get(id)
	if !ok {
		m.flash = "No task " + id
		return
	}
	m.stores.Tasks.Complete(id)
	m.setView(model.ViewTasks)
	m.tasks.Focus(id)
	m.flash = "Completed " + quote(t.Title)
}

func (m *Model) linkOpenTask(id string) {
	m.setView(model.ViewTasks)
	if !m.tasks.Focus(id) {
		m.flash = "No task " + id
	}
}

func (m *Model) linkCheckHabit(id string) {
	h, ok := m.stores.Habits.Get(id)
	if !ok {
		m.flash = "No habit " + id
		return
	}
	m.setView(model.ViewHabits)
	m.habits.Focus(id)
	today := streak.Today(m.deps.Now())
	if h.CompletedOn(today) {
		m.flash = quote(h.Title) + " is already done today"
		return
	}
	m.stores.Habits.ToggleCompletion(id, today)
	m.flash = quote(h.Title) + " checked off"
}

func (m *Model) linkOpenNote(id string) {
	m.setView(model.ViewNotes)
	if !m.notes.Focus(id) {
		m.flash = "No note " + id
	}
}

// openExternal opens url off the UI loop.
func (m *Model) openExternal(url string) tea.Cmd {
	o := m.deps.Opener
	if o == nil {
		m.flash = "No opener configured for " + url
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
		defer cancel()
		return ui.OpenedMsg{URL: url, Err: o.OpenURL(ctx, url)}
	}
}
