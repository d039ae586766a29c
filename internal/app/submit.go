package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/ui/forms"
)

// configSavedMsg is sent after the settings have been written to disk.
type configSavedMsg struct{ err error }

// submit applies a completed form to its store.
func (m *Model) submit(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case forms.TaskSubmittedMsg:
		if msg.ID == "" {
			t, ok := m.stores.Tasks.Add(msg.Input)
			if ok {
				m.setView(model.ViewTasks)
				m.tasks.Focus(t.ID)
				m.flash = "Added task " + quote(t.Title)
			}
			return nil
		}
		if m.stores.Tasks.Update(msg.ID, msg.Patch()) {
			m.flash = "Saved task " + quote(msg.Input.Title)
		}

	case forms.HabitSubmittedMsg:
		if msg.ID == "" {
			h, ok := m.stores.Habits.Add(msg.Input)
			if ok {
				m.setView(model.ViewHabits)
				m.habits.Focus(h.ID)
				m.flash = "New habit " + quote(h.Title) + ". Don't break the chain."
			}
			return nil
		}
		if m.stores.Habits.Update(msg.ID, msg.Patch()) {
			m.flash = "Saved habit " + quote(msg.Input.Title)
		}

	case forms.NoteSubmittedMsg:
		if msg.ID == "" {
			n, ok := m.stores.Notes.Add(msg.Title, msg.Content, msg.Tags)
			if ok {
				m.setView(model.ViewNotes)
				m.notes.Focus(n.ID)
				m.flash = "Saved note " + quote(n.Title)
			}
			return nil
		}
		if m.stores.Notes.Update(msg.ID, msg.Patch()) {
			m.flash = "Saved note " + quote(msg.Title)
		}

	case forms.SocialSubmittedMsg:
		if t, ok := m.stores.Social.Add(msg.Task); ok {
			m.flash = "Added social task " + quote(t.Title)
		}

	case forms.Web3SubmittedMsg:
		if t, ok := m.stores.Web3.Add(msg.Task); ok {
			m.flash = "Added web3 task " + quote(t.Title)
		}

	case forms.TimerSubmittedMsg:
		m.startTimer(msg.Title, msg.Category, msg.TaskID)

	case forms.SettingsSubmittedMsg:
		return m.applySettings(msg)
	}
	return nil
}

func (m *Model) startTimer(title string, category model.TaskCategory, taskID string) {
	if title == "" {
		title = "Focus session"
	}
	m.stores.Timer.Start(title, category, taskID)
	m.targetHit = ""
	m.setView(model.ViewTimer)
	m.flash = "Focusing on " + quote(title)
}

// applySettings updates the stores and the alert permission, then saves
// the config file in the background.
func (m *Model) applySettings(msg forms.SettingsSubmittedMsg) tea.Cmd {
	m.stores.App.SetUserName(msg.UserName)
	m.stores.Timer.SetTargetMinutes(msg.TargetMinutes)

	perm := m.deps.Coach.EnableAlerts(func() bool { return msg.Alerts }, m.stores.App)
	m.stores.App.SetAlertPermission(string(perm))
	switch {
	case msg.Alerts && perm != notify.PermissionGranted:
		m.flash = "Desktop alerts were already declined"
	default:
		m.flash = "Settings saved"
	}

	cfg := m.deps.Config
	cfg.User.Name = m.stores.App.UserName()
	cfg.Timer.TargetMinutes = m.stores.Timer.State().TargetMinutes
	cfg.Notifications.Enabled = perm == notify.PermissionGranted

	if m.deps.ConfigPath == "" {
		return nil
	}
	path, snapshot := m.deps.ConfigPath, *cfg
	return func() tea.Msg {
		return configSavedMsg{err: model.SaveConfig(path, &snapshot)}
	}
}

func quote(s string) string { return "\"" + s + "\"" }
