package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/model"
)

// tickMsg drives the focus timer once a second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// listen waits for the next pulse message. It must be re-issued after
// each one is handled.
func (m Model) listen() tea.Cmd {
	if m.deps.Pulse == nil {
		return nil
	}
	return m.deps.Pulse.Listen()
}

// onTick advances a running timer and celebrates the first time the
// session reaches its target.
func (m *Model) onTick() {
	timer := m.stores.Timer
	if !timer.Tick() || !timer.TargetReached() {
		return
	}
	st := timer.State()
	if st.CurrentEntry == nil || st.CurrentEntry.ID == m.targetHit {
		return
	}
	m.targetHit = st.CurrentEntry.ID

	msg := fmt.Sprintf("%d minutes on %q. Take a breather, you earned it.", st.TargetMinutes, st.CurrentEntry.Title)
	m.stores.App.AddNotification(model.Notification{
		Type:             model.NotificationCelebration,
		Title:            "Focus target reached",
		Message:          msg,
		MascotExpression: model.MoodCelebrating,
	})
	m.stores.App.SetMascotMood(model.MoodCelebrating, msg)
	m.deps.Coach.Alert(msg, "timer")
	m.deps.Logger.Info().Str("entry", st.CurrentEntry.ID).Int("minutes", st.TargetMinutes).Msg("focus target reached")
}

// checkMood runs the periodic mood rules.
func (m *Model) checkMood(at time.Time) {
	m.stores.Habits.Refresh()
	v, ok := mascot.CheckMood(m.stores.MoodInputs(at))
	if !ok {
		return
	}
	m.stores.App.SetMascotMood(v.Mood, v.Message)
	m.deps.Logger.Debug().Str("mood", string(v.Mood)).Msg("mascot mood changed")
}

// nudge runs one contextual notification check.
func (m *Model) nudge(at time.Time) {
	m.stores.Habits.Refresh()
	m.deps.Coach.Nudge(m.stores.NotifyContext(at), m.stores.App)
}

// reminderMsg is a scheduled reminder coming due.
type reminderMsg struct{ text string }

// remindAfter schedules a one-shot reminder.
func remindAfter(d time.Duration, text string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return reminderMsg{text: text} })
}

// remind raises a due reminder as a desktop alert.
func (m *Model) remind(r reminderMsg) {
	m.flash = "⏰ " + r.text
	if !m.deps.Coach.Alert(r.text, "reminder") {
		m.deps.Logger.Debug().Msg("reminder shown in status bar only")
	}
}

// syncWalletPoll keeps the account poll running only while a wallet is
// connected.
func (m Model) syncWalletPoll() {
	p := m.deps.Pulse
	if p == nil {
		return
	}
	if err := p.PollWallet(m.stores.Web3.Wallet().Connected); err != nil {
		m.deps.Logger.Error().Err(err).Msg("toggling wallet poll")
	}
}
