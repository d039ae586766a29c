package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/web3"
)

const probeTimeout = 10 * time.Second

// ProbeResultMsg carries the outcome of a wallet bridge check.
type ProbeResultMsg struct {
	Accounts int
	Err      error
}

// Deps are what the settings screen reads.
type Deps struct {
	Config     *model.AppConfig
	ConfigPath string
	App        *state.AppStore
	Timer      *state.TimerStore
	Web3       *state.Web3Store
	Desktop    *notify.Desktop
}

// Model is the settings screen.
type Model struct {
	deps    Deps
	keys    *keys.KeyMap
	spinner spinner.Model

	probing bool
	probe   string
	probeOK bool

	width, height int
}

// New creates the settings screen.
func New(d Deps, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{deps: d, keys: k, spinner: sp, width: width, height: height}
}

// Refresh is a no-op; the screen reads its stores on every render.
func (m *Model) Refresh() {}

// Update handles messages for the settings screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProbeResultMsg:
		m.probing = false
		m.probeOK = msg.Err == nil
		if msg.Err != nil {
			m.probe = msg.Err.Error()
		} else {
			m.probe = fmt.Sprintf("bridge reachable, %d account(s) exposed", msg.Accounts)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.probing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, ui.OpenForm(forms.NewSettings(
				m.deps.App.UserName(),
				m.alertsAllowed(),
				m.deps.Timer.State().TargetMinutes,
				m.width, m.height,
			))
		case key.Matches(msg, m.keys.TestNotify):
			return m, ui.Emit(ui.TestNotifyMsg{})
		case key.Matches(msg, m.keys.Execute):
			if m.probing {
				return m, nil
			}
			p := m.deps.Web3.Provider()
			if p == nil {
				return m, ui.Flash("No wallet bridge configured")
			}
			m.probing = true
			m.probe = ""
			return m, tea.Batch(m.spinner.Tick, ProbeCmd(p))
		}
	}
	return m, nil
}

// ProbeCmd checks that the wallet bridge answers.
func ProbeCmd(p web3.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		accts, err := web3.Accounts(ctx, p)
		return ProbeResultMsg{Accounts: len(accts), Err: err}
	}
}

func (m Model) alertsAllowed() bool {
	return m.deps.Desktop != nil && m.deps.Desktop.Permission() == notify.PermissionGranted
}

// View renders the current preferences.
func (m Model) View() string {
	cfg := m.deps.Config
	name := m.deps.App.UserName()
	if name == "" {
		name = "(anonymous)"
	}
	permission := "default"
	if m.deps.Desktop != nil {
		permission = string(m.deps.Desktop.Permission())
	}
	bridge := cfg.Wallet.RPCURL
	if bridge == "" {
		bridge = "(none)"
	}

	rows := [][2]string{
		{"Name", name},
		{"Desktop alerts", permission},
		{"Focus target", fmt.Sprintf("%d min", m.deps.Timer.State().TargetMinutes)},
		{"Nag interval", fmt.Sprintf("every %d min, %.0f%% chance", cfg.Notifications.IntervalMinutes, cfg.Notifications.TriggerChance*100)},
		{"Mood check", fmt.Sprintf("every %d min", cfg.Mascot.CheckIntervalMinutes)},
		{"Web fallback", cfg.DeepLink.WebBaseURL},
		{"Wallet bridge", bridge},
		{"Database", cfg.Storage.Path},
		{"Config file", m.deps.ConfigPath},
	}

	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(16)
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Settings"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(r[1])
		b.WriteString("\n")
	}

	switch {
	case m.probing:
		b.WriteString("\n" + m.spinner.View() + " Checking wallet bridge...")
	case m.probe != "":
		style := theme.ErrorStyle
		if m.probeOK {
			style = lipgloss.NewStyle().Foreground(theme.ColorGreen)
		}
		b.WriteString("\n" + style.Render(m.probe))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(b.String())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "e edit · t test notification · enter check wallet bridge"
}
