package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/pulse"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/command"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/ui/habits"
	helpview "github.com/nhle/prodowl/internal/ui/help"
	"github.com/nhle/prodowl/internal/ui/inbox"
	"github.com/nhle/prodowl/internal/ui/listing"
	"github.com/nhle/prodowl/internal/ui/notes"
	"github.com/nhle/prodowl/internal/ui/owl"
	"github.com/nhle/prodowl/internal/ui/settings"
	"github.com/nhle/prodowl/internal/ui/socialview"
	"github.com/nhle/prodowl/internal/ui/tasks"
	timerview "github.com/nhle/prodowl/internal/ui/timer"
	"github.com/nhle/prodowl/internal/ui/wallet"
	"github.com/nhle/prodowl/internal/web3"
)

// owlHeight is the space kept under the content for the mascot's bubble.
const owlHeight = 3

// overlay is what covers the active screen, if anything.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayCommand
	overlayForm
)

// Deps are the collaborators the root model drives.
type Deps struct {
	Stores *state.Stores
	Coach  *mascot.Coach

	// Pulse feeds the periodic checks. Nil disables them.
	Pulse *pulse.Pulse

	// Opener launches external URLs. Nil disables them.
	Opener deeplink.Opener

	Config     *model.AppConfig
	ConfigPath string

	Now    func() time.Time
	Logger zerolog.Logger
}

// Model is the root Bubble Tea model that routes between screens and
// overlays and applies form submissions and background results to the
// stores.
type Model struct {
	deps   Deps
	stores *state.Stores
	keys   *keys.KeyMap
	layout ui.Layout
	ready  bool

	tasks    tasks.Model
	habits   habits.Model
	timer    timerview.Model
	notes    notes.Model
	social   socialview.Model
	wallet   wallet.Model
	inbox    inbox.Model
	settings settings.Model

	overlay overlay
	help    helpview.Model
	command command.Model
	form    forms.Model

	flash string

	// targetHit is the session whose focus target was already celebrated.
	targetHit string
}

// New creates the root model.
func New(d Deps) Model {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Config == nil {
		d.Config = model.DefaultAppConfig()
	}
	k := keys.DefaultKeyMap()
	s := d.Stores
	w, h := 80, 24

	return Model{
		deps:   d,
		stores: s,
		keys:   k,
		layout: ui.NewLayout(w, h),

		tasks:  tasks.New(s.Tasks, k, d.Now, w, h),
		habits: habits.New(s.Habits, k, d.Now, w, h),
		timer:  timerview.New(s.Timer, s.Tasks, k, w, h),
		notes:  notes.New(s.Notes, k, d.Now, w, h),
		social: socialview.New(s.Social, d.Opener, k, d.Now, w, h),
		wallet: wallet.New(s.Web3, k, d.Now, w, h),
		inbox:  inbox.New(s.App, k, d.Now, w, h),
		settings: settings.New(settings.Deps{
			Config:     d.Config,
			ConfigPath: d.ConfigPath,
			App:        s.App,
			Timer:      s.Timer,
			Web3:       s.Web3,
			Desktop:    d.Coach.Desktop(),
		}, k, w, h),

		help:    helpview.New(k, w, h),
		command: command.New(paletteCommands, w, h),
	}
}

// Init starts the one-second timer tick and listens for pulse messages.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.listen())
}

// Update handles a message and then re-renders the active screen from
// its store.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.refreshActive()
	m.syncWalletPoll()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true
		if m.overlay == overlayForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			return m, cmd
		}
		return m, nil

	case tickMsg:
		m.onTick()
		return m, tick()

	case pulse.MoodCheckMsg:
		m.checkMood(msg.At)
		return m, m.listen()

	case pulse.NotifyCheckMsg:
		m.nudge(msg.At)
		return m, m.listen()

	case pulse.WalletPollMsg:
		return m, tea.Batch(wallet.AccountsCmd(m.stores.Web3.Provider()), m.listen())

	case wallet.AccountsMsg:
		if msg.Err != nil {
			m.deps.Logger.Warn().Err(msg.Err).Msg("wallet poll failed")
			return m, nil
		}
		m.stores.Web3.AccountsChanged(msg.Accounts)
		return m, nil

	case wallet.ConnectedMsg:
		if m.stores.Web3.FinishConnect(msg.Wallet, msg.Err) {
			m.flash = "Wallet connected: " + msg.Wallet.Address
		}
		return m, nil

	case wallet.SwitchedMsg:
		m.stores.Web3.FinishSwitch(msg.Chain, msg.Err)
		return m, nil

	case wallet.ExecutedMsg:
		m.stores.Web3.FinishExecute(msg.ID, msg.Result)
		m.flash = executedFlash(msg)
		return m, nil

	case ui.OpenedMsg:
		if msg.Err != nil {
			m.deps.Logger.Warn().Err(msg.Err).Str("url", msg.URL).Msg("open failed")
			m.flash = "Could not open link: " + msg.Err.Error()
		} else {
			m.flash = "Opened " + msg.URL
		}
		return m, nil

	case ui.FlashMsg:
		m.flash = string(msg)
		return m, nil

	case ui.LinkMsg:
		return m, m.follow(string(msg))

	case reminderMsg:
		m.remind(msg)
		return m, nil

	case ui.TestNotifyMsg:
		n := m.deps.Coach.Test(m.stores.App)
		m.flash = "Test notification: " + n.Message
		return m, nil

	case ui.OpenFormMsg:
		m.form = msg.Form
		m.form.SetSize(m.layout.ContentWidth(), m.contentHeight())
		m.overlay = overlayForm
		return m, m.form.Init()

	case forms.CancelMsg, helpview.CloseMsg, command.CancelMsg:
		m.overlay = overlayNone
		return m, nil

	case command.CommandMsg:
		m.overlay = overlayNone
		return m, m.run(string(msg))

	case forms.TaskSubmittedMsg, forms.HabitSubmittedMsg, forms.NoteSubmittedMsg,
		forms.SocialSubmittedMsg, forms.Web3SubmittedMsg, forms.TimerSubmittedMsg,
		forms.SettingsSubmittedMsg:
		m.overlay = overlayNone
		return m, m.submit(msg)

	case configSavedMsg:
		if msg.err != nil {
			m.deps.Logger.Error().Err(msg.err).Msg("saving config")
			m.flash = "Could not save settings: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m Model) handleKey(km tea.KeyMsg) (Model, tea.Cmd) {
	m.stores.App.Touch()
	m.flash = ""

	if km.String() == "ctrl+c" {
		return m, m.quit()
	}
	if m.overlay != overlayNone || m.capturing() {
		return m.forward(km)
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, m.quit()
	case key.Matches(km, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil
	case key.Matches(km, m.keys.Command):
		m.overlay = overlayCommand
		return m, m.command.Focus()
	case key.Matches(km, m.keys.NextView):
		m.cycleView(1)
		return m, nil
	case key.Matches(km, m.keys.PrevView):
		m.cycleView(-1)
		return m, nil
	case key.Matches(km, m.keys.JumpView):
		if i := int(km.String()[0] - '1'); i >= 0 && i < len(model.AppViews) {
			m.setView(model.AppViews[i])
		}
		return m, nil
	}
	return m.forward(km)
}

// forward hands msg to the overlay if one is open, else the active screen.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.overlay {
	case overlayForm:
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case overlayHelp:
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	case overlayCommand:
		m.command, cmd = m.command.Update(msg)
		return m, cmd
	}

	switch m.stores.App.View() {
	case model.ViewTasks:
		m.tasks, cmd = m.tasks.Update(msg)
	case model.ViewHabits:
		m.habits, cmd = m.habits.Update(msg)
	case model.ViewTimer:
		m.timer, cmd = m.timer.Update(msg)
	case model.ViewNotes:
		m.notes, cmd = m.notes.Update(msg)
	case model.ViewSocial:
		m.social, cmd = m.social.Update(msg)
	case model.ViewWeb3:
		m.wallet, cmd = m.wallet.Update(msg)
	case model.ViewNotifications:
		m.inbox, cmd = m.inbox.Update(msg)
	case model.ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}
	return m, cmd
}

// capturing reports whether the active screen wants raw keystrokes.
func (m Model) capturing() bool {
	return m.stores.App.View() == model.ViewNotes && m.notes.Capturing()
}

func (m *Model) refreshActive() {
	switch m.stores.App.View() {
	case model.ViewTasks:
		m.tasks.Refresh()
	case model.ViewHabits:
		m.habits.Refresh()
	case model.ViewTimer:
		m.timer.Refresh()
	case model.ViewNotes:
		m.notes.Refresh()
	case model.ViewSocial:
		m.social.Refresh()
	case model.ViewWeb3:
		m.wallet.Refresh()
	case model.ViewNotifications:
		m.inbox.Refresh()
	case model.ViewSettings:
		m.settings.Refresh()
	}
}

func (m *Model) setView(v model.AppView) bool {
	if !m.stores.App.SetView(v) {
		return false
	}
	m.refreshActive()
	return true
}

func (m *Model) cycleView(step int) {
	cur := 0
	for i, v := range model.AppViews {
		if v == m.stores.App.View() {
			cur = i
		}
	}
	n := len(model.AppViews)
	m.setView(model.AppViews[(cur+step+n)%n])
}

func (m Model) quit() tea.Cmd {
	if m.deps.Pulse != nil {
		m.deps.Pulse.Stop()
	}
	return tea.Quit
}

func (m Model) contentHeight() int {
	return max(m.layout.ContentHeight()-owlHeight, 3)
}

func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	w, h := m.layout.ContentWidth(), m.contentHeight()
	m.tasks.SetSize(w, h)
	m.habits.SetSize(w, h)
	m.timer.SetSize(w, h)
	m.notes.SetSize(w, h)
	m.social.SetSize(w, h)
	m.wallet.SetSize(w, h)
	m.inbox.SetSize(w, h)
	m.settings.SetSize(w, h)
	m.help.SetSize(w, h)
	m.command.SetSize(w, h)
	m.form.SetSize(w, h)
}

// View renders the header, sidebar, active screen, mascot and status bar.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	app := m.stores.App
	view := app.View()
	header := m.layout.RenderHeader("Prodowl · "+ui.ViewTitle(view), m.status())
	sidebar := m.layout.RenderSidebar(view, map[model.AppView]int{
		model.ViewTasks:         len(m.stores.Tasks.Overdue()),
		model.ViewNotifications: app.UnreadCount(),
	})

	var alerts []notify.Alert
	if d := m.deps.Coach.Desktop(); d != nil {
		alerts = d.Active()
	}
	mascotPanel := owl.Panel(app.Mascot(), alerts, m.layout.ContentWidth())
	body := lipgloss.NewStyle().
		MaxHeight(max(m.layout.ContentHeight()-lipgloss.Height(mascotPanel), 1)).
		Render(m.content())
	content := lipgloss.JoinVertical(lipgloss.Left, body, mascotPanel)

	return m.layout.RenderWithFrame(header, sidebar, content, m.layout.RenderStatusBar(m.hints()))
}

func (m Model) content() string {
	switch m.overlay {
	case overlayForm:
		return m.form.View()
	case overlayHelp:
		return m.help.View()
	case overlayCommand:
		return m.command.View()
	}

	switch m.stores.App.View() {
	case model.ViewTasks:
		return m.tasks.View()
	case model.ViewHabits:
		return m.habits.View()
	case model.ViewTimer:
		return m.timer.View()
	case model.ViewNotes:
		return m.notes.View()
	case model.ViewSocial:
		return m.social.View()
	case model.ViewWeb3:
		return m.wallet.View()
	case model.ViewNotifications:
		return m.inbox.View()
	case model.ViewSettings:
		return m.settings.View()
	}
	return ""
}

// status is the right side of the header: the running timer, unread count
// and the owl's face.
func (m Model) status() string {
	s := ""
	if st := m.stores.Timer.State(); st.Status != model.TimerIdle {
		s += "⏱ " + listing.Clock(st.ElapsedSeconds) + "  "
	}
	if n := m.stores.App.UnreadCount(); n > 0 {
		s += fmt.Sprintf("🔔 %d  ", n)
	}
	if name := m.stores.App.UserName(); name != "" {
		s += name + " "
	}
	return s + mascot.Face(m.stores.App.Mascot().Mood)
}

func (m Model) hints() string {
	if m.flash != "" {
		return m.flash
	}
	switch m.overlay {
	case overlayForm:
		return "tab next field · enter submit · esc cancel"
	case overlayHelp:
		return "? close help · esc back"
	case overlayCommand:
		return "enter run · tab complete · esc cancel"
	}

	var h string
	switch m.stores.App.View() {
	case model.ViewTasks:
		h = m.tasks.Hints()
	case model.ViewHabits:
		h = m.habits.Hints()
	case model.ViewTimer:
		h = m.timer.Hints()
	case model.ViewNotes:
		h = m.notes.Hints()
		if m.notes.Capturing() {
			return h
		}
	case model.ViewSocial:
		h = m.social.Hints()
	case model.ViewWeb3:
		h = m.wallet.Hints()
	case model.ViewNotifications:
		h = m.inbox.Hints()
	case model.ViewSettings:
		h = m.settings.Hints()
	}
	return h + " · ? help · : command · q quit"
}

func executedFlash(msg wallet.ExecutedMsg) string {
	switch {
	case !msg.Result.Success:
		return fmt.Sprintf("%s failed: %s", msg.Title, wallet.Describe(msg.Result.Err))
	case msg.Result.TxHash != "":
		return fmt.Sprintf("%s done (%s)", msg.Title, web3.FormatAddress(msg.Result.TxHash))
	}
	return msg.Title + " done"
}
