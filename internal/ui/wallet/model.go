package wallet

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/keys"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/theme"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/forms"
	"github.com/nhle/prodowl/internal/ui/listing"
	"github.com/nhle/prodowl/internal/web3"
)

// callTimeout bounds a single wallet round trip. Connecting waits on the
// user approving in their wallet, so it gets longer.
const (
	callTimeout    = 15 * time.Second
	connectTimeout = 2 * time.Minute
)

// ConnectedMsg carries the outcome of a connect request.
type ConnectedMsg struct {
	Wallet model.WalletState
	Err    error
}

// SwitchedMsg carries the outcome of a chain switch.
type SwitchedMsg struct {
	Chain model.ChainID
	Err   error
}

// ExecutedMsg carries the outcome of running a task through the wallet.
type ExecutedMsg struct {
	ID     string
	Title  string
	Result web3.Result
}

// AccountsMsg carries the wallet's current accounts from a poll.
type AccountsMsg struct {
	Accounts []string
	Err      error
}

// ConnectCmd asks the wallet to connect.
func ConnectCmd(p web3.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		w, err := web3.Connect(ctx, p)
		return ConnectedMsg{Wallet: w, Err: err}
	}
}

// SwitchCmd asks the wallet to move to chain.
func SwitchCmd(p web3.Provider, chain model.ChainID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		return SwitchedMsg{Chain: chain, Err: web3.SwitchChain(ctx, p, chain)}
	}
}

// ExecuteCmd runs task through the wallet.
func ExecuteCmd(p web3.Provider, o deeplink.Opener, task model.Web3Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return ExecutedMsg{ID: task.ID, Title: task.Title, Result: web3.Execute(ctx, p, o, task)}
	}
}

// AccountsCmd polls the wallet's accounts.
func AccountsCmd(p web3.Provider) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		accts, err := web3.Accounts(ctx, p)
		return AccountsMsg{Accounts: accts, Err: err}
	}
}

// NextChain returns the chain after current in display order.
func NextChain(current model.ChainID) model.ChainID {
	i := slices.Index(web3.ChainOrder, current)
	return web3.ChainOrder[(i+1)%len(web3.ChainOrder)]
}

// Model is the web3 screen.
type Model struct {
	web3   *state.Web3Store
	keys   *keys.KeyMap
	list   list.Model
	now    func() time.Time
	width  int
	height int
}

const panelHeight = 5

// New creates the web3 screen.
func New(st *state.Web3Store, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if now == nil {
		now = time.Now
	}
	m := Model{
		web3:   st,
		keys:   k,
		list:   listing.New("Web3 Tasks", width, height-panelHeight),
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
	tasks := m.web3.All()
	rows := make([]listing.Row, len(tasks))
	for i, t := range tasks {
		meta := []string{web3.Chains[t.Chain].Name}
		if t.Value != "" {
			meta = append(meta, t.Value)
		}
		if t.EstimatedGas != "" {
			meta = append(meta, "gas "+t.EstimatedGas)
		}
		r := listing.Row{
			ID:     t.ID,
			Done:   t.Completed,
			Badges: []string{lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("[" + string(t.Type) + "]")},
			Text:   t.Title,
			Meta:   strings.Join(meta, " · "),
		}
		if t.Deadline != nil && !t.Completed {
			if t.Deadline.Before(now) {
				r.Alert = "EXPIRED"
			} else {
				r.Meta += " · ends " + listing.RelativeTime(*t.Deadline, now)
			}
		}
		rows[i] = r
	}
	listing.SetRows(&m.list, rows)
}

// Update handles messages for the web3 screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	w := m.web3.Wallet()
	switch {
	case key.Matches(km, m.keys.Connect):
		if m.web3.Provider() == nil {
			return m, ui.Flash("No wallet configured. Set wallet.rpc_url in your config.")
		}
		if m.web3.Connecting() || w.Connected {
			return m, nil
		}
		m.web3.BeginConnect()
		return m, ConnectCmd(m.web3.Provider())

	case key.Matches(km, m.keys.Disconnect):
		if w.Connected {
			m.web3.Disconnect()
			return m, ui.Flash("Wallet disconnected")
		}
		return m, nil

	case key.Matches(km, m.keys.Chain):
		if !w.Connected {
			return m, ui.Flash("Connect a wallet first")
		}
		return m, SwitchCmd(m.web3.Provider(), NextChain(w.Chain))

	case key.Matches(km, m.keys.New):
		return m, ui.OpenForm(forms.NewWeb3(m.width, m.height))

	case key.Matches(km, m.keys.Samples):
		m.web3.LoadSamples()
		m.Refresh()
		return m, ui.Flash("Loaded sample web3 tasks")
	}

	if r, ok := listing.Selected(m.list); ok {
		t, found := m.web3.Get(r.ID)
		if found {
			switch {
			case key.Matches(km, m.keys.Execute):
				if t.Completed {
					return m, nil
				}
				m.web3.ClearError()
				return m, ExecuteCmd(m.web3.Provider(), m.web3.Opener(), t)
			case key.Matches(km, m.keys.Toggle):
				m.web3.Complete(t.ID)
				m.Refresh()
				return m, nil
			case key.Matches(km, m.keys.Delete):
				m.web3.Delete(t.ID)
				m.Refresh()
				return m, ui.Flash("Deleted %q", t.Title)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the wallet panel above the task list.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.panel(), m.list.View())
}

func (m Model) panel() string {
	w := m.web3.Wallet()
	var lines []string
	switch {
	case m.web3.Provider() == nil:
		lines = append(lines, theme.HelpStyle.Render("No wallet bridge configured."))
	case m.web3.Connecting():
		lines = append(lines, "Connecting… approve the request in your wallet.")
	case w.Connected:
		chain := web3.Chains[w.Chain].Name
		if chain == "" {
			chain = "unknown chain"
		}
		lines = append(lines,
			theme.StatusStyle(model.TaskStatusCompleted).Render("● ")+web3.FormatAddress(w.Address),
			fmt.Sprintf("%s · %s", chain, w.Balance),
		)
	default:
		lines = append(lines, "○ Not connected · press c to connect")
	}
	if err := m.web3.Err(); err != nil {
		lines = append(lines, theme.ErrorStyle.Render(Describe(err)))
	}
	pending := len(m.web3.Pending())
	lines = append(lines, theme.HelpStyle.Render(fmt.Sprintf("%d pending on-chain chores", pending)))

	return lipgloss.NewStyle().
		Width(max(m.width-2, 10)).
		Height(panelHeight - 1).
		Render(strings.Join(lines, "\n"))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-panelHeight, 3))
}

// Hints returns the status bar hints for this screen.
func (m Model) Hints() string {
	return "c connect · D disconnect · s switch chain · o execute · x done · n new · L samples"
}
