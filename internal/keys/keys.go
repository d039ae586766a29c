package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Navigation
	Down     key.Binding
	Up       key.Binding
	NextView key.Binding
	PrevView key.Binding
	JumpView key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Overlays
	Command key.Binding
	Help    key.Binding

	// Item actions
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Toggle  key.Binding
	Execute key.Binding
	Pin     key.Binding
	Search  key.Binding
	Filter  key.Binding
	Samples key.Binding

	// Timer
	TimerStart key.Binding
	TimerPause key.Binding
	TimerStop  key.Binding
	TimerReset key.Binding
	TargetUp   key.Binding
	TargetDown key.Binding

	// Wallet
	Connect    key.Binding
	Disconnect key.Binding
	Chain      key.Binding

	// Notifications
	MarkRead    key.Binding
	MarkAllRead key.Binding
	ClearAll    key.Binding
	TestNotify  key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next screen"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous screen"),
		),
		JumpView: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "jump to screen"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x/space", "complete"),
		),
		Execute: key.NewBinding(
			key.WithKeys("o", "enter"),
			key.WithHelp("o/enter", "open"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle filter"),
		),
		Samples: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "load samples"),
		),
		TimerStart: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		TimerPause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause/resume"),
		),
		TimerStop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop & log"),
		),
		TimerReset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		TargetUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "target +5m"),
		),
		TargetDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "target -5m"),
		),
		Connect: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "connect wallet"),
		),
		Disconnect: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "disconnect"),
		),
		Chain: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "switch chain"),
		),
		MarkRead: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "mark all read"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear"),
		),
		TestNotify: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "test notification"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.NextView, k.New,
		k.Quit, k.Help, k.Command,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView, k.JumpView, k.Back, k.Quit},
		{k.Command, k.Help, k.New, k.Edit, k.Delete, k.Toggle, k.Execute},
		{k.Pin, k.Search, k.Filter, k.Samples},
		{k.TimerStart, k.TimerPause, k.TimerStop, k.TimerReset, k.TargetUp, k.TargetDown},
		{k.Connect, k.Disconnect, k.Chain},
		{k.MarkRead, k.MarkAllRead, k.ClearAll, k.TestNotify},
	}
}
