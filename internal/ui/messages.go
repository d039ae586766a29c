package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prodowl/internal/ui/forms"
)

// OpenFormMsg asks the root model to show a form overlay.
type OpenFormMsg struct {
	Form forms.Model
}

// FlashMsg shows a transient line in the status bar.
type FlashMsg string

// LinkMsg asks the root model to follow a URL: in-app links are
// dispatched, anything else is opened externally.
type LinkMsg string

// OpenedMsg reports the outcome of opening an external URL.
type OpenedMsg struct {
	URL string
	Err error
}

// TestNotifyMsg asks the root model to raise a test notification.
type TestNotifyMsg struct{}

// OpenForm wraps f in a command.
func OpenForm(f forms.Model) tea.Cmd {
	return func() tea.Msg { return OpenFormMsg{Form: f} }
}

// Flash returns a command that shows a formatted status line.
func Flash(format string, args ...any) tea.Cmd {
	s := fmt.Sprintf(format, args...)
	return func() tea.Msg { return FlashMsg(s) }
}

// Follow returns a command that follows url.
func Follow(url string) tea.Cmd {
	return func() tea.Msg { return LinkMsg(url) }
}

// Emit wraps an already built message in a command.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
