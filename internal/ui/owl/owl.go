// Package owl renders the mascot's speech bubble and the desktop alert
// toasts that sit under the content area.
package owl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/theme"
)

// MaxToasts caps how many alerts are stacked at once.
const MaxToasts = 3

var bubbleStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.ColorOwl).
	Padding(0, 1)

// Bubble renders the mascot's face and current line.
func Bubble(st model.MascotState, width int) string {
	msg := st.Message
	if msg == "" {
		msg = "..."
	}
	face := lipgloss.NewStyle().Foreground(theme.ColorOwl).Bold(true).Render("(o,o) " + mascot.Face(st.Mood))
	return lipgloss.JoinHorizontal(lipgloss.Center,
		face+" ",
		bubbleStyle.MaxWidth(max(width-12, 10)).Render(msg),
	)
}

// Toasts renders the newest active alerts, newest last.
func Toasts(alerts []notify.Alert, width int) string {
	if len(alerts) == 0 {
		return ""
	}
	if len(alerts) > MaxToasts {
		alerts = alerts[len(alerts)-MaxToasts:]
	}
	lines := make([]string, len(alerts))
	for i, a := range alerts {
		text := a.Title + ": " + a.Body
		lines[i] = theme.ToastStyle.MaxWidth(max(width, 10)).Render("🔔 " + text)
	}
	return strings.Join(lines, "\n")
}

// Panel stacks toasts above the speech bubble.
func Panel(st model.MascotState, alerts []notify.Alert, width int) string {
	t := Toasts(alerts, width)
	b := Bubble(st, width)
	if t == "" {
		return b
	}
	return lipgloss.JoinVertical(lipgloss.Left, t, b)
}
