package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/theme"
)

// SidebarWidth is the fixed width of the screen switcher.
const SidebarWidth = 18

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the width left of the sidebar.
func (l Layout) ContentWidth() int {
	return max(l.Width-SidebarWidth-1, 20)
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-l.HeaderHeight-l.StatusBarHeight, 5)
}

// RenderHeader renders the top header bar with a title and a right-aligned
// status such as the mascot's face and the unread count.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	gap := max(l.Width-lipgloss.Width(titleRendered)-lipgloss.Width(statusRendered), 0)

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.HeaderStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := max(l.Width-lipgloss.Width(rendered), 0)

	filler := lipgloss.NewStyle().
		Width(gap).
		Background(theme.StatusBarStyle.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderSidebar lists the screens with their jump keys, marking active and
// attaching badges such as unread counts.
func (l Layout) RenderSidebar(active model.AppView, badges map[model.AppView]int) string {
	var b strings.Builder
	for i, v := range model.AppViews {
		label := fmt.Sprintf("%d %s", i+1, ViewTitle(v))
		if n := badges[v]; n > 0 {
			label += fmt.Sprintf(" (%d)", n)
		}
		if v == active {
			label = theme.ActiveNavStyle.Render("▸ " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteByte('\n')
	}

	return theme.SidebarStyle.
		Width(SidebarWidth).
		Height(l.ContentHeight()).
		Render(b.String())
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, the sidebar and content row, and the status bar.
func (l Layout) RenderWithFrame(
	header string,
	sidebar string,
	content string,
	statusBar string,
) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", content)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		statusBar,
	)
}

// ViewTitle is the display name of a screen.
func ViewTitle(v model.AppView) string {
	switch v {
	case model.ViewTasks:
		return "Tasks"
	case model.ViewHabits:
		return "Habits"
	case model.ViewTimer:
		return "Focus"
	case model.ViewNotes:
		return "Notes"
	case model.ViewSocial:
		return "Social"
	case model.ViewWeb3:
		return "Web3"
	case model.ViewNotifications:
		return "Inbox"
	case model.ViewSettings:
		return "Settings"
	}
	return string(v)
}
