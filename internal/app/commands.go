package app

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
	"github.com/nhle/prodowl/internal/ui"
	"github.com/nhle/prodowl/internal/ui/command"
	"github.com/nhle/prodowl/internal/ui/forms"
)

// paletteCommands seeds completion in the command palette.
var paletteCommands = []string{
	"task", "habit", "note", "view", "link", "timer", "remind", "samples", "read", "help", "quit",
}

// run executes a command palette line.
func (m *Model) run(line string) tea.Cmd {
	verb, arg := command.Split(line)
	w, h := m.layout.ContentWidth(), m.contentHeight()

	switch verb {
	case "task":
		if arg == "" {
			return ui.OpenForm(forms.NewTask(nil, w, h))
		}
		return m.submit(forms.TaskSubmittedMsg{Input: state.TaskInput{Title: arg}})

	case "habit":
		if arg == "" {
			return ui.OpenForm(forms.NewHabit(nil, w, h))
		}
		return m.submit(forms.HabitSubmittedMsg{Input: state.HabitInput{Title: arg}})

	case "note":
		if arg == "" {
			return ui.OpenForm(forms.NewNote(nil, w, h))
		}
		return m.submit(forms.NoteSubmittedMsg{Title: arg})

	case "view", "go":
		v, ok := viewNamed(arg)
		if !ok || !m.setView(v) {
			m.flash = "Unknown view " + quote(arg)
		}

	case "link", "open":
		return m.follow(arg)

	case "timer", "focus":
		if arg != "" {
			minutes, err := strconv.Atoi(arg)
			if err != nil || minutes <= 0 {
				m.flash = "Timer needs a number of minutes"
				return nil
			}
			m.stores.Timer.SetTargetMinutes(minutes)
		}
		m.startTimer("Focus session", model.CategoryWork, "")

	case "remind":
		n, text, _ := strings.Cut(arg, " ")
		minutes, err := strconv.Atoi(n)
		text = strings.TrimSpace(text)
		if err != nil || minutes <= 0 || text == "" {
			m.flash = "Usage: remind <minutes> <text>"
			return nil
		}
		m.flash = "Reminder set for " + strconv.Itoa(minutes) + " min"
		return remindAfter(time.Duration(minutes)*time.Minute, text)

	case "samples":
		m.stores.Social.LoadSamples()
		m.stores.Web3.LoadSamples()
		m.flash = "Loaded sample social and web3 tasks"

	case "read":
		m.stores.App.MarkAllRead()
		m.flash = "All caught up"

	case "help":
		m.overlay = overlayHelp

	case "quit", "q":
		return m.quit()

	default:
		m.flash = "Unknown command " + quote(verb)
	}
	return nil
}

// viewNamed resolves a screen by id or display title.
func viewNamed(name string) (model.AppView, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range model.AppViews {
		if string(v) == name || strings.ToLower(ui.ViewTitle(v)) == name {
			return v, true
		}
	}
	return "", false
}
