package forms

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
)

// HabitSubmittedMsg carries a completed habit form. ID is empty for a new habit.
type HabitSubmittedMsg struct {
	ID    string
	Input state.HabitInput
}

// Patch turns an edit submission into a patch. Streak fields are never touched.
func (m HabitSubmittedMsg) Patch() state.HabitPatch {
	in := m.Input
	days := in.TargetDays
	if days == nil {
		days = []time.Weekday{}
	}
	return state.HabitPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Frequency:   &in.Frequency,
		TargetDays:  days,
		Color:       &in.Color,
		Icon:        &in.Icon,
	}
}

type habitBindings struct {
	title       string
	description string
	frequency   model.HabitFrequency
	days        []time.Weekday
	color       string
	icon        string
}

// NewHabit builds the create form, or the edit form when existing is set.
func NewHabit(existing *model.Habit, width, height int) Model {
	b := &habitBindings{frequency: model.FrequencyDaily, color: "#9D7CFF", icon: "⭐"}
	title := "New Habit"
	id := ""
	if existing != nil {
		title = "Edit Habit"
		id = existing.ID
		b.title = existing.Title
		b.description = existing.Description
		b.frequency = existing.Frequency
		b.days = existing.TargetDays
		b.color = existing.Color
		b.icon = existing.Icon
	}

	dayOpts := make([]huh.Option[time.Weekday], 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		dayOpts[d] = huh.NewOption(d.String(), d)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Drink water, read 10 pages...").
			Value(&b.title).
			Validate(validateRequired("Title")),
		huh.NewInput().
			Title("Description").
			Value(&b.description),
		huh.NewSelect[model.HabitFrequency]().
			Title("Frequency").
			Options(
				huh.NewOption("Daily", model.FrequencyDaily),
				huh.NewOption("Weekly", model.FrequencyWeekly),
				huh.NewOption("Custom days", model.FrequencyCustom),
			).
			Value(&b.frequency),
		huh.NewMultiSelect[time.Weekday]().
			Title("Target days (custom only)").
			Options(dayOpts...).
			Value(&b.days),
		huh.NewInput().
			Title("Color").
			Value(&b.color),
		huh.NewInput().
			Title("Icon").
			Value(&b.icon),
	}

	submit := func() tea.Msg {
		in := state.HabitInput{
			Title:       strings.TrimSpace(b.title),
			Description: strings.TrimSpace(b.description),
			Frequency:   b.frequency,
			Color:       strings.TrimSpace(b.color),
			Icon:        strings.TrimSpace(b.icon),
		}
		if b.frequency == model.FrequencyCustom {
			in.TargetDays = b.days
		}
		return HabitSubmittedMsg{ID: id, Input: in}
	}

	return newModel(title, width, height, submit, huh.NewGroup(fields...))
}

// NoteSubmittedMsg carries a completed note form. ID is empty for a new note.
type NoteSubmittedMsg struct {
	ID      string
	Title   string
	Content string
	Tags    []string
}

// Patch turns an edit submission into a patch.
func (m NoteSubmittedMsg) Patch() state.NotePatch {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return state.NotePatch{Title: &m.Title, Content: &m.Content, Tags: tags}
}

type noteBindings struct {
	title   string
	content string
	tags    string
}

// NewNote builds the create form, or the edit form when existing is set.
func NewNote(existing *model.Note, width, height int) Model {
	b := &noteBindings{}
	title := "New Note"
	id := ""
	if existing != nil {
		title = "Edit Note"
		id = existing.ID
		b.title = existing.Title
		b.content = existing.Content
		b.tags = JoinTags(existing.Tags)
	}

	group := huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Value(&b.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Content").
			Lines(8).
			Value(&b.content),
		huh.NewInput().
			Title("Tags").
			Placeholder("comma, separated").
			Value(&b.tags),
	)

	submit := func() tea.Msg {
		return NoteSubmittedMsg{
			ID:      id,
			Title:   strings.TrimSpace(b.title),
			Content: b.content,
			Tags:    ParseTags(b.tags),
		}
	}

	return newModel(title, width, height, submit, group)
}
