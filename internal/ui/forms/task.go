package forms

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/state"
)

// TaskSubmittedMsg carries a completed task form. ID is empty for a new task.
type TaskSubmittedMsg struct {
	ID     string
	Input  state.TaskInput
	Status model.TaskStatus
}

type taskBindings struct {
	title       string
	description string
	priority    model.TaskPriority
	category    model.TaskCategory
	status      model.TaskStatus
	due         string
	externalURL string
	tags        string
}

// NewTask builds the create form, or the edit form when existing is set.
func NewTask(existing *model.Task, width, height int) Model {
	b := &taskBindings{
		priority: model.PriorityMedium,
		category: model.CategoryPersonal,
		status:   model.TaskStatusPending,
	}
	title := "New Task"
	id := ""
	if existing != nil {
		title = "Edit Task"
		id = existing.ID
		b.title = existing.Title
		b.description = existing.Description
		b.priority = existing.Priority
		b.category = existing.Category
		b.status = existing.Status
		b.due = FormatDate(existing.DueDate)
		b.externalURL = existing.ExternalURL
		b.tags = JoinTags(existing.Tags)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&b.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&b.description),
		huh.NewSelect[model.TaskPriority]().
			Title("Priority").
			Options(priorityOptions()...).
			Value(&b.priority),
		huh.NewSelect[model.TaskCategory]().
			Title("Category").
			Options(categoryOptions()...).
			Value(&b.category),
		huh.NewInput().
			Title("Due").
			Placeholder("YYYY-MM-DD or YYYY-MM-DD HH:MM (optional)").
			Value(&b.due).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Link").
			Placeholder("https://... (optional)").
			Value(&b.externalURL),
		huh.NewInput().
			Title("Tags").
			Placeholder("comma, separated").
			Value(&b.tags),
	}
	if existing != nil {
		opts := make([]huh.Option[model.TaskStatus], len(model.TaskStatuses))
		for i, s := range model.TaskStatuses {
			opts[i] = huh.NewOption(label(string(s)), s)
		}
		fields = append(fields, huh.NewSelect[model.TaskStatus]().
			Title("Status").
			Options(opts...).
			Value(&b.status))
	}

	submit := func() tea.Msg {
		due, _ := ParseDate(b.due, time.Local)
		return TaskSubmittedMsg{
			ID: id,
			Input: state.TaskInput{
				Title:       strings.TrimSpace(b.title),
				Description: strings.TrimSpace(b.description),
				Priority:    b.priority,
				Category:    b.category,
				DueDate:     due,
				ExternalURL: strings.TrimSpace(b.externalURL),
				Tags:        ParseTags(b.tags),
			},
			Status: b.status,
		}
	}

	return newModel(title, width, height, submit, huh.NewGroup(fields...))
}

// Patch turns an edit submission into a full-replacement patch.
func (m TaskSubmittedMsg) Patch() state.TaskPatch {
	in := m.Input
	p := state.TaskPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Status:      &m.Status,
		Priority:    &in.Priority,
		Category:    &in.Category,
		DueDate:     in.DueDate,
		ClearDue:    in.DueDate == nil,
		ExternalURL: &in.ExternalURL,
		Tags:        in.Tags,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

func priorityOptions() []huh.Option[model.TaskPriority] {
	opts := make([]huh.Option[model.TaskPriority], 0, len(model.TaskPriorities))
	for i := len(model.TaskPriorities) - 1; i >= 0; i-- {
		p := model.TaskPriorities[i]
		opts = append(opts, huh.NewOption(label(string(p)), p))
	}
	return opts
}

func categoryOptions() []huh.Option[model.TaskCategory] {
	opts := make([]huh.Option[model.TaskCategory], len(model.TaskCategories))
	for i, c := range model.TaskCategories {
		opts[i] = huh.NewOption(label(string(c)), c)
	}
	return opts
}

// label turns an enum value like in_progress into "In progress".
func label(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
