package forms

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/model"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"work", "deep focus"}, ParseTags(" work, ,deep focus,work "))
	assert.Nil(t, ParseTags(""))
	assert.Equal(t, "a, b", JoinTags([]string{"a", "b"}))
}

func TestParseDate(t *testing.T) {
	loc := time.UTC

	d, err := ParseDate("", loc)
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2026-05-04", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.May, 4, 23, 59, 0, 0, loc), *d)
	assert.Equal(t, "2026-05-04", FormatDate(d))

	d, err = ParseDate("2026-05-04 09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.May, 4, 9, 30, 0, 0, loc), *d)
	assert.Equal(t, "2026-05-04 09:30", FormatDate(d))

	_, err = ParseDate("next tuesday", loc)
	assert.Error(t, err)
	assert.Empty(t, FormatDate(nil))
}

func submit(t *testing.T, m Model) tea.Msg {
	t.Helper()
	require.NotNil(t, m.submit)
	return m.submit()
}

func TestTaskFormEditCarriesExisting(t *testing.T) {
	due := time.Date(2026, time.May, 4, 23, 59, 0, 0, time.Local)
	existing := model.Task{
		ID:       "t1",
		Title:    "Ship it",
		Priority: model.PriorityUrgent,
		Category: model.CategoryWork,
		Status:   model.TaskStatusInProgress,
		DueDate:  &due,
		Tags:     []string{"release"},
	}

	m := NewTask(&existing, 80, 24)
	assert.Equal(t, "Edit Task", m.Title())

	msg, ok := submit(t, m).(TaskSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "t1", msg.ID)
	assert.Equal(t, "Ship it", msg.Input.Title)
	assert.Equal(t, model.TaskStatusInProgress, msg.Status)
	require.NotNil(t, msg.Input.DueDate)
	assert.True(t, due.Equal(*msg.Input.DueDate))

	p := msg.Patch()
	assert.False(t, p.ClearDue)
	assert.Equal(t, []string{"release"}, p.Tags)
	assert.Equal(t, model.PriorityUrgent, *p.Priority)
}

func TestTaskFormNewDefaults(t *testing.T) {
	m := NewTask(nil, 80, 24)
	assert.Equal(t, "New Task", m.Title())

	msg := submit(t, m).(TaskSubmittedMsg)
	assert.Empty(t, msg.ID)
	assert.Equal(t, model.PriorityMedium, msg.Input.Priority)
	assert.Equal(t, model.CategoryPersonal, msg.Input.Category)

	p := msg.Patch()
	assert.True(t, p.ClearDue)
	assert.NotNil(t, p.Tags)
}

func TestHabitFormDropsDaysUnlessCustom(t *testing.T) {
	existing := model.Habit{
		ID:         "h1",
		Title:      "Run",
		Frequency:  model.FrequencyDaily,
		TargetDays: []time.Weekday{time.Monday},
	}
	msg := submit(t, NewHabit(&existing, 80, 24)).(HabitSubmittedMsg)
	assert.Equal(t, "h1", msg.ID)
	assert.Nil(t, msg.Input.TargetDays)
	assert.Equal(t, []time.Weekday{}, msg.Patch().TargetDays)

	existing.Frequency = model.FrequencyCustom
	msg = submit(t, NewHabit(&existing, 80, 24)).(HabitSubmittedMsg)
	assert.Equal(t, []time.Weekday{time.Monday}, msg.Input.TargetDays)
}

func TestNoteForm(t *testing.T) {
	existing := model.Note{ID: "n1", Title: "Ideas", Content: "owl stickers", Tags: []string{"fun"}}
	msg := submit(t, NewNote(&existing, 80, 24)).(NoteSubmittedMsg)
	assert.Equal(t, "n1", msg.ID)
	assert.Equal(t, "owl stickers", msg.Content)
	assert.Equal(t, []string{"fun"}, msg.Patch().Tags)
}

func TestSocialBindingsBuildLinks(t *testing.T) {
	now := time.Date(2026, time.May, 4, 9, 0, 0, 0, time.UTC)

	b := &socialBindings{
		platform: model.PlatformTwitter,
		kind:     model.SocialPost,
		title:    " Tweet ",
		content:  "hello world",
	}
	task := b.task(now)
	assert.Equal(t, "Tweet", task.Title)
	assert.Contains(t, task.DeepLink, "twitter://post")
	assert.Contains(t, task.WebFallback, "twitter.com/intent/tweet")

	b = &socialBindings{platform: model.PlatformGitHub, kind: model.SocialReview, title: "PRs"}
	task = b.task(now)
	assert.Empty(t, task.DeepLink)
	assert.Equal(t, "https://github.com", task.WebFallback)

	b.targetURL = "https://github.com/pulls"
	task = b.task(now)
	assert.Empty(t, task.WebFallback)
	assert.Equal(t, "https://github.com/pulls", task.TargetURL)
}

func TestTimerFormDefaults(t *testing.T) {
	tasks := []model.Task{{ID: "t1", Title: "Write report", Category: model.CategoryWork}}
	m := NewTimer(tasks, 80, 24)

	msg := submit(t, m).(TimerSubmittedMsg)
	assert.Equal(t, "Focus session", msg.Title)
	assert.Empty(t, msg.TaskID)
}

func TestSettingsForm(t *testing.T) {
	msg := submit(t, NewSettings(" Ada ", true, 25, 80, 24)).(SettingsSubmittedMsg)
	assert.Equal(t, "Ada", msg.UserName)
	assert.True(t, msg.Alerts)
	assert.Equal(t, 25, msg.TargetMinutes)

	assert.NoError(t, validateMinutes("45"))
	assert.Error(t, validateMinutes("0"))
	assert.Error(t, validateMinutes("lots"))
}
