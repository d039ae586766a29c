package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/model"
)

func taskID(t model.Task) string { return t.ID }

func TestTaskAddDefaults(t *testing.T) {
	c := newClock(at(2026, 3, 10, 9))
	rec := &recorder[TaskSnapshot]{}
	s := NewTaskStore(TaskSnapshot{}, testOptions(c), rec.Hook())

	task, ok := s.Add(TaskInput{Title: "  Write report  "})
	require.True(t, ok)
	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, model.CategoryPersonal, task.Category)
	assert.Equal(t, c.Now(), task.CreatedAt)
	assert.NotNil(t, task.Tags)
	assert.Empty(t, task.Tags)

	require.Len(t, rec.snaps, 1)
	assert.Equal(t, []model.Task{task}, rec.Last().Tasks)
}

func TestTaskBlankTitleIsNoop(t *testing.T) {
	c := newClock(at(2026, 3, 10, 9))
	rec := &recorder[TaskSnapshot]{}
	s := NewTaskStore(TaskSnapshot{}, testOptions(c), rec.Hook())

	_, ok := s.Add(TaskInput{Title: "   "})
	assert.False(t, ok)
	assert.Empty(t, s.All())
	assert.Empty(t, rec.snaps)

	task, _ := s.Add(TaskInput{Title: "x"})
	assert.False(t, s.Update(task.ID, TaskPatch{Title: ptr(" ")}))
	assert.False(t, s.Update("missing", TaskPatch{Title: ptr("y")}))
	assert.False(t, s.Complete("missing"))
	assert.False(t, s.Delete("missing"))
	assert.Len(t, rec.snaps, 1)
}

func TestTaskCompleteAndDeleteLeaveSelectors(t *testing.T) {
	c := newClock(at(2026, 3, 10, 9))
	s := NewTaskStore(TaskSnapshot{}, testOptions(c), nil)

	yesterday := c.Now().Add(-24 * time.Hour)
	laterToday := c.Now().Add(3 * time.Hour)

	a, _ := s.Add(TaskInput{Title: "overdue", DueDate: &yesterday, Category: model.CategoryWork})
	b, _ := s.Add(TaskInput{Title: "today", DueDate: &laterToday, Category: model.CategoryWork})
	d, _ := s.Add(TaskInput{Title: "someday"})

	assert.Equal(t, []string{a.ID}, ids(s.Overdue(), taskID))
	assert.Equal(t, []string{b.ID}, ids(s.Today(), taskID))
	assert.Equal(t, 3, s.PendingCount())
	assert.Equal(t, []string{a.ID, b.ID}, ids(s.ByCategory(model.CategoryWork), taskID))

	require.True(t, s.Complete(a.ID))
	got, _ := s.Get(a.ID)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, c.Now(), *got.CompletedAt)
	assert.Empty(t, s.Overdue())
	assert.Equal(t, 2, s.PendingCount())
	assert.Equal(t, 1, s.CompletedTodayCount())

	require.True(t, s.Delete(b.ID))
	for _, list := range [][]model.Task{s.All(), s.Today(), s.ByCategory(model.CategoryWork), s.ByStatus(model.TaskStatusPending)} {
		assert.NotContains(t, ids(list, taskID), b.ID)
	}
	_, ok := s.Get(b.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{d.ID}, ids(s.ByStatus(model.TaskStatusPending), taskID))
}

func TestTaskUpdateMergesFields(t *testing.T) {
	c := newClock(at(2026, 3, 10, 9))
	s := NewTaskStore(TaskSnapshot{}, testOptions(c), nil)
	due := c.Now().Add(time.Hour)
	task, _ := s.Add(TaskInput{Title: "draft", Description: "keep me", DueDate: &due})

	require.True(t, s.Update(task.ID, TaskPatch{
		Title:    ptr("final"),
		Priority: ptr(model.PriorityUrgent),
		Tags:     []string{"q1"},
	}))
	got, _ := s.Get(task.ID)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "keep me", got.Description)
	assert.Equal(t, model.PriorityUrgent, got.Priority)
	assert.Equal(t, []string{"q1"}, got.Tags)
	require.NotNil(t, got.DueDate)

	require.True(t, s.Update(task.ID, TaskPatch{ClearDue: true}))
	got, _ = s.Get(task.ID)
	assert.Nil(t, got.DueDate)
}

func TestTaskUpdateStatusStampsCompletion(t *testing.T) {
	c := newClock(at(2026, 3, 10, 9))
	s := NewTaskStore(TaskSnapshot{}, testOptions(c), nil)
	task, _ := s.Add(TaskInput{Title: "a"})

	require.True(t, s.Update(task.ID, TaskPatch{Status: ptr(model.TaskStatusCompleted)}))
	got, _ := s.Get(task.ID)
	assert.NotNil(t, got.CompletedAt)

	require.True(t, s.Update(task.ID, TaskPatch{Status: ptr(model.TaskStatusInProgress)}))
	got, _ = s.Get(task.ID)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, model.TaskStatusInProgress, got.Status)
}

func TestTaskSnapshotIsACopy(t *testing.T) {
	c := newClock(at(2026, 3, 10, 9))
	s := NewTaskStore(TaskSnapshot{}, testOptions(c), nil)
	s.Add(TaskInput{Title: "a"})

	snap := s.Snapshot()
	snap.Tasks[0].Title = "changed"
	got := s.All()
	assert.Equal(t, "a", got[0].Title)
}
