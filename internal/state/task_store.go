package state

import (
	"slices"
	"strings"
	"time"

	"github.com/nhle/prodowl/internal/model"
)

// TaskSnapshot is the persisted form of TaskStore.
type TaskSnapshot struct {
	Tasks []model.Task `json:"tasks"`
}

// TaskInput holds the user-supplied fields of a new task.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.TaskPriority
	Category    model.TaskCategory
	DueDate     *time.Time
	DeepLink    string
	ExternalURL string
	Tags        []string
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	Priority    *model.TaskPriority
	Category    *model.TaskCategory
	DueDate     *time.Time
	ClearDue    bool
	DeepLink    *string
	ExternalURL *string
	Tags        []string
}

// TaskStore owns the user's tasks.
type TaskStore struct {
	tasks []model.Task
	opts  Options
	hook  Hook[TaskSnapshot]
}

// NewTaskStore creates a TaskStore seeded with initial.
func NewTaskStore(initial TaskSnapshot, opts Options, hook Hook[TaskSnapshot]) *TaskStore {
	return &TaskStore{tasks: slices.Clone(initial.Tasks), opts: opts.withDefaults(), hook: hook}
}

// Snapshot returns a copy of the store's state.
func (s *TaskStore) Snapshot() TaskSnapshot {
	return TaskSnapshot{Tasks: slices.Clone(s.tasks)}
}

func (s *TaskStore) commit() { emit(s.hook, s.Snapshot()) }

func (s *TaskStore) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// Add creates a pending task. A blank title is ignored.
func (s *TaskStore) Add(in TaskInput) (model.Task, bool) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, false
	}
	t := model.Task{
		ID:          s.opts.NewID(),
		Title:       title,
		Description: in.Description,
		Status:      model.TaskStatusPending,
		Priority:    in.Priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
		CreatedAt:   s.opts.Now(),
		DeepLink:    in.DeepLink,
		ExternalURL: in.ExternalURL,
		Tags:        slices.Clone(in.Tags),
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if t.Category == "" {
		t.Category = model.CategoryPersonal
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	s.tasks = append(s.tasks, t)
	s.commit()
	return t, true
}

// Update merges p into the task with id.
func (s *TaskStore) Update(id string, p TaskPatch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return false
	}

	t := s.tasks[i]
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil && *p.Status != t.Status {
		t.Status = *p.Status
		if t.Status == model.TaskStatusCompleted {
			now := s.opts.Now()
			t.CompletedAt = &now
		} else {
			t.CompletedAt = nil
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.ClearDue {
		t.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.DeepLink != nil {
		t.DeepLink = *p.DeepLink
	}
	if p.ExternalURL != nil {
		t.ExternalURL = *p.ExternalURL
	}
	if p.Tags != nil {
		t.Tags = slices.Clone(p.Tags)
	}
	s.tasks[i] = t
	s.commit()
	return true
}

// Delete removes the task with id.
func (s *TaskStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.commit()
	return true
}

// Complete marks the task completed and stamps the completion time.
func (s *TaskStore) Complete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	now := s.opts.Now()
	s.tasks[i].Status = model.TaskStatusCompleted
	s.tasks[i].CompletedAt = &now
	s.commit()
	return true
}

// All returns every task in insertion order.
func (s *TaskStore) All() []model.Task { return slices.Clone(s.tasks) }

// Get returns the task with id.
func (s *TaskStore) Get(id string) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

func (s *TaskStore) filter(keep func(model.Task) bool) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// ByStatus returns tasks in status.
func (s *TaskStore) ByStatus(status model.TaskStatus) []model.Task {
	return s.filter(func(t model.Task) bool { return t.Status == status })
}

// ByCategory returns tasks in category.
func (s *TaskStore) ByCategory(category model.TaskCategory) []model.Task {
	return s.filter(func(t model.Task) bool { return t.Category == category })
}

// Overdue returns incomplete tasks whose due date has passed.
func (s *TaskStore) Overdue() []model.Task {
	now := s.opts.Now()
	return s.filter(func(t model.Task) bool { return t.IsOverdue(now) })
}

// Today returns tasks due today.
func (s *TaskStore) Today() []model.Task {
	now := s.opts.Now()
	return s.filter(func(t model.Task) bool { return t.IsDueOn(now) })
}

// CompletedTodayCount counts tasks completed since midnight.
func (s *TaskStore) CompletedTodayCount() int {
	start := model.StartOfDay(s.opts.Now())
	n := 0
	for _, t := range s.tasks {
		if t.Status == model.TaskStatusCompleted && t.CompletedAt != nil && !t.CompletedAt.Before(start) {
			n++
		}
	}
	return n
}

// PendingCount counts tasks with status pending.
func (s *TaskStore) PendingCount() int {
	return len(s.ByStatus(model.TaskStatusPending))
}
