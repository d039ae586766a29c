package model

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// TaskPriority ranks how pressing a task is.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskCategory groups tasks by area of life.
type TaskCategory string

const (
	CategoryWork     TaskCategory = "work"
	CategoryPersonal TaskCategory = "personal"
	CategorySocial   TaskCategory = "social"
	CategoryWeb3     TaskCategory = "web3"
	CategoryHealth   TaskCategory = "health"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled,
}

// TaskPriorities lists every priority from least to most pressing.
var TaskPriorities = []TaskPriority{
	PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent,
}

// TaskCategories lists every category in display order.
var TaskCategories = []TaskCategory{
	CategoryWork, CategoryPersonal, CategorySocial, CategoryWeb3, CategoryHealth,
}

// Task is a single to-do item created by the user.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Title is the short, required summary.
	Title string `json:"title"`

	// Description holds optional free-form details.
	Description string `json:"description,omitempty"`

	// Status is the lifecycle state (use TaskStatus* constants).
	Status TaskStatus `json:"status"`

	// Priority is how pressing the task is.
	Priority TaskPriority `json:"priority"`

	// Category groups the task by area of life.
	Category TaskCategory `json:"category"`

	// DueDate is the optional deadline.
	DueDate *time.Time `json:"due_date,omitempty"`

	// CreatedAt is when the task was added.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is stamped when the task is marked completed.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// DeepLink is an in-app action URL for one-click execution.
	DeepLink string `json:"deep_link,omitempty"`

	// ExternalURL points at the social or web3 resource the task is about.
	ExternalURL string `json:"external_url,omitempty"`

	// Tags are free-form labels.
	Tags []string `json:"tags"`
}

// IsOverdue reports whether the task has a due date before now and is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskStatusCompleted
}

// IsDueOn reports whether the task's due date falls on the calendar day of day.
func (t Task) IsDueOn(day time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	start := StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	due := t.DueDate.In(day.Location())
	return !due.Before(start) && due.Before(end)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
