package model

import "time"

// NotificationType is one of the mascot's manipulation tactics.
type NotificationType string

const (
	NotificationGuilt             NotificationType = "guilt"
	NotificationCelebration       NotificationType = "celebration"
	NotificationPassiveAggressive NotificationType = "passive_aggressive"
	NotificationUrgent            NotificationType = "urgent"
	NotificationFOMO              NotificationType = "fomo"
)

// NotificationTypes lists every notification type.
var NotificationTypes = []NotificationType{
	NotificationGuilt,
	NotificationPassiveAggressive,
	NotificationUrgent,
	NotificationCelebration,
	NotificationFOMO,
}

// Notification is a message surfaced to the user by the mascot.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Type is the tactic used.
	Type NotificationType `json:"type"`

	// Title is the short heading.
	Title string `json:"title"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// TaskID optionally links this notification to a task. Soft reference.
	TaskID string `json:"task_id,omitempty"`

	// DeepLink optionally points at an in-app action.
	DeepLink string `json:"deep_link,omitempty"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// MascotExpression is the face the mascot pulls for this message.
	MascotExpression MascotMood `json:"mascot_expression"`
}
