package state

import (
	"slices"
	"strings"
	"time"

	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/model"
)

// MaxNotifications is how many notifications the app keeps.
const MaxNotifications = 50

// AppSnapshot is the persisted form of AppStore.
type AppSnapshot struct {
	CurrentView   model.AppView        `json:"current_view"`
	Mascot        model.MascotState    `json:"mascot"`
	Notifications []model.Notification `json:"notifications"`
	UserName      string               `json:"user_name"`
	LastActivity  time.Time            `json:"last_activity"`
	// AlertPermission is the decided desktop alert permission, empty until
	// the user has been asked.
	AlertPermission string `json:"alert_permission,omitempty"`
}

// DefaultAppSnapshot is the state on first launch.
func DefaultAppSnapshot(now time.Time) AppSnapshot {
	m := mascot.DefaultState()
	m.LastInteraction = now
	return AppSnapshot{
		CurrentView:   model.ViewTasks,
		Mascot:        m,
		Notifications: []model.Notification{},
		LastActivity:  now,
	}
}

// AppStore owns navigation, the mascot and the notification inbox.
type AppStore struct {
	snap AppSnapshot
	opts Options
	hook Hook[AppSnapshot]
}

// NewAppStore creates an AppStore seeded with initial.
func NewAppStore(initial AppSnapshot, opts Options, hook Hook[AppSnapshot]) *AppStore {
	opts = opts.withDefaults()
	if initial.CurrentView == "" {
		initial.CurrentView = model.ViewTasks
	}
	if initial.Mascot.Mood == "" {
		initial.Mascot = mascot.DefaultState()
		initial.Mascot.LastInteraction = opts.Now()
	}
	if initial.LastActivity.IsZero() {
		initial.LastActivity = opts.Now()
	}
	initial.Notifications = slices.Clone(initial.Notifications)
	return &AppStore{snap: initial, opts: opts, hook: hook}
}

// Snapshot returns a copy of the store's state.
func (s *AppStore) Snapshot() AppSnapshot {
	out := s.snap
	out.Notifications = slices.Clone(s.snap.Notifications)
	return out
}

func (s *AppStore) commit() { emit(s.hook, s.Snapshot()) }

// View returns the current screen.
func (s *AppStore) View() model.AppView { return s.snap.CurrentView }

// SetView switches screens.
func (s *AppStore) SetView(v model.AppView) bool {
	if !slices.Contains(model.AppViews, v) {
		return false
	}
	s.snap.CurrentView = v
	s.commit()
	return true
}

// Mascot returns the mascot's state.
func (s *AppStore) Mascot() model.MascotState { return s.snap.Mascot }

// SetMascotMood changes the mascot's mood and stamps the interaction time.
// An empty message picks a stock line for the mood.
func (s *AppStore) SetMascotMood(mood model.MascotMood, message string) {
	if message == "" {
		message = mascot.RandomMessage(s.opts.Rand, mood)
	}
	s.snap.Mascot = model.MascotState{
		Mood:            mood,
		Message:         message,
		LastInteraction: s.opts.Now(),
	}
	s.commit()
}

// AddNotification prepends n with a fresh id, timestamp and unread flag,
// keeping only the newest MaxNotifications.
func (s *AppStore) AddNotification(n model.Notification) {
	n.ID = s.opts.NewID()
	n.CreatedAt = s.opts.Now()
	n.Read = false
	list := append([]model.Notification{n}, s.snap.Notifications...)
	if len(list) > MaxNotifications {
		list = list[:MaxNotifications]
	}
	s.snap.Notifications = list
	s.commit()
}

// Notifications returns the inbox, newest first.
func (s *AppStore) Notifications() []model.Notification {
	return slices.Clone(s.snap.Notifications)
}

// MarkRead marks one notification read.
func (s *AppStore) MarkRead(id string) bool {
	i := slices.IndexFunc(s.snap.Notifications, func(n model.Notification) bool { return n.ID == id })
	if i < 0 {
		return false
	}
	s.snap.Notifications[i].Read = true
	s.commit()
	return true
}

// MarkAllRead marks every notification read.
func (s *AppStore) MarkAllRead() {
	for i := range s.snap.Notifications {
		s.snap.Notifications[i].Read = true
	}
	s.commit()
}

// Clear empties the inbox.
func (s *AppStore) Clear() {
	s.snap.Notifications = []model.Notification{}
	s.commit()
}

// UnreadCount counts unread notifications.
func (s *AppStore) UnreadCount() int {
	n := 0
	for _, x := range s.snap.Notifications {
		if !x.Read {
			n++
		}
	}
	return n
}

// UserName returns the configured display name.
func (s *AppStore) UserName() string { return s.snap.UserName }

// SetUserName stores the display name.
func (s *AppStore) SetUserName(name string) {
	s.snap.UserName = strings.TrimSpace(name)
	s.commit()
}

// Touch records user activity now. It is not persisted on its own; the
// next mutation carries it.
func (s *AppStore) Touch() {
	s.snap.LastActivity = s.opts.Now()
}

// AlertPermission returns the stored desktop alert permission.
func (s *AppStore) AlertPermission() string { return s.snap.AlertPermission }

// SetAlertPermission records the desktop alert decision.
func (s *AppStore) SetAlertPermission(p string) {
	if p == s.snap.AlertPermission {
		return
	}
	s.snap.AlertPermission = p
	s.commit()
}

// LastActivity returns when the user last did something.
func (s *AppStore) LastActivity() time.Time { return s.snap.LastActivity }
