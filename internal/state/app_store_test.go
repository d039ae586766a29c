package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/store"
	"github.com/nhle/prodowl/tests/testutil"
)

func TestAppDefaults(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	s := NewAppStore(AppSnapshot{}, testOptions(c), nil)
	assert.Equal(t, model.ViewTasks, s.View())
	assert.Equal(t, model.MoodNeutral, s.Mascot().Mood)
	assert.Equal(t, c.Now(), s.LastActivity())
	assert.Zero(t, s.UnreadCount())
}

func TestAppSetView(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	s := NewAppStore(AppSnapshot{}, testOptions(c), nil)
	require.True(t, s.SetView(model.ViewWeb3))
	assert.Equal(t, model.ViewWeb3, s.View())
	assert.False(t, s.SetView("dashboard"))
	assert.Equal(t, model.ViewWeb3, s.View())
}

func TestAppMascotMood(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	s := NewAppStore(AppSnapshot{}, testOptions(c), nil)

	c.Advance(time.Hour)
	s.SetMascotMood(model.MoodSad, "")
	m := s.Mascot()
	assert.Equal(t, model.MoodSad, m.Mood)
	assert.Contains(t, mascot.Messages[model.MoodSad], m.Message)
	assert.Equal(t, c.Now(), m.LastInteraction)

	s.SetMascotMood(model.MoodExcited, "Let's go")
	assert.Equal(t, "Let's go", s.Mascot().Message)
}

func TestAppNotificationsCapped(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	rec := &recorder[AppSnapshot]{}
	s := NewAppStore(AppSnapshot{}, testOptions(c), rec.Hook())

	for i := range MaxNotifications + 5 {
		s.AddNotification(model.Notification{Type: model.NotificationGuilt, Title: "n", Read: true, Message: string(rune('a' + i%26))})
		c.Advance(time.Second)
	}
	list := s.Notifications()
	require.Len(t, list, MaxNotifications)
	assert.Equal(t, "id-55", list[0].ID, "newest first")
	assert.Equal(t, "id-6", list[len(list)-1].ID)
	assert.Equal(t, MaxNotifications, s.UnreadCount())
	assert.Len(t, rec.Last().Notifications, MaxNotifications)

	require.True(t, s.MarkRead("id-55"))
	assert.False(t, s.MarkRead("id-1"), "evicted")
	assert.Equal(t, MaxNotifications-1, s.UnreadCount())

	s.MarkAllRead()
	assert.Zero(t, s.UnreadCount())
	s.Clear()
	assert.Empty(t, s.Notifications())
}

func TestAppUserAndTouch(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	rec := &recorder[AppSnapshot]{}
	s := NewAppStore(AppSnapshot{}, testOptions(c), rec.Hook())

	s.SetUserName("  Sam ")
	assert.Equal(t, "Sam", s.UserName())

	c.Advance(2 * time.Hour)
	s.Touch()
	assert.Equal(t, c.Now(), s.LastActivity())
	assert.Len(t, rec.snaps, 1)
}

func TestAppAlertPermission(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	rec := &recorder[AppSnapshot]{}
	s := NewAppStore(AppSnapshot{}, testOptions(c), rec.Hook())
	assert.Empty(t, s.AlertPermission())

	s.SetAlertPermission("denied")
	s.SetAlertPermission("denied")
	assert.Equal(t, "denied", s.AlertPermission())
	require.Len(t, rec.snaps, 1)
	assert.Equal(t, "denied", rec.Last().AlertPermission)
}

func TestAppStoreSatisfiesBoard(t *testing.T) {
	c := newClock(at(2026, 6, 1, 9))
	s := NewAppStore(AppSnapshot{}, testOptions(c), nil)
	coach := mascot.NewCoach(notify.NewSeededGenerator(1), notify.NewDesktop(10*time.Second, c.Now), 1, testOptions(c).Logger)

	n := coach.Test(s)
	assert.Equal(t, "Test Notification", n.Title)
	require.Len(t, s.Notifications(), 1)
}

func TestOpenRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestStore(t)
	c := newClock(at(2026, 6, 1, 9))

	st, err := Open(ctx, db, testOptions(c), Deps{TimerTarget: 50})
	require.NoError(t, err)
	assert.Empty(t, st.Tasks.All())
	assert.Equal(t, 50, st.Timer.State().TargetMinutes)
	assert.Equal(t, model.ViewTasks, st.App.View())

	task, _ := st.Tasks.Add(TaskInput{Title: "Persist me"})
	habit, _ := st.Habits.Add(HabitInput{Title: "Stretch"})
	st.Habits.ToggleCompletion(habit.ID, "")
	st.Notes.Add("Note", "body", nil)
	st.Timer.Start("focus", model.CategoryWork, task.ID)
	st.Social.LoadSamples()
	st.Web3.LoadSamples()
	st.App.SetView(model.ViewHabits)
	st.App.SetAlertPermission(string(notify.PermissionGranted))
	st.App.AddNotification(model.Notification{Type: model.NotificationFOMO, Title: "t", Message: "m"})

	infos, err := db.ListSnapshots(ctx)
	require.NoError(t, err)
	assert.Len(t, infos, len(store.Keys))

	reopened, err := Open(ctx, db, testOptions(c), Deps{})
	require.NoError(t, err)
	assert.Equal(t, st.Tasks.All(), reopened.Tasks.All())
	assert.Equal(t, 1, reopened.Habits.Streak(habit.ID))
	assert.Len(t, reopened.Notes.All(), 1)
	assert.Equal(t, model.TimerRunning, reopened.Timer.State().Status)
	assert.Equal(t, 50, reopened.Timer.State().TargetMinutes)
	assert.Len(t, reopened.Social.All(), 5)
	assert.Len(t, reopened.Web3.All(), 4)
	assert.False(t, reopened.Web3.Wallet().Connected)
	assert.Equal(t, model.ViewHabits, reopened.App.View())
	assert.Equal(t, 1, reopened.App.UnreadCount())
	assert.Equal(t, "granted", reopened.App.AlertPermission())
}

func TestDerivedInputs(t *testing.T) {
	ctx := context.Background()
	c := newClock(at(2026, 6, 1, 9))
	st, err := Open(ctx, testutil.NewTestStore(t), testOptions(c), Deps{})
	require.NoError(t, err)

	past := c.Now().Add(-time.Hour)
	st.Tasks.Add(TaskInput{Title: "late", DueDate: &past})
	done, _ := st.Tasks.Add(TaskInput{Title: "done"})
	st.Tasks.Complete(done.ID)
	h1, _ := st.Habits.Add(HabitInput{Title: "a"})
	st.Habits.Add(HabitInput{Title: "b"})
	st.Habits.ToggleCompletion(h1.ID, "")

	later := c.Now().Add(3 * time.Hour)
	nc := st.NotifyContext(later)
	assert.Equal(t, 1, nc.OverdueTaskCount)
	assert.Equal(t, 1, nc.PendingTaskCount)
	assert.Equal(t, 1, nc.CurrentStreak)
	assert.Equal(t, 1, nc.CompletedToday)
	assert.InDelta(t, 3.0, nc.HoursSinceLastActivity, 1e-9)

	mi := st.MoodInputs(later)
	assert.Equal(t, 1, mi.OverdueCount)
	assert.Equal(t, 2, mi.TodaysHabits)
	assert.Equal(t, 1, mi.CompletedHabitsToday)
	assert.InDelta(t, 3.0, mi.HoursSinceInteraction, 1e-9)
	assert.Equal(t, model.MoodNeutral, mi.Mood)
}
