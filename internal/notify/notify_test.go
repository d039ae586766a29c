package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/prodowl/internal/model"
)

func TestSelectPriority(t *testing.T) {
	g := NewSeededGenerator(1)

	tests := []struct {
		name string
		ctx  Context
		want model.NotificationType
		mood model.MascotMood
	}{
		{"celebration beats overdue", Context{CompletedToday: 5, OverdueTaskCount: 3}, model.NotificationCelebration, model.MoodCelebrating},
		{"overdue is urgent", Context{OverdueTaskCount: 1, HoursSinceLastActivity: 100}, model.NotificationUrgent, model.MoodScheming},
		{"long absence is guilt", Context{HoursSinceLastActivity: 49, PendingTaskCount: 2}, model.NotificationGuilt, model.MoodSad},
		{"idle with pending is passive aggressive", Context{HoursSinceLastActivity: 5, PendingTaskCount: 1}, model.NotificationPassiveAggressive, model.MoodDisappointed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := g.Select(tt.ctx)
			require.NotNil(t, sel)
			assert.Equal(t, tt.want, sel.Type)
			assert.Equal(t, tt.mood, sel.MascotExpression)
			assert.NotEmpty(t, sel.Message)
		})
	}
}

func TestSelectStreakAtRisk(t *testing.T) {
	g := NewSeededGenerator(2)
	sel := g.Select(Context{CurrentStreak: 4, HoursSinceLastActivity: 22})
	require.NotNil(t, sel)
	assert.Equal(t, model.NotificationUrgent, sel.Type)
	assert.Equal(t, "Your streak is about to DIE. Do something!", sel.Message)
	assert.Equal(t, model.MoodScheming, sel.MascotExpression)
}

func TestSelectNothing(t *testing.T) {
	g := NewSeededGenerator(3)
	assert.Nil(t, g.Select(Context{}))
	assert.Nil(t, g.Select(Context{HoursSinceLastActivity: 5}))
	assert.Nil(t, g.Select(Context{CompletedToday: 4, HoursSinceLastActivity: 1, PendingTaskCount: 3}))
}

func TestSelectGuiltFillsDays(t *testing.T) {
	// Run many draws so the {days} template is hit at least once.
	g := NewSeededGenerator(4)
	for range 200 {
		sel := g.Select(Context{HoursSinceLastActivity: 73})
		require.NotNil(t, sel)
		assert.NotContains(t, sel.Message, "{days}")
	}
}

func TestMessageReplacement(t *testing.T) {
	g := NewSeededGenerator(5)
	for range 200 {
		msg := g.Message(model.NotificationPassiveAggressive, map[string]string{"hours": "7"})
		assert.NotContains(t, msg, "{hours}")
		assert.Contains(t, passiveAggressiveMessages, strings.ReplaceAll(msg, "7 hours", "{hours} hours"))
	}
}

func TestMessageUnknownType(t *testing.T) {
	g := NewSeededGenerator(6)
	assert.Empty(t, g.Message("nope", nil))
}

func TestFill(t *testing.T) {
	assert.Equal(t, "a 3 b 3", Fill("a {n} b {n}", map[string]string{"n": "3"}))
	assert.Equal(t, "{friend} left", Fill("{friend} left", map[string]string{"n": "3"}))
	assert.Equal(t, "plain", Fill("plain", nil))

	// Substituted values are not expanded again, whatever the key order.
	for range 50 {
		got := Fill("{friend} says hi to {count}", map[string]string{"friend": "{count} bots", "count": "3"})
		require.Equal(t, "{count} bots says hi to 3", got)
	}
}

func TestSurfaceRate(t *testing.T) {
	g := NewSeededGenerator(7)
	hits := 0
	const n = 10000
	for range n {
		if g.Surface(DefaultTriggerChance) {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/n, 0.03)
	assert.False(t, g.Surface(0))
	assert.True(t, g.Surface(1))
}

func TestExpressionMapping(t *testing.T) {
	assert.Equal(t, model.MoodSad, Expression(model.NotificationGuilt))
	assert.Equal(t, model.MoodDisappointed, Expression(model.NotificationPassiveAggressive))
	assert.Equal(t, model.MoodScheming, Expression(model.NotificationUrgent))
	assert.Equal(t, model.MoodCelebrating, Expression(model.NotificationCelebration))
	assert.Equal(t, model.MoodScheming, Expression(model.NotificationFOMO))
	assert.Equal(t, model.MoodNeutral, Expression("unknown"))
}

func TestDesktopPermission(t *testing.T) {
	d := NewDesktop(10*time.Second, nil)
	assert.Equal(t, PermissionDefault, d.Permission())
	assert.False(t, d.Send("t", "b", "", ""))

	assert.Equal(t, PermissionDenied, d.RequestPermission(func() bool { return false }))
	// Decided permissions are sticky.
	assert.Equal(t, PermissionDenied, d.RequestPermission(func() bool { return true }))
	assert.False(t, d.Send("t", "b", "", ""))
}

func TestDesktopAutoDismiss(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	d := NewDesktop(10*time.Second, func() time.Time { return now })
	d.RequestPermission(func() bool { return true })

	require.True(t, d.Send("Prodowl says...", "hi", "owl", "mascot"))
	require.True(t, d.Send("Prodowl says...", "again", "owl", "mascot"))
	active := d.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "again", active[0].Body)

	now = now.Add(11 * time.Second)
	assert.Empty(t, d.Active())
}

type recordingDeliverer struct {
	titles []string
	err    error
}

func (r *recordingDeliverer) Deliver(title, body, icon string) error {
	r.titles = append(r.titles, title+": "+body)
	return r.err
}

func TestDesktopDeliversThroughOS(t *testing.T) {
	rec := &recordingDeliverer{}
	d := NewDesktop(10*time.Second, nil, WithDeliverer(rec))

	assert.False(t, d.Send("Prodowl", "before permission", "", ""))
	assert.Empty(t, rec.titles)

	d.RequestPermission(func() bool { return true })
	require.True(t, d.Send("Prodowl", "hoot", "owl", "mascot"))
	assert.Equal(t, []string{"Prodowl: hoot"}, rec.titles)
	assert.Len(t, d.Active(), 1)
	assert.NoError(t, d.DeliveryErr())

	rec.err = errors.New("no notification daemon")
	assert.True(t, d.Send("Prodowl", "again", "", ""))
	assert.EqualError(t, d.DeliveryErr(), "no notification daemon")
	assert.Len(t, d.Active(), 2)
}

func TestDesktopRestoresPermission(t *testing.T) {
	d := NewDesktop(time.Second, nil, WithPermission(PermissionGranted))
	assert.Equal(t, PermissionGranted, d.Permission())
	assert.True(t, d.Send("t", "b", "", ""))

	d = NewDesktop(time.Second, nil, WithPermission(ParsePermission("bogus")))
	assert.Equal(t, PermissionDefault, d.Permission())
	assert.Equal(t, PermissionDenied, ParsePermission("denied"))
}
