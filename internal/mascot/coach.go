package mascot

import (
	"github.com/rs/zerolog"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
)

// NotificationTitle heads every contextual notification.
const NotificationTitle = "Prodowl says..."

const alertTitle = "Prodowl"
const alertIcon = "owl"

// Board receives what the coach decides.
type Board interface {
	AddNotification(n model.Notification)
	SetMascotMood(mood model.MascotMood, message string)
}

// Coach turns activity into nagging: it selects a notification, gates it,
// records it, changes the mascot's face and raises a desktop alert.
type Coach struct {
	gen     *notify.Generator
	desktop *notify.Desktop
	chance  float64
	logger  zerolog.Logger
}

// NewCoach creates a Coach. chance is the probability a selection is shown.
func NewCoach(gen *notify.Generator, desktop *notify.Desktop, chance float64, logger zerolog.Logger) *Coach {
	return &Coach{gen: gen, desktop: desktop, chance: chance, logger: logger}
}

// Desktop returns the alert sink.
func (c *Coach) Desktop() *notify.Desktop { return c.desktop }

// Nudge runs one contextual notification check. It returns the selection
// and whether it was surfaced.
func (c *Coach) Nudge(ctx notify.Context, b Board) (*notify.Selection, bool) {
	sel := c.gen.Select(ctx)
	if sel == nil {
		c.logger.Debug().Interface("context", ctx).Msg("no notification warranted")
		return nil, false
	}
	if !c.gen.Surface(c.chance) {
		c.logger.Debug().Str("type", string(sel.Type)).Msg("notification suppressed by gate")
		return sel, false
	}

	b.AddNotification(model.Notification{
		Type:             sel.Type,
		Title:            NotificationTitle,
		Message:          sel.Message,
		MascotExpression: sel.MascotExpression,
	})
	b.SetMascotMood(sel.MascotExpression, sel.Message)
	c.Alert(sel.Message, string(sel.Type))

	c.logger.Info().Str("type", string(sel.Type)).Msg("notification surfaced")
	return sel, true
}

// Test raises a notification of a random type, bypassing the gate.
func (c *Coach) Test(b Board) model.Notification {
	t := c.gen.RandomType()
	n := model.Notification{
		Type:             t,
		Title:            "Test Notification",
		Message:          c.gen.Message(t, map[string]string{"name": "You", "count": "5", "hours": "3"}),
		MascotExpression: testExpression(t),
	}
	b.AddNotification(n)
	c.Alert(n.Message, "test")
	return n
}

// EnableAlerts asks for desktop alert permission and celebrates a grant.
func (c *Coach) EnableAlerts(ask func() bool, b Board) notify.Permission {
	p := c.desktop.RequestPermission(ask)
	if p == notify.PermissionGranted {
		b.SetMascotMood(model.MoodCelebrating, "Notifications enabled! I can now bug you properly!")
	}
	return p
}

// Alert raises a desktop alert and reports whether it was shown.
func (c *Coach) Alert(body, tag string) bool {
	if c.desktop == nil || !c.desktop.Send(alertTitle, body, alertIcon, tag) {
		return false
	}
	if err := c.desktop.DeliveryErr(); err != nil {
		c.logger.Warn().Err(err).Str("tag", tag).Msg("desktop alert not delivered")
	}
	return true
}

func testExpression(t model.NotificationType) model.MascotMood {
	switch t {
	case model.NotificationCelebration:
		return model.MoodCelebrating
	case model.NotificationGuilt:
		return model.MoodSad
	default:
		return model.MoodScheming
	}
}
