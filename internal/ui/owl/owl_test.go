package owl

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
)

func TestBubbleShowsFaceAndMessage(t *testing.T) {
	out := Bubble(model.MascotState{Mood: model.MoodSad, Message: "Your tasks miss you."}, 80)
	assert.Contains(t, out, "😢")
	assert.Contains(t, out, "Your tasks miss you.")

	assert.Contains(t, Bubble(model.MascotState{}, 80), "...")
}

func TestToastsKeepNewest(t *testing.T) {
	assert.Empty(t, Toasts(nil, 80))

	var alerts []notify.Alert
	for _, body := range []string{"one", "two", "three", "four"} {
		alerts = append(alerts, notify.Alert{Title: "Prodowl", Body: body, ExpiresAt: time.Now().Add(time.Minute)})
	}
	out := Toasts(alerts, 80)
	assert.NotContains(t, out, "one")
	assert.Contains(t, out, "four")
	assert.Equal(t, MaxToasts, strings.Count(out, "🔔"))
}

func TestPanel(t *testing.T) {
	st := model.MascotState{Mood: model.MoodHappy, Message: "Keep going"}
	assert.Equal(t, Bubble(st, 60), Panel(st, nil, 60))
	assert.Contains(t, Panel(st, []notify.Alert{{Title: "Prodowl", Body: "hey"}}, 60), "hey")
}
