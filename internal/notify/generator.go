// Package notify picks and renders the mascot's contextual notifications
// and delivers them as desktop alerts.
package notify

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/nhle/prodowl/internal/model"
)

// streakAtRiskMessage is the fixed text for the streak-at-risk rule.
const streakAtRiskMessage = "Your streak is about to DIE. Do something!"

// DefaultTriggerChance is the probability that a selection is surfaced.
const DefaultTriggerChance = 0.3

// Context is a snapshot of user activity used to pick a notification.
type Context struct {
	OverdueTaskCount       int
	PendingTaskCount       int
	CurrentStreak          int
	HoursSinceLastActivity float64
	CompletedToday         int
}

// Selection is a chosen notification category with its rendered message.
type Selection struct {
	Type             model.NotificationType
	Message          string
	MascotExpression model.MascotMood
}

// Generator renders notifications from the template pools using an
// injected random source.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a Generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// NewSeededGenerator creates a Generator with a deterministic PCG source.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Message picks a message uniformly from the pool for t and substitutes
// {key} placeholders from replacements. Placeholders without a value are
// left as-is. An unknown type yields an empty string.
func (g *Generator) Message(t model.NotificationType, replacements map[string]string) string {
	tpl, ok := Templates[t]
	if !ok || len(tpl.Messages) == 0 {
		return ""
	}
	return Fill(tpl.Messages[g.rnd.IntN(len(tpl.Messages))], replacements)
}

// Pick returns a uniformly chosen element of pool, or "" when it is empty.
func (g *Generator) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[g.rnd.IntN(len(pool))]
}

// Select applies the priority rules to c. The first matching rule wins;
// nil means no notification is warranted.
//
// The streak-at-risk rule can only fire when hours is in (20, 24] and the
// passive-aggressive rule did not match, because longer absences are
// already claimed by the guilt rule.
func (g *Generator) Select(c Context) *Selection {
	switch {
	case c.CompletedToday >= 5:
		return g.selection(model.NotificationCelebration, nil)

	case c.OverdueTaskCount > 0:
		return g.selection(model.NotificationUrgent, map[string]string{
			"count": strconv.Itoa(c.OverdueTaskCount),
		})

	case c.HoursSinceLastActivity > 24:
		days := int(math.Floor(c.HoursSinceLastActivity / 24))
		return g.selection(model.NotificationGuilt, map[string]string{
			"days": strconv.Itoa(days),
		})

	case c.HoursSinceLastActivity > 4 && c.PendingTaskCount > 0:
		hours := int(math.Floor(c.HoursSinceLastActivity))
		return g.selection(model.NotificationPassiveAggressive, map[string]string{
			"hours": strconv.Itoa(hours),
		})

	case c.CurrentStreak > 0 && c.HoursSinceLastActivity > 20:
		return &Selection{
			Type:             model.NotificationUrgent,
			Message:          streakAtRiskMessage,
			MascotExpression: Expression(model.NotificationUrgent),
		}
	}
	return nil
}

// Surface reports whether a selected notification should actually be shown,
// succeeding with probability chance.
func (g *Generator) Surface(chance float64) bool {
	return g.rnd.Float64() < chance
}

// RandomType returns a uniformly chosen notification type.
func (g *Generator) RandomType() model.NotificationType {
	return model.NotificationTypes[g.rnd.IntN(len(model.NotificationTypes))]
}

func (g *Generator) selection(t model.NotificationType, replacements map[string]string) *Selection {
	return &Selection{
		Type:             t,
		Message:          g.Message(t, replacements),
		MascotExpression: Expression(t),
	}
}

// Fill substitutes every {key} in msg with replacements[key] in a single
// pass, so placeholders inside substituted values are left alone.
func Fill(msg string, replacements map[string]string) string {
	if len(replacements) == 0 {
		return msg
	}
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", replacements[k])
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
