// Package mascot holds the owl's mood vocabulary and the rules that move
// it between moods.
package mascot

import (
	"fmt"
	"math/rand/v2"

	"github.com/nhle/prodowl/internal/model"
)

// Greeting is what the mascot says when poked.
const Greeting = "Hi there! Let's be productive!"

// Messages holds the stock lines per mood.
var Messages = map[model.MascotMood][]string{
	model.MoodHappy: {
		"You're doing amazing!",
		"Keep up the great work!",
		"I'm so proud of you!",
	},
	model.MoodSad: {
		"I've been waiting here all day...",
		"Your tasks miss you.",
		"Did you forget about me?",
	},
	model.MoodExcited: {
		"Let's crush some tasks today!",
		"I can feel the productivity!",
		"Ready to be LEGENDARY?",
	},
	model.MoodDisappointed: {
		"I'm not mad, just disappointed.",
		"Your future self just texted. They're concerned.",
		"Must be nice having zero responsibilities.",
	},
	model.MoodScheming: {
		"I have some tasks you might want to see...",
		"Your friends are being productive right now...",
		"There's a deadline approaching... just saying.",
	},
	model.MoodCelebrating: {
		"YESSS! You're on FIRE!",
		"WHO IS THIS PRODUCTIVITY LEGEND?!",
		"Achievement unlocked: Actually Did The Thing!",
	},
	model.MoodNeutral: {
		"Ready when you are!",
		"What should we work on?",
		"Let's make today count.",
	},
}

// DefaultState is the mascot on first launch.
func DefaultState() model.MascotState {
	return model.MascotState{Mood: model.MoodNeutral, Message: "Ready when you are!"}
}

var faces = map[model.MascotMood]string{
	model.MoodHappy:        "😊",
	model.MoodSad:          "😢",
	model.MoodExcited:      "🤩",
	model.MoodDisappointed: "😔",
	model.MoodScheming:     "😏",
	model.MoodCelebrating:  "🎉",
	model.MoodNeutral:      "🙂",
}

// Face returns the emoji for mood.
func Face(mood model.MascotMood) string {
	if f, ok := faces[mood]; ok {
		return f
	}
	return faces[model.MoodNeutral]
}

// RandomMessage picks one of the stock lines for mood.
func RandomMessage(r *rand.Rand, mood model.MascotMood) string {
	pool := Messages[mood]
	if len(pool) == 0 {
		pool = Messages[model.MoodNeutral]
	}
	return pool[r.IntN(len(pool))]
}

// MoodInputs is what the periodic mood check looks at.
type MoodInputs struct {
	OverdueCount          int
	TodaysHabits          int
	CompletedHabitsToday  int
	HoursSinceInteraction float64
	Mood                  model.MascotMood
}

// Verdict is a mood change. An empty Message means pick a stock line.
type Verdict struct {
	Mood    model.MascotMood
	Message string
}

// CheckMood decides whether the mascot should change mood. Rules are tried
// in order and the first match wins.
func CheckMood(in MoodInputs) (Verdict, bool) {
	switch {
	case in.OverdueCount > 3:
		return Verdict{
			Mood:    model.MoodScheming,
			Message: fmt.Sprintf("You have %d overdue tasks... just saying.", in.OverdueCount),
		}, true
	case in.TodaysHabits > 0 && in.CompletedHabitsToday == in.TodaysHabits:
		return Verdict{Mood: model.MoodCelebrating, Message: "ALL habits completed! You absolute LEGEND!"}, true
	case in.HoursSinceInteraction > 2:
		return Verdict{Mood: model.MoodSad, Message: "I've been waiting here... no pressure though."}, true
	case in.HoursSinceInteraction > 0.5 && in.Mood != model.MoodNeutral:
		return Verdict{Mood: model.MoodNeutral}, true
	}
	return Verdict{}, false
}
