package model

import "time"

// MascotMood is the mascot's current emotional state.
type MascotMood string

const (
	MoodHappy        MascotMood = "happy"
	MoodSad          MascotMood = "sad"
	MoodExcited      MascotMood = "excited"
	MoodDisappointed MascotMood = "disappointed"
	MoodScheming     MascotMood = "scheming"
	MoodCelebrating  MascotMood = "celebrating"
	MoodNeutral      MascotMood = "neutral"
)

// MascotState is the singleton mascot persona.
type MascotState struct {
	Mood            MascotMood `json:"mood"`
	Message         string     `json:"message"`
	LastInteraction time.Time  `json:"last_interaction"`
}

// AppView names a top-level screen.
type AppView string

const (
	ViewTasks         AppView = "tasks"
	ViewHabits        AppView = "habits"
	ViewTimer         AppView = "timer"
	ViewNotes         AppView = "notes"
	ViewSocial        AppView = "social"
	ViewWeb3          AppView = "web3"
	ViewNotifications AppView = "notifications"
	ViewSettings      AppView = "settings"
)

// AppViews lists the top-level screens in sidebar order.
var AppViews = []AppView{
	ViewTasks, ViewHabits, ViewTimer, ViewNotes,
	ViewSocial, ViewWeb3, ViewNotifications, ViewSettings,
}
