package notify

import "github.com/nhle/prodowl/internal/model"

// Template is the message pool for one notification type.
type Template struct {
	Type             model.NotificationType
	Messages         []string
	MascotExpression model.MascotMood
}

var guiltMessages = []string{
	"I've been waiting here all day... no pressure though.",
	"{name} misses you. Your tasks miss you more.",
	"Your streak is crying. Literally.",
	"Remember when you said you'd be productive? I remember.",
	"Fine. I'll just sit here. Alone. With your undone tasks.",
	"Your future self just texted. They're disappointed.",
	"I made you a to-do list. You haven't even looked at it.",
	"The tasks aren't going to complete themselves... trust me, I asked.",
	"Day {days} of waiting for you to open the app...",
	"Your goals called. They want to know if you're still together.",
}

var passiveAggressiveMessages = []string{
	"Oh, you have time for {app} but not for your goals? Cool cool cool.",
	"No worries! Your dreams can wait. They've been waiting for years anyway.",
	"I see you're busy. I'll just tell your tasks you said hi.",
	"Must be nice having zero responsibilities.",
	"That's okay, other users completed 3 tasks already today.",
	"I'm not mad. I'm just... disappointed.",
	"Sure, ignore me. Everyone else does too.",
	"Your task has been pending for {hours} hours. It's developing abandonment issues.",
	"Oh you're back? I wasn't crying, you were crying.",
	"Remember me? Your productivity app? No? That's fine.",
}

var urgentMessages = []string{
	"Your task window closes in {minutes} minutes. Just saying.",
	"I'm STRESSED about your calendar right now.",
	"Everyone else already finished this. Literally everyone.",
	"This deadline is approaching faster than your motivation.",
	"URGENT: Your procrastination has reached critical levels.",
	"Red alert! Task overdue! This is not a drill!",
	"Your streak is about to DIE. Do something!",
	"The clock is ticking... tick tock... TICK TOCK.",
	"{count} people in your network just completed their goals...",
	"Last chance before I start sending sad owl pictures.",
}

var celebrationMessages = []string{
	"YESSS! You actually did it! I'm literally crying!",
	"WHO IS THIS PRODUCTIVITY LEGEND?!",
	"Your streak is now longer than my attention span!",
	"I just told all the other mascots about you. You're famous now.",
	"Achievement unlocked: Actually Did The Thing!",
	"You're on FIRE! (Not literally, please don't panic)",
	"This calls for a celebration! 🎉🎉🎉",
	"I knew you had it in you! (I had doubts, but still!)",
	"Productivity level: OVER 9000!",
	"You just made my whole day. My whole WEEK even!",
}

var fomoMessages = []string{
	"Your friend {friend} just completed their workout. Race them?",
	"{count} people in your network are being productive right now.",
	"{friend} just hit a 30-day streak. Where's yours?",
	"Everyone's crushing their goals today. Join them?",
	"The productivity train is leaving. Are you on board?",
	"Your competitor just finished {task}. Just saying...",
	"{friend} shared their progress. Show them what you've got!",
	"Trending now: Being productive. You should try it.",
}

// Templates maps every notification type to its pool.
var Templates = map[model.NotificationType]Template{
	model.NotificationGuilt: {
		Type:             model.NotificationGuilt,
		Messages:         guiltMessages,
		MascotExpression: model.MoodSad,
	},
	model.NotificationPassiveAggressive: {
		Type:             model.NotificationPassiveAggressive,
		Messages:         passiveAggressiveMessages,
		MascotExpression: model.MoodDisappointed,
	},
	model.NotificationUrgent: {
		Type:             model.NotificationUrgent,
		Messages:         urgentMessages,
		MascotExpression: model.MoodScheming,
	},
	model.NotificationCelebration: {
		Type:             model.NotificationCelebration,
		Messages:         celebrationMessages,
		MascotExpression: model.MoodCelebrating,
	},
	model.NotificationFOMO: {
		Type:             model.NotificationFOMO,
		Messages:         fomoMessages,
		MascotExpression: model.MoodScheming,
	},
}

// Expression returns the mascot expression for a notification type.
func Expression(t model.NotificationType) model.MascotMood {
	if tpl, ok := Templates[t]; ok {
		return tpl.MascotExpression
	}
	return model.MoodNeutral
}
