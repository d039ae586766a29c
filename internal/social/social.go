// Package social builds chores that live on external social platforms and
// opens them through deep links.
package social

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/notify"
)

// ErrNothingToOpen is returned when a task carries no URL at all.
var ErrNothingToOpen = errors.New("social task has no link to open")

// Platform describes how a platform is presented.
type Platform struct {
	Name    string
	Color   string
	Icon    string
	BaseURL string
}

// Platforms is the presentation table for every supported platform.
var Platforms = map[model.SocialPlatform]Platform{
	model.PlatformTwitter:  {Name: "Twitter/X", Color: "#1DA1F2", Icon: "𝕏", BaseURL: "https://twitter.com"},
	model.PlatformDiscord:  {Name: "Discord", Color: "#5865F2", Icon: "💬", BaseURL: "https://discord.com"},
	model.PlatformGitHub:   {Name: "GitHub", Color: "#333333", Icon: "🐙", BaseURL: "https://github.com"},
	model.PlatformLinkedIn: {Name: "LinkedIn", Color: "#0A66C2", Icon: "💼", BaseURL: "https://linkedin.com"},
	model.PlatformTelegram: {Name: "Telegram", Color: "#26A5E4", Icon: "✈️", BaseURL: "https://t.me"},
}

// Nags are per-platform guilt lines. They use {friend}, {count} and {days}.
var Nags = map[model.SocialPlatform][]string{
	model.PlatformTwitter: {
		"Your followers haven't heard from you in a while. They're worried.",
		"The algorithm is forgetting you exist. Post something!",
		"{friend} just tweeted. Don't let them steal your spotlight.",
		"Your Twitter engagement is crying. Show it some love.",
		"Tweet or be forgotten. Those are the only options.",
	},
	model.PlatformDiscord: {
		"There are {count} unread messages in your alpha group. FOMO is real.",
		"Everyone's chatting without you. That's fine. Totally fine.",
		"Your Discord status has been 'offline' for too long. People are talking.",
		"You missed 3 announcements. Could be nothing. Could be everything.",
		"The community event started. Without you. As usual.",
	},
	model.PlatformGitHub: {
		"Your PR has been open for {days} days. The code is getting stale.",
		"Someone left a review on your code. They have... opinions.",
		"{count} issues assigned to you. They're multiplying.",
		"Your contribution graph is looking pretty... empty.",
		"Open source doesn't maintain itself. Well, actually it does. But still.",
	},
	model.PlatformLinkedIn: {
		"Your network grew by 0 people this week. Very exclusive.",
		"{count} people viewed your profile. Make them remember you.",
		"Your competitor just posted about their promotion. Just saying.",
		"Professional networking: It's like regular networking, but with more humble bragging.",
		"Share your wins or did they even happen?",
	},
	model.PlatformTelegram: {
		"Your alpha group is on fire. You're missing it.",
		"{count} unread messages. Some of them might even be important.",
		"The group chat moved on without you. As groups do.",
		"New announcement in your favorite channel. Or was it spam? Only one way to find out.",
		"Your Telegram is lonelier than a read receipt without a reply.",
	},
}

// Nag picks a guilt line for platform and fills its placeholders.
func Nag(r *rand.Rand, platform model.SocialPlatform, replacements map[string]string) string {
	pool := Nags[platform]
	if len(pool) == 0 {
		return ""
	}
	return notify.Fill(pool[r.IntN(len(pool))], replacements)
}

func fallbackID(prefix string, now time.Time) string {
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// NewTwitterPost creates a task to post content. An empty id is generated
// from now.
func NewTwitterPost(content, id string, now time.Time) model.SocialTask {
	if id == "" {
		id = fallbackID("twitter", now)
	}
	desc := "Share your thoughts"
	if content != "" {
		desc = `Share: "` + truncate(content, 50) + `..."`
	}
	return model.SocialTask{
		ID:               id,
		Platform:         model.PlatformTwitter,
		Type:             model.SocialPost,
		Title:            "Post on Twitter",
		Description:      desc,
		PrefilledContent: content,
		DeepLink:         deeplink.TwitterCompose(content),
		WebFallback:      deeplink.TwitterWebCompose(content),
	}
}

// NewDiscordCheck creates a task to read a Discord channel.
func NewDiscordCheck(serverID, channelID, serverName, id string, now time.Time) model.SocialTask {
	if id == "" {
		id = fallbackID("discord", now)
	}
	return model.SocialTask{
		ID:          id,
		Platform:    model.PlatformDiscord,
		Type:        model.SocialCheck,
		Title:       "Check " + serverName,
		Description: "New messages waiting for you",
		DeepLink:    deeplink.DiscordChannel(serverID, channelID),
		WebFallback: deeplink.DiscordWebChannel(serverID, channelID),
	}
}

// NewGitHubReview creates a task to review a pull request.
func NewGitHubReview(owner, repo string, pr int, prTitle, id string, now time.Time) model.SocialTask {
	if id == "" {
		id = fallbackID("github", now)
	}
	u := deeplink.GitHubPR(owner, repo, pr)
	return model.SocialTask{
		ID:          id,
		Platform:    model.PlatformGitHub,
		Type:        model.SocialReview,
		Title:       "Review PR #" + strconv.Itoa(pr),
		Description: prTitle,
		TargetURL:   u,
		WebFallback: u,
	}
}

// NewLinkedInShare creates a task to share a link.
func NewLinkedInShare(target, title, id string, now time.Time) model.SocialTask {
	if id == "" {
		id = fallbackID("linkedin", now)
	}
	return model.SocialTask{
		ID:          id,
		Platform:    model.PlatformLinkedIn,
		Type:        model.SocialShare,
		Title:       "Share on LinkedIn",
		Description: title,
		TargetURL:   target,
		WebFallback: deeplink.LinkedInShare(target, title),
	}
}

// Samples returns the starter set of social tasks.
func Samples(now time.Time) []model.SocialTask {
	return []model.SocialTask{
		NewTwitterPost("Just crushed my productivity goals! 🚀 #BuildInPublic", "", now),
		{
			ID:          "social-discord-1",
			Platform:    model.PlatformDiscord,
			Type:        model.SocialCheck,
			Title:       "Check Alpha Discord",
			Description: "47 unread messages in announcements",
			WebFallback: "https://discord.com",
		},
		{
			ID:          "social-github-1",
			Platform:    model.PlatformGitHub,
			Type:        model.SocialReview,
			Title:       "Review open PRs",
			Description: "3 PRs waiting for your review",
			WebFallback: "https://github.com/pulls",
		},
		{
			ID:          "social-linkedin-1",
			Platform:    model.PlatformLinkedIn,
			Type:        model.SocialEngage,
			Title:       "Engage with network",
			Description: "Comment on 3 posts from your network",
			WebFallback: "https://linkedin.com/feed",
		},
		{
			ID:          "social-telegram-1",
			Platform:    model.PlatformTelegram,
			Type:        model.SocialCheck,
			Title:       "Check Telegram groups",
			Description: "New alpha dropped in your groups",
			WebFallback: "https://web.telegram.org",
		},
	}
}

// Execute opens the task: the app deep link with a web fallback when both
// exist, otherwise whichever single URL it has. It never completes the task.
func Execute(ctx context.Context, task model.SocialTask, o deeplink.Opener, timeout time.Duration) (string, error) {
	switch {
	case task.DeepLink != "" && task.WebFallback != "":
		return deeplink.Open(ctx, o, task.DeepLink, task.WebFallback, timeout)
	case task.DeepLink != "":
		return task.DeepLink, o.OpenURL(ctx, task.DeepLink)
	case task.WebFallback != "":
		return task.WebFallback, o.OpenURL(ctx, task.WebFallback)
	case task.TargetURL != "":
		return task.TargetURL, o.OpenURL(ctx, task.TargetURL)
	}
	return "", ErrNothingToOpen
}

// Metrics summarizes activity on one platform.
type Metrics struct {
	Platform       model.SocialPlatform
	TasksCompleted int
	LastActivity   *time.Time

	// Streak is always zero until completion history is tracked per day.
	Streak int
}

// CalculateMetrics returns metrics for every platform. LastActivity is set
// to now for platforms with at least one completed task.
func CalculateMetrics(tasks []model.SocialTask, now time.Time) map[model.SocialPlatform]Metrics {
	out := make(map[model.SocialPlatform]Metrics, len(model.SocialPlatforms))
	for _, p := range model.SocialPlatforms {
		m := Metrics{Platform: p}
		for _, t := range tasks {
			if t.Platform == p && t.Completed {
				m.TasksCompleted++
			}
		}
		if m.TasksCompleted > 0 {
			ts := now
			m.LastActivity = &ts
		}
		out[p] = m
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
