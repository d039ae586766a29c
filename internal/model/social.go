package model

import "time"

// SocialPlatform identifies an external social network.
type SocialPlatform string

const (
	PlatformTwitter  SocialPlatform = "twitter"
	PlatformDiscord  SocialPlatform = "discord"
	PlatformGitHub   SocialPlatform = "github"
	PlatformLinkedIn SocialPlatform = "linkedin"
	PlatformTelegram SocialPlatform = "telegram"
)

// SocialPlatforms lists every supported platform.
var SocialPlatforms = []SocialPlatform{
	PlatformTwitter, PlatformDiscord, PlatformGitHub, PlatformLinkedIn, PlatformTelegram,
}

// SocialTaskType is what the user is asked to do on a platform.
type SocialTaskType string

const (
	SocialPost   SocialTaskType = "post"
	SocialEngage SocialTaskType = "engage"
	SocialReply  SocialTaskType = "reply"
	SocialReview SocialTaskType = "review"
	SocialShare  SocialTaskType = "share"
	SocialAttend SocialTaskType = "attend"
	SocialCheck  SocialTaskType = "check"
)

// SocialTask is a chore that lives on an external platform.
type SocialTask struct {
	ID               string         `json:"id"`
	Platform         SocialPlatform `json:"platform"`
	Type             SocialTaskType `json:"type"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	TargetURL        string         `json:"target_url,omitempty"`
	PrefilledContent string         `json:"prefilled_content,omitempty"`
	Deadline         *time.Time     `json:"deadline,omitempty"`
	Completed        bool           `json:"completed"`
	DeepLink         string         `json:"deep_link,omitempty"`
	WebFallback      string         `json:"web_fallback,omitempty"`
}
