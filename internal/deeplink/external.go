package deeplink

import (
	"net/url"
	"strconv"
	"strings"
)

// Outbound URL builders for third-party apps. Each app-scheme form has a
// web form next to it for use as an open fallback.

func TwitterCompose(text string) string {
	return "twitter://post?text=" + encodeComponent(text)
}

func TwitterProfile(username string) string {
	return "twitter://user?screen_name=" + username
}

func TwitterWebCompose(text string) string {
	return "https://twitter.com/intent/tweet?text=" + encodeComponent(text)
}

func DiscordChannel(serverID, channelID string) string {
	return "discord://channels/" + serverID + "/" + channelID
}

func DiscordServer(serverID string) string {
	return "discord://channels/" + serverID
}

func DiscordWebChannel(serverID, channelID string) string {
	return "https://discord.com/channels/" + serverID + "/" + channelID
}

func GitHubRepo(owner, repo string) string {
	return "github://repo/" + owner + "/" + repo
}

func GitHubIssue(owner, repo string, issue int) string {
	return "https://github.com/" + owner + "/" + repo + "/issues/" + strconv.Itoa(issue)
}

func GitHubPR(owner, repo string, pr int) string {
	return "https://github.com/" + owner + "/" + repo + "/pull/" + strconv.Itoa(pr)
}

func MetaMaskConnect() string {
	return "metamask://connect"
}

func MetaMaskSend(address, amount string) string {
	return "metamask://send?address=" + address + "&amount=" + amount
}

func MetaMaskWalletConnect(uri string) string {
	return "metamask://wc?uri=" + encodeComponent(uri)
}

// LinkedInShare builds the share-offsite URL. title is optional.
func LinkedInShare(target, title string) string {
	u := "https://www.linkedin.com/sharing/share-offsite/?url=" + encodeComponent(target)
	if title != "" {
		u += "&title=" + encodeComponent(title)
	}
	return u
}

func LinkedInProfile(profileID string) string {
	return "linkedin://profile/" + profileID
}

func TelegramChat(username string) string {
	return "tg://resolve?domain=" + username
}

// TelegramShare builds the t.me share URL. text is optional.
func TelegramShare(target, text string) string {
	u := "https://t.me/share/url?url=" + encodeComponent(target)
	if text != "" {
		u += "&text=" + encodeComponent(text)
	}
	return u
}

// encodeComponent escapes s for use as a query value, encoding spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
