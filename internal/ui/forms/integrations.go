package forms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/social"
	"github.com/nhle/prodowl/internal/web3"
)

// SocialSubmittedMsg carries a new social task.
type SocialSubmittedMsg struct {
	Task model.SocialTask
}

type socialBindings struct {
	platform    model.SocialPlatform
	kind        model.SocialTaskType
	title       string
	description string
	targetURL   string
	content     string
	deadline    string
}

// NewSocial builds the form for a new social task.
func NewSocial(width, height int) Model {
	b := &socialBindings{platform: model.PlatformTwitter, kind: model.SocialPost}

	platforms := make([]huh.Option[model.SocialPlatform], len(model.SocialPlatforms))
	for i, p := range model.SocialPlatforms {
		info := social.Platforms[p]
		platforms[i] = huh.NewOption(info.Icon+" "+info.Name, p)
	}
	kinds := []model.SocialTaskType{
		model.SocialPost, model.SocialEngage, model.SocialReply, model.SocialReview,
		model.SocialShare, model.SocialAttend, model.SocialCheck,
	}
	kindOpts := make([]huh.Option[model.SocialTaskType], len(kinds))
	for i, k := range kinds {
		kindOpts[i] = huh.NewOption(label(string(k)), k)
	}

	group := huh.NewGroup(
		huh.NewSelect[model.SocialPlatform]().
			Title("Platform").
			Options(platforms...).
			Value(&b.platform),
		huh.NewSelect[model.SocialTaskType]().
			Title("Type").
			Options(kindOpts...).
			Value(&b.kind),
		huh.NewInput().
			Title("Title").
			Value(&b.title).
			Validate(validateRequired("Title")),
		huh.NewInput().
			Title("Description").
			Value(&b.description),
		huh.NewInput().
			Title("Target URL").
			Placeholder("https://... (optional)").
			Value(&b.targetURL),
		huh.NewText().
			Title("Prefilled content").
			Lines(3).
			Value(&b.content),
		huh.NewInput().
			Title("Deadline").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&b.deadline).
			Validate(validateOptionalDate),
	)

	submit := func() tea.Msg {
		return SocialSubmittedMsg{Task: b.task(time.Now())}
	}
	return newModel("New Social Task", width, height, submit, group)
}

func (b *socialBindings) task(now time.Time) model.SocialTask {
	t := model.SocialTask{
		Platform:         b.platform,
		Type:             b.kind,
		Title:            strings.TrimSpace(b.title),
		Description:      strings.TrimSpace(b.description),
		TargetURL:        strings.TrimSpace(b.targetURL),
		PrefilledContent: strings.TrimSpace(b.content),
	}
	t.Deadline, _ = ParseDate(b.deadline, time.Local)

	if t.Platform == model.PlatformTwitter && t.Type == model.SocialPost && t.PrefilledContent != "" {
		compose := social.NewTwitterPost(t.PrefilledContent, "draft", now)
		t.DeepLink = compose.DeepLink
		t.WebFallback = compose.WebFallback
	}
	if t.WebFallback == "" && t.TargetURL == "" {
		t.WebFallback = social.Platforms[t.Platform].BaseURL
	}
	return t
}

// Web3SubmittedMsg carries a new web3 task.
type Web3SubmittedMsg struct {
	Task model.Web3Task
}

type web3Bindings struct {
	kind        model.Web3TaskType
	title       string
	description string
	chain       model.ChainID
	contract    string
	value       string
	gas         string
	deepLink    string
	deadline    string
}

// NewWeb3 builds the form for a new web3 task.
func NewWeb3(width, height int) Model {
	b := &web3Bindings{kind: model.Web3Claim, chain: model.ChainEthereum}

	kinds := []model.Web3TaskType{
		model.Web3Mint, model.Web3Claim, model.Web3Vote, model.Web3Stake,
		model.Web3Bridge, model.Web3Swap, model.Web3Sign, model.Web3Custom,
	}
	kindOpts := make([]huh.Option[model.Web3TaskType], len(kinds))
	for i, k := range kinds {
		kindOpts[i] = huh.NewOption(label(string(k)), k)
	}
	chainOpts := make([]huh.Option[model.ChainID], len(web3.ChainOrder))
	for i, c := range web3.ChainOrder {
		chainOpts[i] = huh.NewOption(web3.Chains[c].Name, c)
	}

	group := huh.NewGroup(
		huh.NewSelect[model.Web3TaskType]().
			Title("Type").
			Options(kindOpts...).
			Value(&b.kind),
		huh.NewInput().
			Title("Title").
			Value(&b.title).
			Validate(validateRequired("Title")),
		huh.NewInput().
			Title("Description").
			Value(&b.description),
		huh.NewSelect[model.ChainID]().
			Title("Chain").
			Options(chainOpts...).
			Value(&b.chain),
		huh.NewInput().
			Title("Contract").
			Placeholder("0x... (optional)").
			Value(&b.contract),
		huh.NewInput().
			Title("Value").
			Placeholder("0.01 ETH (optional)").
			Value(&b.value),
		huh.NewInput().
			Title("Estimated gas").
			Value(&b.gas),
		huh.NewInput().
			Title("dApp link").
			Placeholder("https://app... (optional)").
			Value(&b.deepLink),
		huh.NewInput().
			Title("Deadline").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&b.deadline).
			Validate(validateOptionalDate),
	)

	submit := func() tea.Msg {
		t := model.Web3Task{
			Type:            b.kind,
			Title:           strings.TrimSpace(b.title),
			Description:     strings.TrimSpace(b.description),
			Chain:           b.chain,
			ContractAddress: strings.TrimSpace(b.contract),
			Value:           strings.TrimSpace(b.value),
			EstimatedGas:    strings.TrimSpace(b.gas),
			DeepLink:        strings.TrimSpace(b.deepLink),
		}
		t.Deadline, _ = ParseDate(b.deadline, time.Local)
		return Web3SubmittedMsg{Task: t}
	}
	return newModel("New Web3 Task", width, height, submit, group)
}

// TimerSubmittedMsg starts a focus session.
type TimerSubmittedMsg struct {
	Title    string
	Category model.TaskCategory
	TaskID   string
}

type timerBindings struct {
	taskID   string
	title    string
	category model.TaskCategory
}

// NewTimer builds the start-session form. tasks offers open tasks to focus on.
func NewTimer(tasks []model.Task, width, height int) Model {
	b := &timerBindings{category: model.CategoryWork}

	titles := make(map[string]model.Task, len(tasks))
	taskOpts := []huh.Option[string]{huh.NewOption("No task", "")}
	for _, t := range tasks {
		titles[t.ID] = t
		taskOpts = append(taskOpts, huh.NewOption(t.Title, t.ID))
	}

	group := huh.NewGroup(
		huh.NewSelect[string]().
			Title("Focus on").
			Options(taskOpts...).
			Value(&b.taskID),
		huh.NewInput().
			Title("Session title").
			Placeholder("Defaults to the task title").
			Value(&b.title),
		huh.NewSelect[model.TaskCategory]().
			Title("Category").
			Options(categoryOptions()...).
			Value(&b.category),
	)

	submit := func() tea.Msg {
		msg := TimerSubmittedMsg{
			Title:    strings.TrimSpace(b.title),
			Category: b.category,
			TaskID:   b.taskID,
		}
		if t, ok := titles[b.taskID]; ok {
			if msg.Title == "" {
				msg.Title = t.Title
			}
			msg.Category = t.Category
		}
		if msg.Title == "" {
			msg.Title = "Focus session"
		}
		return msg
	}
	return newModel("Start Focus Session", width, height, submit, group)
}

// SettingsSubmittedMsg carries edited preferences.
type SettingsSubmittedMsg struct {
	UserName      string
	Alerts        bool
	TargetMinutes int
}

type settingsBindings struct {
	name   string
	alerts bool
	target string
}

// NewSettings builds the preferences form.
func NewSettings(name string, alerts bool, targetMinutes, width, height int) Model {
	b := &settingsBindings{name: name, alerts: alerts, target: strconv.Itoa(targetMinutes)}

	group := huh.NewGroup(
		huh.NewInput().
			Title("Your name").
			Value(&b.name),
		huh.NewConfirm().
			Title("Desktop alerts").
			Description("Let the owl interrupt you outside this screen.").
			Affirmative("Allow").
			Negative("Deny").
			Value(&b.alerts),
		huh.NewInput().
			Title("Focus target (minutes)").
			Value(&b.target).
			Validate(validateMinutes),
	)

	submit := func() tea.Msg {
		minutes, err := strconv.Atoi(strings.TrimSpace(b.target))
		if err != nil {
			minutes = targetMinutes
		}
		return SettingsSubmittedMsg{
			UserName:      strings.TrimSpace(b.name),
			Alerts:        b.alerts,
			TargetMinutes: minutes,
		}
	}
	return newModel("Settings", width, height, submit, group)
}

func validateMinutes(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 240 {
		return fmt.Errorf("enter a number of minutes between 1 and 240")
	}
	return nil
}
