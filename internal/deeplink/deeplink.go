// Package deeplink converts between in-app action descriptors and
// prodowl:// (or /app/ web) URLs.
package deeplink

import (
	"net/url"
	"strconv"
	"strings"
)

// Scheme is the custom URL scheme the app registers.
const Scheme = "prodowl://"

// webSegment marks the start of the action path in shareable web URLs.
const webSegment = "/app/"

// DefaultTimerMinutes is used when a start-timer link carries no duration.
const DefaultTimerMinutes = 25

// Action is the kind of thing a deep link asks the app to do.
type Action string

const (
	ActionCompleteTask Action = "complete-task"
	ActionOpenTask     Action = "open-task"
	ActionCheckHabit   Action = "check-habit"
	ActionStartTimer   Action = "start-timer"
	ActionOpenNote     Action = "open-note"
	ActionExternal     Action = "external"
)

// Actions lists every action kind.
var Actions = []Action{
	ActionCompleteTask, ActionOpenTask, ActionCheckHabit,
	ActionStartTimer, ActionOpenNote, ActionExternal,
}

// Link is a decoded deep link.
type Link struct {
	Action      Action
	ID          string
	Params      map[string]string
	ExternalURL string
}

// Duration returns the start-timer duration parameter, or "" if unset.
func (l Link) Duration() string {
	if l.Params == nil {
		return ""
	}
	return l.Params["duration"]
}

// Parse decodes rawURL. It accepts the custom scheme or any URL containing
// /app/, and reports false for anything else.
func Parse(rawURL string) (Link, bool) {
	if rest, ok := strings.CutPrefix(rawURL, Scheme); ok {
		return parsePath(rest)
	}
	if _, rest, ok := strings.Cut(rawURL, webSegment); ok {
		return parsePath(rest)
	}
	return Link{}, false
}

func parsePath(p string) (Link, bool) {
	segs := strings.Split(p, "/")
	action := segs[0]
	var id, sub string
	if len(segs) > 1 {
		id = segs[1]
	}
	if len(segs) > 2 {
		sub = segs[2]
	}

	switch action {
	case "task":
		if sub == "complete" {
			return Link{Action: ActionCompleteTask, ID: id}, true
		}
		return Link{Action: ActionOpenTask, ID: id}, true

	case "habit":
		return Link{Action: ActionCheckHabit, ID: id}, true

	case "timer":
		if id == "" {
			id = strconv.Itoa(DefaultTimerMinutes)
		}
		return Link{Action: ActionStartTimer, Params: map[string]string{"duration": id}}, true

	case "note":
		return Link{Action: ActionOpenNote, ID: id}, true

	case "external":
		ext, err := url.PathUnescape(id)
		if err != nil {
			return Link{}, false
		}
		return Link{Action: ActionExternal, ExternalURL: ext}, true
	}
	return Link{}, false
}

// Generate encodes l with the custom scheme. An unknown action yields the
// bare scheme. A start-timer link always carries a duration, so one
// generated without it decodes with the default duration filled in.
func Generate(l Link) string {
	return Scheme + path(l)
}

// GenerateWeb encodes l as a shareable web URL under baseURL.
func GenerateWeb(l Link, baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + webSegment + path(l)
}

func path(l Link) string {
	switch l.Action {
	case ActionCompleteTask:
		return "task/" + l.ID + "/complete"
	case ActionOpenTask:
		return "task/" + l.ID
	case ActionCheckHabit:
		return "habit/" + l.ID + "/check"
	case ActionStartTimer:
		d := l.Duration()
		if d == "" {
			d = strconv.Itoa(DefaultTimerMinutes)
		}
		return "timer/" + d
	case ActionOpenNote:
		return "note/" + l.ID
	case ActionExternal:
		return "external/" + url.PathEscape(l.ExternalURL)
	}
	return ""
}

// Handlers receive dispatched deep links. Nil handlers are skipped.
type Handlers struct {
	CompleteTask func(taskID string)
	OpenTask     func(taskID string)
	CheckHabit   func(habitID string)
	StartTimer   func(minutes int)
	OpenNote     func(noteID string)
	External     func(url string)
}

// Handle parses rawURL and invokes the matching handler. It returns true
// only when the link decoded and a handler for its action was set.
// Non-numeric timer durations fall back to DefaultTimerMinutes.
func Handle(rawURL string, h Handlers) bool {
	l, ok := Parse(rawURL)
	if !ok {
		return false
	}

	switch l.Action {
	case ActionCompleteTask:
		return call(h.CompleteTask, l.ID)
	case ActionOpenTask:
		return call(h.OpenTask, l.ID)
	case ActionCheckHabit:
		return call(h.CheckHabit, l.ID)
	case ActionStartTimer:
		if h.StartTimer == nil {
			return false
		}
		minutes, err := strconv.Atoi(l.Duration())
		if err != nil {
			minutes = DefaultTimerMinutes
		}
		h.StartTimer(minutes)
		return true
	case ActionOpenNote:
		return call(h.OpenNote, l.ID)
	case ActionExternal:
		return call(h.External, l.ExternalURL)
	}
	return false
}

func call(fn func(string), arg string) bool {
	if fn == nil {
		return false
	}
	fn(arg)
	return true
}
