package state

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/model"
	"github.com/nhle/prodowl/internal/social"
)

// SocialSnapshot is the persisted form of SocialStore.
type SocialSnapshot struct {
	Tasks []model.SocialTask `json:"tasks"`
}

// SocialStore owns chores that live on social platforms.
type SocialStore struct {
	tasks   []model.SocialTask
	opts    Options
	hook    Hook[SocialSnapshot]
	timeout time.Duration
}

// NewSocialStore creates a SocialStore seeded with initial. Execute falls
// back to a task's web URL when its app link fails within timeout.
func NewSocialStore(initial SocialSnapshot, opts Options, hook Hook[SocialSnapshot], timeout time.Duration) *SocialStore {
	if timeout <= 0 {
		timeout = deeplink.DefaultFallbackTimeout
	}
	return &SocialStore{
		tasks:   slices.Clone(initial.Tasks),
		opts:    opts.withDefaults(),
		hook:    hook,
		timeout: timeout,
	}
}

// Snapshot returns a copy of the store's state.
func (s *SocialStore) Snapshot() SocialSnapshot {
	return SocialSnapshot{Tasks: slices.Clone(s.tasks)}
}

func (s *SocialStore) commit() { emit(s.hook, s.Snapshot()) }

// Timeout is how long Execute waits on the app link before the web fallback.
func (s *SocialStore) Timeout() time.Duration { return s.timeout }

func (s *SocialStore) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.SocialTask) bool { return t.ID == id })
}

// Add stores t under a fresh id as not completed. A blank title is ignored.
func (s *SocialStore) Add(t model.SocialTask) (model.SocialTask, bool) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return model.SocialTask{}, false
	}
	t.ID = "social-" + s.opts.NewID()
	t.Completed = false
	s.tasks = append(s.tasks, t)
	s.commit()
	return t, true
}

// Complete marks the task done.
func (s *SocialStore) Complete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = true
	s.commit()
	return true
}

// Delete removes the task with id.
func (s *SocialStore) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.commit()
	return true
}

// Execute opens the task on its platform. The user confirms completion
// separately, so the task is left as it was. Unknown ids open nothing.
func (s *SocialStore) Execute(ctx context.Context, id string, opener deeplink.Opener) (string, error) {
	i := s.index(id)
	if i < 0 || opener == nil {
		return "", nil
	}
	return social.Execute(ctx, s.tasks[i], opener, s.timeout)
}

// LoadSamples replaces all tasks with the starter set.
func (s *SocialStore) LoadSamples() {
	s.tasks = social.Samples(s.opts.Now())
	s.commit()
}

// All returns every task in insertion order.
func (s *SocialStore) All() []model.SocialTask { return slices.Clone(s.tasks) }

// Get returns the task with id.
func (s *SocialStore) Get(id string) (model.SocialTask, bool) {
	i := s.index(id)
	if i < 0 {
		return model.SocialTask{}, false
	}
	return s.tasks[i], true
}

// ByPlatform returns tasks for platform.
func (s *SocialStore) ByPlatform(p model.SocialPlatform) []model.SocialTask {
	var out []model.SocialTask
	for _, t := range s.tasks {
		if t.Platform == p {
			out = append(out, t)
		}
	}
	return out
}

// Pending returns tasks not yet completed.
func (s *SocialStore) Pending() []model.SocialTask {
	var out []model.SocialTask
	for _, t := range s.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedCount counts completed tasks.
func (s *SocialStore) CompletedCount() int {
	return len(s.tasks) - len(s.Pending())
}

// Metrics summarizes completions per platform.
func (s *SocialStore) Metrics() map[model.SocialPlatform]social.Metrics {
	return social.CalculateMetrics(s.tasks, s.opts.Now())
}
