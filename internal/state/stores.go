package state

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/prodowl/internal/deeplink"
	"github.com/nhle/prodowl/internal/mascot"
	"github.com/nhle/prodowl/internal/notify"
	"github.com/nhle/prodowl/internal/store"
	"github.com/nhle/prodowl/internal/streak"
	"github.com/nhle/prodowl/internal/web3"
)

// Repository loads and saves JSON snapshots by key.
type Repository interface {
	Saver
	LoadJSON(ctx context.Context, key string, v any) (bool, error)
}

// Deps are the integrations handed to the stores that need them.
type Deps struct {
	// Provider is the wallet bridge; nil means no wallet.
	Provider web3.Provider

	// Opener launches deep links for web3 tasks.
	Opener deeplink.Opener

	// TimerTarget is the focus target for a fresh timer, in minutes.
	TimerTarget int

	// FallbackTimeout bounds how long social deep links wait before the web URL.
	FallbackTimeout time.Duration
}

// Stores bundles every entity store.
type Stores struct {
	Tasks  *TaskStore
	Habits *HabitStore
	Notes  *NoteStore
	Timer  *TimerStore
	Social *SocialStore
	Web3   *Web3Store
	App    *AppStore
}

// Open loads every snapshot from repo and wires each store to save back
// under its key. Missing snapshots start from defaults.
func Open(ctx context.Context, repo Repository, opts Options, deps Deps) (*Stores, error) {
	opts = opts.withDefaults()
	now := opts.Now()

	var tasks TaskSnapshot
	if err := load(ctx, repo, store.KeyTasks, &tasks); err != nil {
		return nil, err
	}
	var habits HabitSnapshot
	if err := load(ctx, repo, store.KeyHabits, &habits); err != nil {
		return nil, err
	}
	var notes NoteSnapshot
	if err := load(ctx, repo, store.KeyNotes, &notes); err != nil {
		return nil, err
	}
	timer := DefaultTimerSnapshot(deps.TimerTarget)
	if err := load(ctx, repo, store.KeyTimer, &timer); err != nil {
		return nil, err
	}
	var soc SocialSnapshot
	if err := load(ctx, repo, store.KeySocial, &soc); err != nil {
		return nil, err
	}
	var w3 Web3Snapshot
	if err := load(ctx, repo, store.KeyWeb3, &w3); err != nil {
		return nil, err
	}
	app := DefaultAppSnapshot(now)
	if err := load(ctx, repo, store.KeyApp, &app); err != nil {
		return nil, err
	}

	log := opts.Logger
	s := &Stores{
		Tasks:  NewTaskStore(tasks, opts, Persist[TaskSnapshot](ctx, repo, store.KeyTasks, log)),
		Habits: NewHabitStore(habits, opts, Persist[HabitSnapshot](ctx, repo, store.KeyHabits, log)),
		Notes:  NewNoteStore(notes, opts, Persist[NoteSnapshot](ctx, repo, store.KeyNotes, log)),
		Timer:  NewTimerStore(timer, opts, Persist[TimerSnapshot](ctx, repo, store.KeyTimer, log)),
		Social: NewSocialStore(soc, opts, Persist[SocialSnapshot](ctx, repo, store.KeySocial, log), deps.FallbackTimeout),
		Web3:   NewWeb3Store(w3, opts, Persist[Web3Snapshot](ctx, repo, store.KeyWeb3, log), deps.Provider, deps.Opener),
		App:    NewAppStore(app, opts, Persist[AppSnapshot](ctx, repo, store.KeyApp, log)),
	}

	// Streaks decay across midnight while the app is closed.
	s.Habits.Refresh()

	log.Debug().
		Int("tasks", len(tasks.Tasks)).
		Int("habits", len(habits.Habits)).
		Int("notes", len(notes.Notes)).
		Msg("stores opened")
	return s, nil
}

func load(ctx context.Context, repo Repository, key string, v any) error {
	if _, err := repo.LoadJSON(ctx, key, v); err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	return nil
}

// NotifyContext gathers the inputs of the notification selector.
func (s *Stores) NotifyContext(now time.Time) notify.Context {
	return notify.Context{
		OverdueTaskCount:       len(s.Tasks.Overdue()),
		PendingTaskCount:       s.Tasks.PendingCount(),
		CurrentStreak:          s.Habits.MaxStreak(),
		HoursSinceLastActivity: now.Sub(s.App.LastActivity()).Hours(),
		CompletedToday:         s.Tasks.CompletedTodayCount(),
	}
}

// MoodInputs gathers the inputs of the mascot mood check.
func (s *Stores) MoodInputs(now time.Time) mascot.MoodInputs {
	todays := s.Habits.TodaysHabits()
	today := streak.Today(now)
	done := 0
	for _, h := range todays {
		if h.CompletedOn(today) {
			done++
		}
	}
	m := s.App.Mascot()
	return mascot.MoodInputs{
		OverdueCount:          len(s.Tasks.Overdue()),
		TodaysHabits:          len(todays),
		CompletedHabitsToday:  done,
		HoursSinceInteraction: now.Sub(m.LastInteraction).Hours(),
		Mood:                  m.Mood,
	}
}
