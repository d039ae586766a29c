// Package pulse drives the app's periodic checks. A cron scheduler posts
// tick messages on a buffered channel; the Bubble Tea loop receives them
// through Listen and does the actual work, so no store is touched off the
// UI goroutine.
package pulse

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// MoodCheckMsg asks the app to re-evaluate the mascot's mood.
type MoodCheckMsg struct{ At time.Time }

// NotifyCheckMsg asks the app to run the contextual notification check.
type NotifyCheckMsg struct{ At time.Time }

// WalletPollMsg asks the app to refresh the connected wallet's accounts.
type WalletPollMsg struct{ At time.Time }

// Config sets how often each check runs.
type Config struct {
	MoodEvery   time.Duration
	NotifyEvery time.Duration
	WalletEvery time.Duration
}

// Default intervals, used for zero Config fields.
const (
	DefaultMoodEvery   = 5 * time.Minute
	DefaultNotifyEvery = 5 * time.Minute
	DefaultWalletEvery = 30 * time.Second
)

const bufferSize = 16

// Pulse owns the scheduler.
type Pulse struct {
	cron   *cron.Cron
	msgs   chan tea.Msg
	now    func() time.Time
	logger zerolog.Logger

	mu          sync.Mutex
	running     bool
	closed      bool
	walletEvery time.Duration
	walletEntry cron.EntryID
}

// New registers the mood and notification jobs. Call Start to run them.
func New(cfg Config, logger zerolog.Logger) (*Pulse, error) {
	if cfg.MoodEvery <= 0 {
		cfg.MoodEvery = DefaultMoodEvery
	}
	if cfg.NotifyEvery <= 0 {
		cfg.NotifyEvery = DefaultNotifyEvery
	}
	if cfg.WalletEvery <= 0 {
		cfg.WalletEvery = DefaultWalletEvery
	}

	p := &Pulse{
		cron:        cron.New(),
		msgs:        make(chan tea.Msg, bufferSize),
		now:         time.Now,
		logger:      logger,
		walletEvery: cfg.WalletEvery,
	}

	if _, err := p.cron.AddFunc(Every(cfg.MoodEvery), func() { p.post(MoodCheckMsg{At: p.now()}) }); err != nil {
		return nil, fmt.Errorf("scheduling mood check: %w", err)
	}
	if _, err := p.cron.AddFunc(Every(cfg.NotifyEvery), func() { p.post(NotifyCheckMsg{At: p.now()}) }); err != nil {
		return nil, fmt.Errorf("scheduling notification check: %w", err)
	}
	return p, nil
}

// Every formats d as a cron interval spec.
func Every(d time.Duration) string {
	return "@every " + d.String()
}

// Start runs the scheduler in the background. It is a no-op when already
// running or stopped.
func (p *Pulse) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || p.closed {
		return
	}
	p.running = true
	p.cron.Start()
	p.logger.Debug().Int("jobs", len(p.cron.Entries())).Msg("pulse started")
}

// Stop halts the scheduler and waits for running jobs to finish.
func (p *Pulse) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	running := p.running
	p.running = false
	p.mu.Unlock()

	if running {
		<-p.cron.Stop().Done()
	}
	p.logger.Debug().Msg("pulse stopped")
}

// PollWallet turns the wallet account poll on or off.
func (p *Pulse) PollWallet(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case on && p.walletEntry == 0:
		id, err := p.cron.AddFunc(Every(p.walletEvery), func() { p.post(WalletPollMsg{At: p.now()}) })
		if err != nil {
			return fmt.Errorf("scheduling wallet poll: %w", err)
		}
		p.walletEntry = id
	case !on && p.walletEntry != 0:
		p.cron.Remove(p.walletEntry)
		p.walletEntry = 0
	}
	return nil
}

// Polling reports whether the wallet poll is scheduled.
func (p *Pulse) Polling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.walletEntry != 0
}

// Trigger posts msg immediately, as if a job had fired.
func (p *Pulse) Trigger(msg tea.Msg) {
	p.post(msg)
}

// Listen returns a tea.Cmd that waits for the next message. Call it again
// after handling each message to keep listening.
func (p *Pulse) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-p.msgs
	}
}

// post sends without blocking; a full buffer drops the tick.
func (p *Pulse) post(msg tea.Msg) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}
	select {
	case p.msgs <- msg:
	default:
		p.logger.Warn().Str("msg", fmt.Sprintf("%T", msg)).Msg("pulse buffer full, dropping tick")
	}
}
