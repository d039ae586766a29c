package pulse

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPulse(t *testing.T) *Pulse {
	t.Helper()
	p, err := New(Config{MoodEvery: time.Minute, NotifyEvery: 2 * time.Minute}, zerolog.Nop())
	require.NoError(t, err)
	p.now = func() time.Time { return fixed }
	t.Cleanup(p.Stop)
	return p
}

// runAll fires every scheduled job once, in registration order.
func runAll(p *Pulse) {
	for _, e := range p.cron.Entries() {
		e.Job.Run()
	}
}

func TestEvery(t *testing.T) {
	assert.Equal(t, "@every 5m0s", Every(5*time.Minute))
	assert.Equal(t, "@every 30s", Every(30*time.Second))
}

func TestJobsPostMessages(t *testing.T) {
	p := newTestPulse(t)
	require.Len(t, p.cron.Entries(), 2)

	runAll(p)
	got := []any{p.Listen()(), p.Listen()()}
	assert.ElementsMatch(t, []any{MoodCheckMsg{At: fixed}, NotifyCheckMsg{At: fixed}}, got)
}

func TestWalletPollToggle(t *testing.T) {
	p := newTestPulse(t)
	assert.False(t, p.Polling())

	require.NoError(t, p.PollWallet(true))
	require.NoError(t, p.PollWallet(true))
	assert.True(t, p.Polling())
	require.Len(t, p.cron.Entries(), 3)

	runAll(p)
	var sawWallet bool
	for range 3 {
		if _, ok := p.Listen()().(WalletPollMsg); ok {
			sawWallet = true
		}
	}
	assert.True(t, sawWallet)

	require.NoError(t, p.PollWallet(false))
	assert.False(t, p.Polling())
	assert.Len(t, p.cron.Entries(), 2)
}

func TestTriggerAndFullBuffer(t *testing.T) {
	p := newTestPulse(t)
	for range bufferSize + 4 {
		p.Trigger(MoodCheckMsg{At: fixed})
	}
	assert.Len(t, p.msgs, bufferSize)
	assert.Equal(t, MoodCheckMsg{At: fixed}, p.Listen()())
}

func TestStopDropsLatePosts(t *testing.T) {
	p := newTestPulse(t)
	p.Start()
	p.Start()
	p.Stop()
	p.Stop()

	p.Trigger(NotifyCheckMsg{At: fixed})
	assert.Empty(t, p.msgs)

	p.Start()
	p.mu.Lock()
	assert.False(t, p.running)
	p.mu.Unlock()
}

func TestDefaults(t *testing.T) {
	p, err := New(Config{}, zerolog.Nop())
	require.NoError(t, err)
	defer p.Stop()
	assert.Equal(t, DefaultWalletEvery, p.walletEvery)
	assert.Len(t, p.cron.Entries(), 2)
}
