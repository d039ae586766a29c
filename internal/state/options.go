// Package state holds the app's entity stores. Each store owns its
// collection, exposes selectors and actions, and hands a full snapshot to
// its persistence hook after every successful mutation.
//
// Stores are not safe for concurrent use; all mutation happens on the UI
// event loop or sequentially inside a CLI command.
package state

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options injects the clock, id generator and randomness into a store.
type Options struct {
	Now    func() time.Time
	NewID  func() string
	Rand   *rand.Rand
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return o
}

// Hook receives a store's snapshot after each mutation.
type Hook[T any] func(T)

// Saver writes a JSON snapshot under a key.
type Saver interface {
	SaveJSON(ctx context.Context, key string, v any) error
}

// Persist returns a hook that saves snapshots under key. Save failures are
// logged and otherwise ignored; the in-memory state stays authoritative.
func Persist[T any](ctx context.Context, s Saver, key string, logger zerolog.Logger) Hook[T] {
	return func(snap T) {
		if err := s.SaveJSON(ctx, key, snap); err != nil {
			logger.Error().Err(err).Str("key", key).Msg("saving snapshot")
		}
	}
}

func emit[T any](h Hook[T], snap T) {
	if h != nil {
		h(snap)
	}
}
