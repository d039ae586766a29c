package state

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

// clock is a settable time source for stores.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock(t time.Time) *clock { return &clock{t: t} }

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// testOptions returns deterministic options: ids id-1, id-2, ...
func testOptions(c *clock) Options {
	n := 0
	return Options{
		Now: c.Now,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Logger: zerolog.Nop(),
	}
}

// recorder captures every snapshot a hook receives.
type recorder[T any] struct{ snaps []T }

func (r *recorder[T]) Hook() Hook[T] {
	return func(s T) { r.snaps = append(r.snaps, s) }
}

func (r *recorder[T]) Last() T {
	var zero T
	if len(r.snaps) == 0 {
		return zero
	}
	return r.snaps[len(r.snaps)-1]
}

func ptr[T any](v T) *T { return &v }

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}
