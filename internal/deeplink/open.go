package deeplink

import (
	"context"
	"io"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// DefaultFallbackTimeout is how long Open waits for the primary URL.
const DefaultFallbackTimeout = 2 * time.Second

// Opener hands a URL to the operating system.
type Opener interface {
	OpenURL(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) OpenURL(ctx context.Context, url string) error { return f(ctx, url) }

// BrowserOpener opens URLs with the system handler via xdg-open, open or
// start. Output from the helper is discarded so it cannot corrupt the TUI.
type BrowserOpener struct{}

func (BrowserOpener) OpenURL(_ context.Context, url string) error {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// Open tries primary and falls back to fallback when primary fails or has
// not returned within timeout. An empty fallback disables the fallback.
// It returns the URL that was opened last and any error from it.
func Open(ctx context.Context, o Opener, primary, fallback string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultFallbackTimeout
	}

	done := make(chan error, 1)
	go func() { done <- o.OpenURL(ctx, primary) }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var err error
	select {
	case err = <-done:
		if err == nil {
			return primary, nil
		}
		log.Debug().Err(err).Str("url", primary).Msg("primary deep link failed")
	case <-timer.C:
		err = context.DeadlineExceeded
		log.Debug().Str("url", primary).Dur("timeout", timeout).Msg("primary deep link timed out")
	case <-ctx.Done():
		return primary, ctx.Err()
	}

	if fallback == "" {
		return primary, err
	}
	return fallback, o.OpenURL(ctx, fallback)
}
