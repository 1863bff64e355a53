// Package browser drives a controlled, JavaScript-capable browser session
// and exposes rendered pages through a narrow Snapshot abstraction. All
// assumptions about the target site's markup live in this package.
package browser

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
)

// ErrSettleTimeout is returned when a page never reaches its ready
// condition within the configured settle timeout.
var ErrSettleTimeout = eris.New("browser: page did not settle before timeout")

// Launcher starts browser sessions. One session serves one resolution call.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
}

// Session is a live browser. Close must be called exactly once on every
// exit path; implementations tolerate repeated calls.
type Session interface {
	// Open navigates to url and waits until ready reports true.
	Open(ctx context.Context, url string, ready ReadyCondition) (Snapshot, error)
	Close() error
}

// Snapshot is a rendered page.
type Snapshot interface {
	// ListItemsWithLinks returns list entries that contain a game link,
	// in document order.
	ListItemsWithLinks(ctx context.Context) ([]ListItem, error)
	// VisibleText returns the page's rendered text.
	VisibleText(ctx context.Context) (string, error)
	// Profile returns the header of a single game page.
	Profile(ctx context.Context) (Profile, error)
}

// ListItem is the raw material of a search result entry.
type ListItem struct {
	LinkTitle string `json:"linkTitle"` // title attribute of the game anchor
	LinkText  string `json:"linkText"`  // visible text of the game anchor
	Href      string `json:"href"`      // absolute game URL
	Text      string `json:"text"`      // full visible text of the list item
	ImageURL  string `json:"imageUrl"`
}

// Profile is the header block of a game page.
type Profile struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

// ReadyCondition is a JavaScript predicate evaluated in the page.
type ReadyCondition string

// Config tunes the session.
type Config struct {
	// RemoteURL is the DevTools WebSocket URL of an external Chrome.
	// Empty launches a local one.
	RemoteURL string
	// Bin is an explicit Chrome binary. Empty lets rod find or download one.
	Bin           string
	Headless      bool
	Stealth       bool
	SettleTimeout time.Duration
	PollInterval  time.Duration
	// MinSettle is a floor waited after the ready condition holds, for
	// content that hydrates after the list appears.
	MinSettle time.Duration
}

func (c *Config) defaults() {
	if c.SettleTimeout <= 0 {
		c.SettleTimeout = 10 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 250 * time.Millisecond
	}
	if c.MinSettle < 0 {
		c.MinSettle = 0
	}
}

// WaitFor polls check until it reports true, the timeout elapses or ctx is
// done. Errors from check are treated as "not yet"; a page mid-navigation
// often fails evaluation transiently.
func WaitFor(ctx context.Context, timeout, interval time.Duration, check func(ctx context.Context) (bool, error)) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := check(ctx)
		if err == nil && ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return eris.Wrap(ctx.Err(), "browser: wait canceled")
		case <-deadline.C:
			return ErrSettleTimeout
		case <-ticker.C:
		}
	}
}

// sleepCtx waits d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
