package browser

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// RodLauncher starts Chrome sessions through go-rod. With a RemoteURL all
// sessions share one connection and each gets its own browser context, so
// closing a session never shuts the remote Chrome down.
type RodLauncher struct {
	cfg Config

	mu     sync.Mutex
	remote *rod.Browser
}

// NewRodLauncher creates a launcher with the given config.
func NewRodLauncher(cfg Config) *RodLauncher {
	cfg.defaults()
	return &RodLauncher{cfg: cfg}
}

// Launch starts (or connects to) Chrome and opens one tab.
func (l *RodLauncher) Launch(ctx context.Context) (Session, error) {
	s, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}

	var page *rod.Page
	if l.cfg.Stealth {
		page, err = stealth.Page(s.browser)
	} else {
		page, err = s.browser.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		_ = s.Close()
		return nil, eris.Wrap(err, "browser: create tab")
	}
	s.page = page

	return s, nil
}

// acquire returns a session without a tab: an incognito context on the
// shared remote browser, or a freshly launched local Chrome.
func (l *RodLauncher) acquire(ctx context.Context) (*rodSession, error) {
	if l.cfg.RemoteURL != "" {
		return l.acquireRemote()
	}

	lnch := launcher.New().
		Context(ctx).
		Headless(l.cfg.Headless).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled")
	if l.cfg.Bin != "" {
		lnch = lnch.Bin(l.cfg.Bin)
	}
	u, err := lnch.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "browser: launch")
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		lnch.Kill()
		lnch.Cleanup()
		return nil, eris.Wrap(err, "browser: connect")
	}

	return &rodSession{
		cfg:     l.cfg,
		browser: b,
		release: func() error {
			err := b.Close()
			lnch.Cleanup()
			return err
		},
	}, nil
}

func (l *RodLauncher) acquireRemote() (*rodSession, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.remote == nil {
		zap.L().Debug("browser: connecting to remote chrome", zap.String("url", l.cfg.RemoteURL))
		b := rod.New().ControlURL(l.cfg.RemoteURL)
		if err := b.Connect(); err != nil {
			return nil, eris.Wrap(err, "browser: connect")
		}
		l.remote = b
	}

	incognito, err := l.remote.Incognito()
	if err != nil {
		// Redial on the next launch; the connection may have dropped.
		l.remote = nil
		return nil, eris.Wrap(err, "browser: create context")
	}

	return &rodSession{
		cfg:     l.cfg,
		browser: incognito,
		// Disposes only this context (Target.disposeBrowserContext).
		release: incognito.Close,
	}, nil
}

type rodSession struct {
	cfg     Config
	browser *rod.Browser
	page    *rod.Page
	release func() error

	closeOnce sync.Once
	closeErr  error
}

func (s *rodSession) Open(ctx context.Context, url string, ready ReadyCondition) (Snapshot, error) {
	if err := s.page.Context(ctx).Navigate(url); err != nil {
		return nil, eris.Wrapf(err, "browser: navigate %s", url)
	}

	err := WaitFor(ctx, s.cfg.SettleTimeout, s.cfg.PollInterval, func(ctx context.Context) (bool, error) {
		res, err := s.page.Context(ctx).Eval(string(ready))
		if err != nil {
			return false, err
		}
		return res.Value.Bool(), nil
	})
	if err != nil {
		return nil, err
	}

	if err := sleepCtx(ctx, s.cfg.MinSettle); err != nil {
		return nil, eris.Wrap(err, "browser: settle floor")
	}

	return &rodSnapshot{page: s.page}, nil
}

func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		if s.page != nil {
			_ = s.page.Close()
		}
		if s.release != nil {
			s.closeErr = s.release()
		}
	})
	return s.closeErr
}

type rodSnapshot struct {
	page *rod.Page
}

func (r *rodSnapshot) evalString(ctx context.Context, script string) (string, error) {
	res, err := r.page.Context(ctx).Eval(script)
	if err != nil {
		return "", eris.Wrap(err, "browser: eval")
	}
	return res.Value.Str(), nil
}

func (r *rodSnapshot) ListItemsWithLinks(ctx context.Context) ([]ListItem, error) {
	raw, err := r.evalString(ctx, listItemsScript)
	if err != nil {
		return nil, err
	}
	return decodeListItems(raw)
}

func (r *rodSnapshot) VisibleText(ctx context.Context) (string, error) {
	return r.evalString(ctx, visibleTextScript)
}

func (r *rodSnapshot) Profile(ctx context.Context) (Profile, error) {
	raw, err := r.evalString(ctx, profileScript)
	if err != nil {
		return Profile{}, err
	}
	return decodeProfile(raw)
}

func decodeListItems(raw string) ([]ListItem, error) {
	var items []ListItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, eris.Wrap(err, "browser: decode list items")
	}
	return items, nil
}

func decodeProfile(raw string) (Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, eris.Wrap(err, "browser: decode profile")
	}
	return p, nil
}
