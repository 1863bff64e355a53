package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/platleague/internal/browser"
	"github.com/sells-group/platleague/internal/config"
	"github.com/sells-group/platleague/internal/db"
	"github.com/sells-group/platleague/internal/league"
	"github.com/sells-group/platleague/internal/namefix"
	"github.com/sells-group/platleague/internal/resilience"
	"github.com/sells-group/platleague/internal/resolve"
	"github.com/sells-group/platleague/internal/store"
	"github.com/sells-group/platleague/pkg/duckduckgo"
	"github.com/sells-group/platleague/pkg/jina"
)

// initStore opens and migrates the configured store. Callers close it.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, store.Config{
		Driver:      cfg.Store.Driver,
		DatabaseURL: cfg.Store.DatabaseURL,
		Pool:        db.PoolConfig{MaxConns: cfg.Store.MaxConns},
	})
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initLeague opens the store and wraps it in a league service.
func initLeague(ctx context.Context) (*league.Service, store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	return league.New(st), st, nil
}

// initResolver builds the browser launcher, name correction providers and
// the resolver from config.
func initResolver(c *config.Config) *resolve.Resolver {
	launcher := browser.NewRodLauncher(browser.Config{
		RemoteURL:     c.Browser.RemoteURL,
		Bin:           c.Browser.Bin,
		Headless:      c.Browser.Headless,
		Stealth:       c.Browser.Stealth,
		SettleTimeout: c.Browser.SettleTimeout(),
		PollInterval:  c.Browser.PollInterval(),
		MinSettle:     c.Browser.MinSettle(),
	})

	var namer resolve.NameCorrector
	if nf := initNameFix(c); nf != nil {
		namer = nf
	}

	return resolve.New(resolve.Config{
		BaseURL:          c.HLTB.BaseURL,
		PlaceholderImage: c.HLTB.PlaceholderImage,
		Limit:            c.HLTB.Limit,
	}, launcher, namer)
}

// initNameFix returns nil when name correction is disabled.
func initNameFix(c *config.Config) *namefix.Resolver {
	if !c.NameFix.Enabled {
		return nil
	}

	timeout := time.Duration(c.NameFix.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	hc := &http.Client{Timeout: timeout}
	retry := resilience.FromRetryConfig(c.NameFix.Retries, 0)

	ddgOpts := []duckduckgo.Option{
		duckduckgo.WithHTTPClient(hc),
		duckduckgo.WithRetry(retry),
	}
	if c.NameFix.DDGBaseURL != "" {
		ddgOpts = append(ddgOpts, duckduckgo.WithBaseURL(c.NameFix.DDGBaseURL))
	}
	if c.NameFix.UserAgent != "" {
		ddgOpts = append(ddgOpts, duckduckgo.WithUserAgent(c.NameFix.UserAgent))
	}
	if c.NameFix.RatePerSec > 0 {
		ddgOpts = append(ddgOpts, duckduckgo.WithRateLimiter(rate.NewLimiter(rate.Limit(c.NameFix.RatePerSec), 1)))
	}

	providers := []namefix.Provider{namefix.NewDuckDuckGo(duckduckgo.NewClient(ddgOpts...))}
	if c.Jina.Key != "" {
		jinaOpts := []jina.Option{jina.WithHTTPClient(hc), jina.WithRetry(retry)}
		if c.Jina.SearchBaseURL != "" {
			jinaOpts = append(jinaOpts, jina.WithSearchBaseURL(c.Jina.SearchBaseURL))
		}
		providers = append(providers, namefix.NewJina(jina.NewClient(c.Jina.Key, jinaOpts...)))
	}

	return namefix.New(
		resilience.FromBreakerConfig(c.NameFix.BreakerThreshold, c.NameFix.BreakerResetSecs),
		providers...,
	)
}
