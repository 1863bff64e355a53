// Package resolve turns a free-text game query into ranked completion-time
// records scraped from HowLongToBeat.
//
// Resolution never fails from the caller's point of view: every internal
// problem degrades to fewer (possibly zero) results.
package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/platleague/internal/browser"
	"github.com/sells-group/platleague/internal/model"
)

// Defaults for Config.
const (
	DefaultBaseURL = "https://howlongtobeat.com"
	DefaultLimit   = 5
)

// NameCorrector maps an ambiguous query to a canonical title.
type NameCorrector interface {
	Correct(ctx context.Context, query string) (string, bool)
}

// Config tunes the resolver.
type Config struct {
	BaseURL          string
	PlaceholderImage string
	Limit            int
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.PlaceholderImage == "" {
		c.PlaceholderImage = model.PlaceholderImage
	}
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
}

// Resolver runs the resolution pipeline.
type Resolver struct {
	cfg      Config
	launcher browser.Launcher
	namer    NameCorrector
}

// New creates a Resolver. namer may be nil to skip name correction.
func New(cfg Config, launcher browser.Launcher, namer NameCorrector) *Resolver {
	cfg.defaults()
	return &Resolver{cfg: cfg, launcher: launcher, namer: namer}
}

// Resolve returns up to Limit games for query, in source order. The result
// is never nil.
func (r *Resolver) Resolve(ctx context.Context, query string) []model.ResolvedGame {
	q := strings.TrimSpace(query)
	if q == "" {
		return []model.ResolvedGame{}
	}

	if IsDirectLink(q) {
		zap.L().Info("resolve: direct link", zap.String("url", q))
		return r.resolveDirect(ctx, q)
	}

	name := q
	if r.namer != nil {
		if fixed, ok := r.namer.Correct(ctx, q); ok {
			zap.L().Info("resolve: name corrected", zap.String("query", q), zap.String("name", fixed))
			name = fixed
		} else {
			zap.L().Debug("resolve: no name correction, using original query", zap.String("query", q))
		}
	}

	return r.search(ctx, name)
}

// launch opens a browser session; a failure is fatal for the call.
func (r *Resolver) launch(ctx context.Context) (browser.Session, bool) {
	session, err := r.launcher.Launch(ctx)
	if err != nil {
		zap.L().Warn("resolve: browser launch failed", zap.Error(err))
		return nil, false
	}
	return session, true
}

func closeSession(s browser.Session) {
	if err := s.Close(); err != nil {
		zap.L().Debug("resolve: browser close", zap.Error(err))
	}
}
