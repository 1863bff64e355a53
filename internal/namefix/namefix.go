// Package namefix recovers a game's canonical title from a general web
// search. It is best effort: every failure reads as "no correction".
package namefix

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/sells-group/platleague/internal/resilience"
)

// BrandToken identifies result titles that point at the target site.
const BrandToken = "howlongtobeat"

// Provider returns search result titles for a query, in rank order.
type Provider interface {
	Name() string
	Titles(ctx context.Context, query string) ([]string, error)
}

// Resolver walks providers in order and returns the first cleaned title
// carrying the brand token.
type Resolver struct {
	providers []Provider
	breakers  map[string]*resilience.CircuitBreaker
}

// New creates a Resolver. Each provider gets its own circuit breaker built
// from breakerCfg.
func New(breakerCfg resilience.BreakerConfig, providers ...Provider) *Resolver {
	r := &Resolver{
		providers: providers,
		breakers:  make(map[string]*resilience.CircuitBreaker, len(providers)),
	}
	for _, p := range providers {
		name := p.Name()
		cfg := breakerCfg
		cfg.OnStateChange = func(from, to resilience.CircuitState) {
			zap.L().Info("namefix: provider circuit changed",
				zap.String("provider", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		}
		r.breakers[name] = resilience.NewCircuitBreaker(cfg)
	}
	return r
}

// Correct returns the canonical title for query, or false when no provider
// produced one.
func (r *Resolver) Correct(ctx context.Context, query string) (string, bool) {
	for _, p := range r.providers {
		titles, err := resilience.ExecuteVal(ctx, r.breakers[p.Name()], func(ctx context.Context) ([]string, error) {
			return p.Titles(ctx, query)
		})
		if err != nil {
			zap.L().Debug("namefix: provider failed, trying next",
				zap.String("provider", p.Name()),
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		if name, ok := PickTitle(titles); ok {
			zap.L().Debug("namefix: corrected name",
				zap.String("provider", p.Name()),
				zap.String("query", query),
				zap.String("name", name),
			)
			return name, true
		}
	}
	return "", false
}

var folder = cases.Fold()

// PickTitle cleans the first title that mentions the brand. Later branded
// titles are not consulted even when the first one cleans to nothing.
func PickTitle(titles []string) (string, bool) {
	for _, t := range titles {
		if strings.Contains(folder.String(t), BrandToken) {
			return CleanTitle(t)
		}
	}
	return "", false
}

var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i) -( )?HowLongToBeat`),
	regexp.MustCompile(`(?i) \| HowLongToBeat`),
	regexp.MustCompile(`(?i)HowLongToBeat:( )?`),
	regexp.MustCompile(`(?i)How long is `),
}

// CleanTitle strips brand suffixes and prefixes, the "How long is" lead-in
// and question marks.
func CleanTitle(title string) (string, bool) {
	for _, re := range boilerplate {
		title = re.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(strings.ReplaceAll(title, "?", ""))
	return title, title != ""
}
