package resolve

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/platleague/internal/browser"
	"github.com/sells-group/platleague/internal/hours"
	"github.com/sells-group/platleague/internal/model"
)

// SearchURL builds the site search URL for a query.
func (r *Resolver) SearchURL(query string) string {
	return r.cfg.BaseURL + "/?q=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// search runs the narrowing loop: try the whole query, then drop the last
// word until some candidate carries a positive completion time or no words
// remain. Every attempt is a fresh navigation in one session.
func (r *Resolver) search(ctx context.Context, query string) []model.ResolvedGame {
	out := []model.ResolvedGame{}

	words := strings.Fields(query)
	if len(words) == 0 {
		return out
	}

	session, ok := r.launch(ctx)
	if !ok {
		return out
	}
	defer closeSession(session)

	for n := len(words); n > 0; n-- {
		q := strings.Join(words[:n], " ")
		zap.L().Debug("resolve: search attempt", zap.String("query", q), zap.Int("words", n))

		games, err := r.attempt(ctx, session, q)
		if err != nil {
			if errors.Is(err, browser.ErrSettleTimeout) {
				zap.L().Debug("resolve: results never settled, narrowing", zap.String("query", q))
				continue
			}
			zap.L().Warn("resolve: search aborted", zap.String("query", q), zap.Error(err))
			return out
		}
		if len(games) > 0 {
			zap.L().Info("resolve: search matched",
				zap.String("query", q),
				zap.Int("results", len(games)),
			)
			return games
		}
	}

	zap.L().Info("resolve: query exhausted without results", zap.String("query", query))
	return out
}

// attempt renders one search page and returns its usable results. Only
// navigation and settle failures are errors; unreadable lists are empty.
func (r *Resolver) attempt(ctx context.Context, session browser.Session, query string) ([]model.ResolvedGame, error) {
	searchURL := r.SearchURL(query)

	snap, err := session.Open(ctx, searchURL, browser.ReadySearchResults)
	if err != nil {
		return nil, err
	}

	items, err := snap.ListItemsWithLinks(ctx)
	if err != nil {
		zap.L().Debug("resolve: reading result list", zap.String("url", searchURL), zap.Error(err))
		return nil, nil
	}

	candidates := Dedupe(BuildCandidates(items, searchURL), r.cfg.Limit)
	for i := range candidates {
		candidates[i].Hours = hours.ExtractAdjacent(candidates[i].Text)
	}
	return Rank(candidates, r.cfg.PlaceholderImage), nil
}
