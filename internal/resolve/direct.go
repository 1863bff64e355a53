package resolve

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/platleague/internal/browser"
	"github.com/sells-group/platleague/internal/hours"
	"github.com/sells-group/platleague/internal/model"
)

// RecordPath marks a query that already is a game page URL.
const RecordPath = "howlongtobeat.com/game/"

// UnknownTitle names a game page whose header could not be read.
const UnknownTitle = "Unknown Game"

// IsDirectLink reports whether query is a game page URL.
func IsDirectLink(query string) bool {
	return strings.Contains(strings.TrimSpace(query), RecordPath)
}

// resolveDirect renders one game page and extracts at most one record.
func (r *Resolver) resolveDirect(ctx context.Context, pageURL string) []model.ResolvedGame {
	out := []model.ResolvedGame{}

	session, ok := r.launch(ctx)
	if !ok {
		return out
	}
	defer closeSession(session)

	snap, err := session.Open(ctx, pageURL, browser.ReadyGameProfile)
	if err != nil {
		zap.L().Warn("resolve: direct page failed", zap.String("url", pageURL), zap.Error(err))
		return out
	}

	text, err := snap.VisibleText(ctx)
	if err != nil {
		zap.L().Debug("resolve: direct page text", zap.String("url", pageURL), zap.Error(err))
		return out
	}

	h := hours.Extract(text)
	if h <= 0 {
		zap.L().Info("resolve: no completion time on direct page", zap.String("url", pageURL))
		return out
	}

	profile, err := snap.Profile(ctx)
	if err != nil {
		zap.L().Debug("resolve: direct page profile", zap.String("url", pageURL), zap.Error(err))
	}

	title := strings.TrimSpace(profile.Title)
	if title == "" {
		title = UnknownTitle
	}
	image := profile.ImageURL
	if image == "" {
		image = r.cfg.PlaceholderImage
	}

	return append(out, model.ResolvedGame{
		GameName: title,
		Hours:    h,
		ImageURL: image,
		URL:      pageURL,
	})
}
