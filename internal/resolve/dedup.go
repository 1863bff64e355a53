package resolve

import "github.com/sells-group/platleague/internal/model"

// Dedupe keeps the first candidate for each exact title, in order, up to
// limit entries. A non-positive limit keeps every unique title.
func Dedupe(candidates []model.Candidate, limit int) []model.Candidate {
	if limit <= 0 {
		limit = len(candidates)
	}
	seen := make(map[string]struct{}, len(candidates))
	out := make([]model.Candidate, 0, min(len(candidates), limit))
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		if _, dup := seen[c.Title]; dup {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Rank drops candidates without a positive completion time and converts the
// rest, preserving source order.
func Rank(candidates []model.Candidate, placeholderImage string) []model.ResolvedGame {
	var out []model.ResolvedGame
	for _, c := range candidates {
		if !(c.Hours > 0) {
			continue
		}
		img := c.ImageURL
		if img == "" {
			img = placeholderImage
		}
		out = append(out, model.ResolvedGame{
			GameName: c.Title,
			Hours:    c.Hours,
			ImageURL: img,
			URL:      c.SourceURL,
		})
	}
	return out
}
