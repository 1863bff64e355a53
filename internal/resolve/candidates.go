package resolve

import (
	"regexp"
	"strings"

	"github.com/sells-group/platleague/internal/browser"
	"github.com/sells-group/platleague/internal/model"
)

var digitsOnly = regexp.MustCompile(`^\d+$`)

// BuildCandidates turns raw list items into candidates, dropping entries
// whose derived title is clearly not a game name. fallbackURL is used for
// items without a resolvable link.
func BuildCandidates(items []browser.ListItem, fallbackURL string) []model.Candidate {
	var out []model.Candidate
	for _, it := range items {
		title := ItemTitle(it)
		if !IsTitle(title) {
			continue
		}
		src := it.Href
		if src == "" {
			src = fallbackURL
		}
		out = append(out, model.Candidate{
			Title:     title,
			ImageURL:  it.ImageURL,
			SourceURL: src,
			Text:      it.Text,
		})
	}
	return out
}

// ItemTitle picks the anchor's title attribute, then its text, then the
// first line of the item, and cuts off metadata rendered into the title.
func ItemTitle(it browser.ListItem) string {
	raw := it.LinkTitle
	if raw == "" {
		raw = it.LinkText
	}
	if raw == "" {
		raw, _, _ = strings.Cut(it.Text, "\n")
	}

	title := strings.TrimSpace(raw)
	if before, _, found := strings.Cut(title, "Main Story"); found {
		return strings.TrimSpace(before)
	}
	if before, _, found := strings.Cut(title, "\n"); found {
		return strings.TrimSpace(before)
	}
	return title
}

// IsTitle rejects numerals, result-count banners and button labels.
func IsTitle(title string) bool {
	if title == "" || digitsOnly.MatchString(title) {
		return false
	}
	lower := strings.ToLower(title)
	return !strings.Contains(lower, "we found") && lower != "add to profile"
}
