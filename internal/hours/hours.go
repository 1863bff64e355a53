// Package hours pulls completion-time estimates out of rendered page text.
package hours

import (
	"regexp"
	"strconv"
	"strings"
)

// Shape is how a number is expected to sit relative to its label.
type Shape int

const (
	// ShapeLineTolerant allows one line break and filler before the number,
	// and requires an "Hours" unit after it.
	ShapeLineTolerant Shape = iota
	// ShapeAdjacent requires the number right after the label.
	ShapeAdjacent
)

func (s Shape) String() string {
	switch s {
	case ShapeLineTolerant:
		return "line_tolerant"
	case ShapeAdjacent:
		return "adjacent"
	default:
		return "unknown"
	}
}

// Category labels, as printed on the site.
const (
	LabelCompletionist = "Completionist"
	LabelMainExtras    = "Main + Extras"
	LabelMainStory     = "Main Story"
)

const (
	numberPattern = `(\d+(?:½|\.\d+)?)`
	halfGlyph     = "½"
)

// Rule is one (label, shape) pair of the extraction cascade.
type Rule struct {
	Label string
	Shape Shape
	re    *regexp.Regexp
}

// NewRule compiles the pattern for a label and shape.
func NewRule(label string, shape Shape) Rule {
	quoted := regexp.QuoteMeta(label)
	var expr string
	switch shape {
	case ShapeLineTolerant:
		expr = `(?i)` + quoted + `\n?.*?` + numberPattern + `\s*Hours`
	default:
		expr = `(?i)` + quoted + `\s*` + numberPattern
	}
	return Rule{Label: label, Shape: shape, re: regexp.MustCompile(expr)}
}

// Match returns the raw numeral the rule captures in text.
func (r Rule) Match(text string) (string, bool) {
	m := r.re.FindStringSubmatch(text)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// DefaultRules is the full cascade in priority order. Completionist comes
// first: the league measures full clears.
var DefaultRules = []Rule{
	NewRule(LabelCompletionist, ShapeLineTolerant),
	NewRule(LabelCompletionist, ShapeAdjacent),
	NewRule(LabelMainExtras, ShapeLineTolerant),
	NewRule(LabelMainExtras, ShapeAdjacent),
	NewRule(LabelMainStory, ShapeLineTolerant),
	NewRule(LabelMainStory, ShapeAdjacent),
}

// AdjacentRules is the cascade used on search result items, where the
// number always follows the label directly.
var AdjacentRules = []Rule{
	NewRule(LabelCompletionist, ShapeAdjacent),
	NewRule(LabelMainExtras, ShapeAdjacent),
	NewRule(LabelMainStory, ShapeAdjacent),
}

// Extract runs the full cascade over page text. Zero means no usable
// estimate and the candidate must be discarded.
func Extract(text string) float64 {
	return ExtractWith(DefaultRules, text)
}

// ExtractAdjacent runs the adjacent-only cascade over a result item.
func ExtractAdjacent(text string) float64 {
	return ExtractWith(AdjacentRules, text)
}

// ExtractWith evaluates rules in order; the first rule that matches decides
// the result, even if its numeral turns out unparsable.
func ExtractWith(rules []Rule, text string) float64 {
	for _, r := range rules {
		raw, ok := r.Match(text)
		if !ok {
			continue
		}
		return ParseNumeral(raw)
	}
	return 0
}

// ParseNumeral converts "12", "12.5" or "12½" to a float. Invalid input
// yields 0.
func ParseNumeral(raw string) float64 {
	s := strings.Replace(strings.TrimSpace(raw), halfGlyph, ".5", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
