package extract

import (
	"regexp"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

var (
	priceRe     = regexp.MustCompile(`(?i)\$\s*\d+(?:\.\d{2})?(?:\s*(?:suggested|sliding|donation))?`)
	freeRe      = regexp.MustCompile(`(?i)\bfree\b`)
	dollarGapRe = regexp.MustCompile(`\$\s+`)
)

// Price extracts a display price from text: a currency amount with an
// optional modifier word, or the literal word "free". Returns "" when the
// text carries no price signal; callers fall back to a per-classification
// default.
func Price(text string) string {
	t := normalize.CollapseSpace(text)
	if m := priceRe.FindString(t); m != "" {
		return dollarGapRe.ReplaceAllString(m, "$$")
	}
	if freeRe.MatchString(t) {
		return "Free"
	}
	return ""
}
