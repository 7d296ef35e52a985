// Package classify maps event titles and surrounding text to a fixed
// category taxonomy using ordered keyword precedence.
package classify

import (
	"strings"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Category is one label from the fixed taxonomy. Persisted records only ever
// carry one of these constants or a documented per-source fallback.
type Category string

const (
	FigureDrawing Category = "Figure Drawing"
	DrinkAndDraw  Category = "Drink & Draw"
	Zine          Category = "Zine"
	Signing       Category = "Signing"
	Opening       Category = "Opening"
	Exhibition    Category = "Exhibition"
	Market        Category = "Art Market"
	Music         Category = "Music"
	Games         Category = "Games"
	Workshop      Category = "Workshop"
)

// rule matches when any entry of anyOf appears, or every entry of allOf
// appears. Compound allOf terms keep generic words like "draw" from
// misfiling events on their own.
type rule struct {
	category Category
	anyOf    []string
	allOf    []string
}

// rules are tested in order; the first match wins. Figure Drawing outranks
// Drink & Draw so a session advertising both lands in the more specific
// category.
var rules = []rule{
	{
		category: FigureDrawing,
		anyOf: []string{
			"figure drawing", "life drawing", "figure session",
			"model session", "gesture drawing",
		},
		allOf: []string{"figure", "drawing"},
	},
	{category: DrinkAndDraw, anyOf: []string{"madrone"}, allOf: []string{"drink", "draw"}},
	{category: Zine, anyOf: []string{"zine"}},
	{category: Signing, anyOf: []string{"signing"}},
	{category: Opening, anyOf: []string{"opening", "reception"}},
	{category: Exhibition, anyOf: []string{"exhibit", "exhibition"}},
	{category: Market, anyOf: []string{"market", "fair"}},
	{category: Music, anyOf: []string{"music", "record", "jam", "dj "}},
	{category: Games, anyOf: []string{"game"}},
	{
		category: Workshop,
		anyOf: []string{
			"workshop", "collage", "block print", "linocut", "print",
			"watercolor", "paint",
		},
	},
}

// Classify tests category keywords against the title and surrounding block
// text, case-insensitively, in fixed precedence order. Returns fallback when
// nothing matches; there is no "no category".
func Classify(title, block string, fallback Category) Category {
	text := normalize.Fold(title) + " " + normalize.Fold(block)

	for _, r := range rules {
		if r.matches(text) {
			return r.category
		}
	}
	return fallback
}

func (r rule) matches(text string) bool {
	for _, term := range r.anyOf {
		if strings.Contains(text, term) {
			return true
		}
	}
	if len(r.allOf) == 0 {
		return false
	}
	for _, term := range r.allOf {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}
