package source

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
	"github.com/obstacleb/artlinks-data/internal/recur"
)

// Syzygy scrapes the Syzygy SF homepage. The page has two sections: Special
// Events (cards with explicit MM-DD-YYYY dates) and Recurring Events (cards
// with rules like "Every Tuesday, 7-10pm" that expand into dated instances
// over the rolling window).
type Syzygy struct{}

const syzygyURL = "https://syzygysf.com/"

var (
	syzygyDateRe = regexp.MustCompile(`\b\d{2}-\d{2}-\d{4}\b`)

	// Where the recurrence rule starts inside a card's flattened text; the
	// title is everything before it.
	syzygyRuleRe = regexp.MustCompile(`(?i)\b(every\s+(?:other\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)|(?:1st|2nd|3rd|4th|first|second|third|fourth)\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b.*`)
)

func (s *Syzygy) Name() string { return "syzygy" }

func (s *Syzygy) Key() event.KeyFunc {
	return func(e *event.Event) string {
		return event.Key(e.Date, normalize.Fold(e.Title), e.EventURL)
	}
}

func (s *Syzygy) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:      "syzygy",
		Venue:       "Syzygy SF",
		BaseURL:     syzygyURL,
		Fallback:    classify.Category("Syzygy"),
		SkipTitles:  []string{"drink and draw"}, // ingested via sketchboard
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (s *Syzygy) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	doc, err := client.Get(syzygyURL)
	if err != nil {
		return nil, assemble.Profile{}, err
	}
	return s.extract(doc, opts), s.profile(opts), nil
}

func (s *Syzygy) extract(doc *goquery.Document, opts Options) []assemble.Candidate {
	var out []assemble.Candidate

	for _, a := range sectionCards(doc, "special events") {
		text := normalize.CollapseSpace(a.Text())
		if !syzygyDateRe.MatchString(text) {
			continue
		}

		title := normalize.CollapseSpace(syzygyDateRe.ReplaceAllString(text, ""))
		href, _ := a.Attr("href")
		out = append(out, assemble.Candidate{Title: title, Block: text, Href: href})
	}

	windowStart := opts.Now
	windowEnd := opts.Now.AddDate(0, 0, opts.WindowDays)

	for _, a := range sectionCards(doc, "recurring events") {
		text := normalize.CollapseSpace(a.Text())
		loc := syzygyRuleRe.FindStringIndex(text)
		if loc == nil {
			continue
		}
		ruleText := text[loc[0]:]
		title := trimTitle(text[:loc[0]])
		href, _ := a.Attr("href")

		rule, ok := recur.Parse(ruleText)
		if !ok {
			continue
		}
		// An ambiguous rule expands to nothing; the operator notices the
		// missing recurring event and fixes the listing, we never guess.
		start, end := extract.TimeRange(ruleText)
		for _, d := range rule.Expand(windowStart, windowEnd) {
			out = append(out, assemble.Candidate{
				Title:     title,
				Block:     text,
				Href:      href,
				Date:      extract.ISODate(d),
				StartTime: start,
				EndTime:   end,
			})
		}
	}

	return out
}

// sectionCards returns the linked cards following the named heading, up to
// the next heading of equal or higher rank.
func sectionCards(doc *goquery.Document, heading string) []*goquery.Selection {
	var anchor *goquery.Selection
	doc.Find("h1, h2, h3").Each(func(_ int, h *goquery.Selection) {
		if anchor == nil && normalize.Fold(h.Text()) == heading {
			anchor = h
		}
	})
	if anchor == nil {
		return nil
	}

	var cards []*goquery.Selection
	for sib := anchor.Next(); sib.Length() > 0; sib = sib.Next() {
		if goquery.NodeName(sib) == "h1" || goquery.NodeName(sib) == "h2" || goquery.NodeName(sib) == "h3" {
			break
		}
		sib.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			if len(normalize.CollapseSpace(a.Text())) < 5 {
				return
			}
			cards = append(cards, a)
		})
	}
	return cards
}

func trimTitle(s string) string {
	return strings.TrimRight(normalize.CollapseSpace(s), " -,")
}
