package source

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Case scrapes the Case for Making workshop collections. Each Shopify
// product card carries a "— Sat, Feb 28 / 02:00 pm" line with no year and a
// single start time; the in-person and online collections live on separate
// pages under different venue labels.
type Case struct{}

const caseBase = "https://caseformaking.com/"

// Workshop listings turn over weekly, so a card more than a week in the past
// already belongs to next year.
const casePastHorizonDays = 7

var casePages = []struct {
	url   string
	venue string
}{
	{"https://caseformaking.com/collections/art-room-workshops", "Case for Making — Art Room (SF)"},
	{"https://caseformaking.com/collections/online-workshop", "Case for Making — Online"},
}

// "— Sat, Feb 28 / 02:00 pm" (weekday optional)
var caseWhenRe = regexp.MustCompile(`(?i)—\s*(?:[A-Za-z]{3},?\s*)?(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}\s*/\s*(\d{1,2}):(\d{2})\s*([ap]m)`)

func (c *Case) Name() string { return "case" }

func (c *Case) Key() event.KeyFunc {
	return func(e *event.Event) string {
		return event.Key(e.Date, normalize.Fold(e.Title), normalize.Fold(e.Venue), e.StartTime)
	}
}

func (c *Case) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:      "case",
		Venue:       "Case for Making",
		BaseURL:     caseBase,
		Fallback:    classify.Workshop,
		Now:         opts.Now,
		HorizonDays: casePastHorizonDays,
	}
}

func (c *Case) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	var candidates []assemble.Candidate
	var firstErr error

	for _, page := range casePages {
		doc, err := client.Get(page.url)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetching %s: %w", page.url, err)
			}
			continue
		}
		candidates = append(candidates, c.extract(doc, page.venue)...)
	}

	if len(candidates) == 0 && firstErr != nil {
		return nil, assemble.Profile{}, firstErr
	}
	return candidates, c.profile(opts), nil
}

// extract walks the product links on one collection page. The when-line is
// usually a few containers above the link, so the card text is found by
// walking ancestors until it matches.
func (c *Case) extract(doc *goquery.Document, venue string) []assemble.Candidate {
	var out []assemble.Candidate

	doc.Find(`a[href*="/products/"]`).Each(func(_ int, a *goquery.Selection) {
		title := normalize.CollapseSpace(a.Text())
		if title == "" {
			// Image-only anchors label themselves through attributes.
			title = normalize.CollapseSpace(a.AttrOr("aria-label", a.AttrOr("title", "")))
		}
		if title == "" {
			return
		}

		block, m := caseCardText(a)
		if m == nil {
			return
		}

		href, _ := a.Attr("href")
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])

		out = append(out, assemble.Candidate{
			Title:     title,
			Block:     block,
			Href:      href,
			Venue:     venue,
			StartTime: extract.Clock(hour, minute, m[3]),
		})
	})

	return out
}

// caseCardText climbs from the link toward the card container, returning the
// first ancestor text that carries exactly one when-line. Two or more means
// the climb overshot the card into the collection grid.
func caseCardText(a *goquery.Selection) (string, []string) {
	node := a
	for i := 0; i < 12 && node.Length() > 0; i++ {
		text := normalize.CollapseSpace(node.Text())
		switch m := caseWhenRe.FindAllStringSubmatch(text, 2); len(m) {
		case 0:
			node = node.Parent()
		case 1:
			return text, m[0]
		default:
			return "", nil
		}
	}
	return "", nil
}
