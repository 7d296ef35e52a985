package source

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// MothBelly scrapes the Moth Belly Gallery homepage for the current "Now
// Showing" exhibit. The exhibit page states a closing date ("exhibit ends
// Saturday, March 28, 2026."); the single emitted row carries that date and
// a Runs-through note.
type MothBelly struct{}

const mothBellyHome = "https://www.mothbelly.org/"

var endsRe = regexp.MustCompile(`(?i)\bends\b`)

func (m *MothBelly) Name() string { return "mothbelly" }

func (m *MothBelly) Key() event.KeyFunc {
	return func(e *event.Event) string {
		return event.Key(e.Date, normalize.Fold(e.Title))
	}
}

func (m *MothBelly) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:      "mothbelly",
		Venue:       "Moth Belly Gallery",
		BaseURL:     mothBellyHome,
		Fallback:    classify.Exhibition,
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (m *MothBelly) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	home, err := client.Get(mothBellyHome)
	if err != nil {
		return nil, assemble.Profile{}, err
	}

	href := m.exhibitLink(home)
	if href == "" {
		// No current exhibit is a valid state, not an error.
		return nil, m.profile(opts), nil
	}
	exhibitURL := absoluteAgainst(mothBellyHome, href)

	page, err := client.Get(exhibitURL)
	if err != nil {
		return nil, assemble.Profile{}, fmt.Errorf("fetching exhibit page: %w", err)
	}

	return m.extract(page, exhibitURL, opts), m.profile(opts), nil
}

// exhibitLink finds the first "Shop ..." link after the Now Showing heading,
// falling back to any shop link on the page.
func (m *MothBelly) exhibitLink(doc *goquery.Document) string {
	var href string

	var nowShowing *goquery.Selection
	doc.Find("h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.Contains(normalize.Fold(h.Text()), "now showing") {
			nowShowing = h
			return false
		}
		return true
	})

	scope := doc.Selection
	if nowShowing != nil {
		scope = nowShowing.NextAll()
	}
	scope.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.HasPrefix(normalize.Fold(a.Text()), "shop") {
			href, _ = a.Attr("href")
			return false
		}
		return true
	})
	return href
}

func (m *MothBelly) extract(page *goquery.Document, exhibitURL string, opts Options) []assemble.Candidate {
	text := normalize.CollapseSpace(page.Find("body").Text())

	loc := endsRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	endsClause := text[loc[0]:]

	d, ok := extract.Date(endsClause, opts.Now, opts.HorizonDays)
	if !ok {
		return nil
	}

	title := normalize.CollapseSpace(page.Find("h3").First().Text())
	if title == "" {
		title = "Moth Belly Exhibit"
	}

	return []assemble.Candidate{{
		Title: title,
		Block: endsClause,
		Href:  exhibitURL,
		Date:  extract.ISODate(d),
		Notes: "Runs through " + extract.ISODate(d),
	}}
}

func absoluteAgainst(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
