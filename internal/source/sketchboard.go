package source

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Sketchboard scrapes the Sketchboard schedule and calendar pages for figure
// drawing sessions and the Madrone drink-and-draw nights. Listings publish a
// long-form date ("Tuesday, February 17, 2026") and a space-separated
// 12-hour time range inside each event card.
type Sketchboard struct{}

var sketchboardPages = []string{
	"https://www.sketchboard.co/schedule",
	"https://www.sketchboard.co/calendar",
}

func (s *Sketchboard) Name() string { return "sketchboard" }

func (s *Sketchboard) Key() event.KeyFunc {
	return func(e *event.Event) string {
		return event.Key(e.Date, normalize.Fold(e.Title), e.StartTime, normalize.Fold(e.Category))
	}
}

func (s *Sketchboard) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:  "sketchboard",
		Venue:   "Sketchboard",
		BaseURL: "https://www.sketchboard.co/",
		VenueFor: map[classify.Category]string{
			classify.FigureDrawing: "Sketchboard (Figure)",
			classify.DrinkAndDraw:  "Sketchboard @ Madrone Art Bar",
		},
		DefaultPrice: map[classify.Category]string{
			classify.DrinkAndDraw: "$15 cash only (per Sketchboard)",
		},
		Fallback:    classify.Workshop,
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (s *Sketchboard) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	var candidates []assemble.Candidate
	var firstErr error

	for _, page := range sketchboardPages {
		doc, err := client.Get(page)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("fetching %s: %w", page, err)
			}
			continue
		}
		candidates = append(candidates, s.extract(doc, opts)...)
	}

	if len(candidates) == 0 && firstErr != nil {
		return nil, assemble.Profile{}, firstErr
	}
	return candidates, s.profile(opts), nil
}

// extract walks the page's links and keeps the ones whose surrounding card
// text classifies as a session this aggregator tracks. The date usually sits
// in the card; when it lives one container up, widen the block.
func (s *Sketchboard) extract(doc *goquery.Document, opts Options) []assemble.Candidate {
	var out []assemble.Candidate

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		title := normalize.CollapseSpace(a.Text())
		if title == "" || title == "View Event" {
			return
		}

		href, _ := a.Attr("href")

		card := a.Parent()
		if card.Length() == 0 {
			return
		}
		block := normalize.CollapseSpace(card.Text())

		if !sketchboardTracks(title, block) {
			return
		}

		// Date sometimes lives a container higher than the times.
		if _, ok := extract.Date(block, opts.Now, opts.HorizonDays); !ok {
			if outer := card.Parent(); outer.Length() > 0 {
				block = normalize.CollapseSpace(outer.Text())
			}
		}

		out = append(out, assemble.Candidate{
			Title: title,
			Block: block,
			Href:  href,
			Notes: "Auto-imported: Sketchboard",
		})
	})

	return out
}

// sketchboardTracks gates candidates to the two session kinds this source
// publishes; everything else on the page is bar programming or navigation.
func sketchboardTracks(title, block string) bool {
	const other = classify.Category("other")
	switch classify.Classify(title, block, other) {
	case classify.FigureDrawing, classify.DrinkAndDraw:
		return true
	default:
		return false
	}
}
