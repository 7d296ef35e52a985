package source

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// MissionComics scrapes the Mission Local venue calendar for Mission Comics
// & Art. The listing groups events under "Month YYYY" headers and paginates
// through "next events" links, so the extractor carries a year accumulator
// the same way the 111 Minna one does.
type MissionComics struct{}

const (
	missionComicsBase  = "https://missionlocal.org"
	missionComicsStart = missionComicsBase + "/venue/mission-comics-and-art/"
	missionComicsPages = 10
)

// "Featured March 7 @ 6:00 pm - 9:00 pm"
var missionFeaturedRe = regexp.MustCompile(`(?i)\bFeatured\s+(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})\s+@\s+\d{1,2}:\d{2}\s*(?:am|pm)\s*[-–]\s*\d{1,2}:\d{2}\s*(?:am|pm)`)

func (m *MissionComics) Name() string { return "missioncomics" }

func (m *MissionComics) Key() event.KeyFunc {
	return func(e *event.Event) string {
		return event.Key(e.EventURL, e.Date, normalize.Fold(e.Title))
	}
}

func (m *MissionComics) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:      "missioncomics",
		Venue:       "Mission Comics & Art",
		EventType:   "comic_event",
		BaseURL:     missionComicsBase,
		Fallback:    classify.Category("Comics"),
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (m *MissionComics) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	var candidates []assemble.Candidate
	seen := map[string]bool{missionComicsStart: true}

	url := missionComicsStart
	for page := 0; page < missionComicsPages && url != ""; page++ {
		doc, err := client.Get(url)
		if err != nil {
			if page == 0 {
				return nil, assemble.Profile{}, err
			}
			// Keep what earlier pages yielded.
			break
		}
		candidates = append(candidates, m.extract(doc, opts)...)

		url = missionNextLink(doc)
		if seen[url] {
			break
		}
		seen[url] = true
	}
	return candidates, m.profile(opts), nil
}

// extract walks the listing in document order. Month headers set the year
// for the dates beneath them; each h4 with a link is one event whose
// "Featured <date> @ <range>" line sits in the surrounding card.
func (m *MissionComics) extract(doc *goquery.Document, opts Options) []assemble.Candidate {
	var candidates []assemble.Candidate
	year := opts.Now.Year()

	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		text := normalize.CollapseSpace(sel.Text())

		if sel.Is("h3") {
			if h := minnaMonthHeaderRe.FindStringSubmatch(text); h != nil {
				year, _ = strconv.Atoi(h[2])
			}
			return
		}
		if !sel.Is("h4") {
			return
		}

		link := sel.Find("a").First()
		title := normalize.CollapseSpace(link.Text())
		if title == "" {
			title = text
		}
		if title == "" {
			return
		}

		block := normalize.CollapseSpace(sel.Parent().Text())
		f := missionFeaturedRe.FindStringSubmatch(block)
		if f == nil {
			return
		}
		date, ok := missionDate(year, f[1], f[2])
		if !ok {
			return
		}
		start, end := extract.TimeRange(f[0])

		href, _ := link.Attr("href")
		candidates = append(candidates, assemble.Candidate{
			Title:     title,
			Block:     block,
			Href:      href,
			Date:      date,
			StartTime: start,
			EndTime:   end,
		})
	})
	return candidates
}

func missionDate(year int, month, day string) (string, bool) {
	mo, ok := minnaMonths[normalize.Fold(month)]
	if !ok {
		return "", false
	}
	d, _ := strconv.Atoi(day)
	t := time.Date(year, mo, d, 0, 0, 0, 0, time.UTC)
	if t.Month() != mo || t.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, int(mo), d), true
}

// missionNextLink finds the next calendar page, preferring the rel=next
// pagination anchor and falling back to link text.
func missionNextLink(doc *goquery.Document) string {
	if href, ok := doc.Find("a[rel='next']").First().Attr("href"); ok {
		return absoluteAgainst(missionComicsBase, href)
	}
	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if normalize.Fold(normalize.CollapseSpace(a.Text())) == "next events" {
			href, _ := a.Attr("href")
			next = absoluteAgainst(missionComicsBase, href)
			return false
		}
		return true
	})
	return next
}
