package source

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Comix scrapes the Comix Experience events index and then each event page.
// Squarespace event pages publish either start/end datetime lines
// ("Thursday, January 1, 2026 10:00 AM") or a date line plus a separate
// "10:00 AM 6:00 PM" range; signings at the Outpost store carry its name in
// the location block.
type Comix struct{}

const (
	comixBase  = "https://www.comixexperience.com"
	comixIndex = comixBase + "/events"
)

var (
	// Event permalinks are dated: /events/2026/1/1/january-graphic-novel-club
	comixEventPathRe = regexp.MustCompile(`^/events/\d{4}/\d{1,2}/\d{1,2}/`)

	// "Thursday, January 1, 2026 10:00 AM" flattened from a datetime line;
	// the first match is the start, a second one is the end.
	comixDateTimeRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2}),\s+(\d{4})\s+(\d{1,2}):(\d{2})\s*([AP]M)\b`)
)

func (c *Comix) Name() string { return "comix" }

func (c *Comix) Key() event.KeyFunc {
	// Permalinks are dated and stable.
	return func(e *event.Event) string { return e.EventURL }
}

func (c *Comix) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:      "comix",
		Venue:       "Comix Experience",
		EventType:   "comix",
		BaseURL:     comixBase,
		Fallback:    classify.Category("Comics"),
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (c *Comix) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	index, err := client.Get(comixIndex)
	if err != nil {
		return nil, assemble.Profile{}, err
	}

	var candidates []assemble.Candidate
	for _, url := range comixEventURLs(index) {
		page, err := client.Get(url)
		if err != nil {
			// One broken event page never fails the source.
			continue
		}
		if cand, ok := c.extractPage(page, url, opts); ok {
			candidates = append(candidates, cand)
		}
	}
	return candidates, c.profile(opts), nil
}

// comixEventURLs collects the dated event permalinks from the index,
// skipping category pages and stripping query strings.
func comixEventURLs(doc *goquery.Document) []string {
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !comixEventPathRe.MatchString(href) || strings.Contains(href, "/category/") {
			return
		}
		href, _, _ = strings.Cut(href, "?")
		seen[comixBase+href] = true
	})

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// extractPage builds one candidate from an event page. Datetime lines, when
// present, pre-resolve the date and times; otherwise the date line and time
// range are left in the block for extraction.
func (c *Comix) extractPage(page *goquery.Document, url string, opts Options) (assemble.Candidate, bool) {
	title := normalize.CollapseSpace(page.Find("h1").First().Text())
	if title == "" {
		title = normalize.CollapseSpace(page.Find("title").First().Text())
	}
	if title == "" {
		return assemble.Candidate{}, false
	}

	scope := page.Find("main").First()
	if scope.Length() == 0 {
		scope = page.Find("body").First()
	}
	block := normalize.CollapseSpace(scope.Text())

	cand := assemble.Candidate{
		Title: title,
		Block: block,
		Href:  url,
		Venue: comixVenue(block),
	}
	if strings.Contains(normalize.Fold(block), "live stream") || strings.Contains(normalize.Fold(block), "livestream") {
		cand.Notes = "Live Stream / Online"
	}

	matches := comixDateTimeRe.FindAllStringSubmatch(block, 2)
	if len(matches) == 0 {
		// No dated line at all; the assembler extracts from the block.
		return cand, true
	}

	start, ok := comixDateTime(matches[0])
	if !ok {
		return assemble.Candidate{}, false
	}
	if outsideWindow(start, opts.Now) {
		return assemble.Candidate{}, false
	}
	cand.Date = extract.ISODate(start)
	cand.StartTime = comixClock(matches[0])

	if len(matches) == 1 {
		// Date line plus a separate "6:00 PM 7:30 PM" range; recover the end.
		if s, e := extract.TimeRange(block); s == cand.StartTime && e != "" {
			cand.EndTime = e
		}
	} else {
		if end, ok := comixDateTime(matches[1]); ok {
			cand.EndTime = comixClock(matches[1])
			if !end.Equal(start) && extract.ISODate(end) != cand.Date {
				note := "Runs through " + extract.ISODate(end)
				if cand.Notes != "" {
					note = cand.Notes + " • " + note
				}
				cand.Notes = note
			}
		}
	}
	return cand, true
}

func comixVenue(block string) string {
	if strings.Contains(block, "Comix Experience Outpost") {
		return "Comix Experience Outpost"
	}
	return "Comix Experience"
}

func comixDateTime(m []string) (time.Time, bool) {
	month, ok := minnaMonths[normalize.Fold(m[1])]
	if !ok {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func comixClock(m []string) string {
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	return extract.Clock(hour, minute, m[6])
}

// outsideWindow drops archive pages the index still links to: anything more
// than a year back or much more than a year out.
func outsideWindow(d, now time.Time) bool {
	return d.Before(now.AddDate(0, 0, -365)) || d.After(now.AddDate(0, 0, 370))
}
