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

// Minna scrapes the 111 Minna Gallery events list. The list view groups
// events under "Month YYYY" headers and the per-event line carries only
// "Month Day @ start - end", so the walk carries an explicit accumulator:
// the year of the last month header seen, read when an event line resolves.
type Minna struct{}

const (
	minnaBase = "https://111minnagallery.com"
	minnaList = "https://111minnagallery.com/events/list/"
)

var (
	minnaMonthHeaderRe = regexp.MustCompile(`(?i)^(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})$`)

	// "February 17 @ 4:00 pm - 10:00 pm"
	minnaLineRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})\s*@\s*\d{1,2}:\d{2}\s*(?:am|pm)\s*[-–]\s*\d{1,2}:\d{2}\s*(?:am|pm)`)
)

var minnaMonths = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

func (m *Minna) Name() string { return "minna" }

func (m *Minna) Key() event.KeyFunc {
	return func(e *event.Event) string {
		return event.Key(e.Date, normalize.Fold(e.Title), e.StartTime, e.EventURL)
	}
}

func (m *Minna) profile(opts Options) assemble.Profile {
	return assemble.Profile{
		Source:   "minna",
		Venue:    "111 Minna Gallery",
		BaseURL:  minnaBase,
		Fallback: classify.Category("111 Minna"),
		SkipTitles: []string{
			"red door coffee", "happy hour", "private event",
		},
		Now:         opts.Now,
		HorizonDays: opts.HorizonDays,
	}
}

func (m *Minna) Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error) {
	doc, err := client.Get(minnaList)
	if err != nil {
		return nil, assemble.Profile{}, err
	}
	return m.extract(doc, opts), m.profile(opts), nil
}

func (m *Minna) extract(doc *goquery.Document, opts Options) []assemble.Candidate {
	var out []assemble.Candidate

	// The fold state: year of the most recent month header, seeded with the
	// run's current year for any events listed above the first header.
	year := opts.Now.Year()

	doc.Find("body *").Each(func(_ int, el *goquery.Selection) {
		text := normalize.CollapseSpace(el.Text())

		if h := minnaMonthHeaderRe.FindStringSubmatch(text); h != nil {
			if y, err := strconv.Atoi(h[2]); err == nil {
				year = y
			}
			return
		}

		name := goquery.NodeName(el)
		if name != "h3" && name != "h4" {
			return
		}
		a := el.Find("a").First()
		if a.Length() == 0 {
			return
		}
		title := normalize.CollapseSpace(a.Text())
		if title == "" {
			return
		}
		href, _ := a.Attr("href")

		block := normalize.CollapseSpace(el.Parent().Text())
		line := minnaLineRe.FindStringSubmatch(block)
		if line == nil {
			return
		}

		month := minnaMonths[normalize.Fold(line[1])]
		day, err := strconv.Atoi(line[2])
		if err != nil {
			return
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if date.Month() != month || date.Day() != day {
			return
		}
		start, end := extract.TimeRange(line[0])

		out = append(out, assemble.Candidate{
			Title:     title,
			Block:     block,
			Href:      href,
			Date:      fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
			StartTime: start,
			EndTime:   end,
		})
	})

	return out
}
