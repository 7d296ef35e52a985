// Package assemble turns candidate text blocks into canonical Event records.
//
// A candidate that fails required-field extraction is dropped with a typed
// reason rather than emitted as a partial row, and drop reasons are counted
// by the pipeline so a silent total collapse of a source is visible to the
// operator.
package assemble

import (
	"net/url"
	"strings"
	"time"

	"github.com/obstacleb/artlinks-data/internal/classify"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/extract"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Candidate is one unit of source text considered as a possible event: a
// title, nearby contextual text, and an optional link. Adapters that expand
// recurrence rules pre-resolve Date (ISO form) since the block text carries
// a rule, not a date.
type Candidate struct {
	Title string
	Block string
	Href  string

	// Date, when non-empty, bypasses date extraction.
	Date string

	// Venue, when non-empty, overrides the profile venue (sources that list
	// several rooms or an online track on one page set it per candidate).
	Venue string

	// Times pre-resolved by the adapter; when empty they are extracted from
	// Block.
	StartTime string
	EndTime   string

	// Notes carries adapter-provided annotations ("Runs through ...",
	// "Auto-imported: ...").
	Notes string
}

// Reason says why a candidate was dropped.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonNoTitle Reason = "no_title"
	ReasonNoDate  Reason = "no_date"
	ReasonSkipped Reason = "skip_list"
)

// Result is the outcome for one candidate: either an Event or a drop reason.
type Result struct {
	Event  *event.Event
	Reason Reason
}

// Dropped reports whether the candidate produced no event.
func (r Result) Dropped() bool { return r.Event == nil }

// Profile carries the per-source constants an assembler needs: identity,
// display defaults, and extraction anchoring.
type Profile struct {
	Source    string
	Venue     string
	EventType string
	BaseURL   string

	// Fallback is the category used when no keyword matches; the single
	// per-source exception to the fixed taxonomy.
	Fallback classify.Category

	// VenueFor, when set, overrides Venue per classification (Sketchboard
	// publishes different rooms for figure sessions and bar nights).
	VenueFor map[classify.Category]string

	// DefaultPrice supplies a price when the block text has none.
	DefaultPrice map[classify.Category]string

	// SkipTitles drops candidates whose folded title contains any entry
	// (venues list bar service and private bookings alongside events).
	SkipTitles []string

	// Now anchors year inference; the zero value means time.Now.
	Now time.Time

	// HorizonDays tunes the past-horizon rollover; <= 0 uses the default.
	HorizonDays int
}

func (p Profile) now() time.Time {
	if p.Now.IsZero() {
		return time.Now().UTC()
	}
	return p.Now
}

// Assemble builds zero or one Event from a candidate. Required fields are
// populated or the whole candidate is discarded; it never emits a partial
// record.
func Assemble(p Profile, c Candidate) Result {
	title := normalize.CollapseSpace(c.Title)
	if title == "" {
		return Result{Reason: ReasonNoTitle}
	}
	folded := normalize.Fold(title)
	for _, skip := range p.SkipTitles {
		if skip != "" && containsFold(folded, skip) {
			return Result{Reason: ReasonSkipped}
		}
	}

	date := c.Date
	if date == "" {
		d, ok := extract.Date(c.Block, p.now(), p.HorizonDays)
		if !ok {
			return Result{Reason: ReasonNoDate}
		}
		date = extract.ISODate(d)
	}

	start, end := c.StartTime, c.EndTime
	if start == "" && end == "" {
		start, end = extract.TimeRange(c.Block)
	}

	category := classify.Classify(title, c.Block, p.Fallback)

	venue := p.Venue
	if v, ok := p.VenueFor[category]; ok {
		venue = v
	}
	if c.Venue != "" {
		venue = c.Venue
	}

	price := extract.Price(c.Block)
	if price == "" {
		price = p.DefaultPrice[category]
	}

	return Result{Event: &event.Event{
		Date:      date,
		Venue:     venue,
		Title:     title,
		Category:  string(category),
		StartTime: start,
		EndTime:   end,
		PriceText: price,
		EventURL:  resolveURL(p.BaseURL, c.Href),
		Source:    p.Source,
		EventType: p.EventType,
		Notes:     normalize.CollapseSpace(c.Notes),
	}}
}

// resolveURL makes the candidate link absolute against the source page.
// Unparseable links degrade to empty: the URL is optional on an Event.
func resolveURL(base, href string) string {
	href = normalize.CollapseSpace(href)
	if href == "" {
		return ""
	}
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if h.IsAbs() {
		return h.String()
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ""
	}
	return b.ResolveReference(h).String()
}

func containsFold(foldedTitle, term string) bool {
	return strings.Contains(foldedTitle, normalize.Fold(term))
}
