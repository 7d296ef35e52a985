package event

import (
	"strings"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Event is one row of the canonical tabular schema.
//
// StartTime and EndTime are 24-hour "HH:MM" or empty when the source text
// provides no time. End times are purely informational: an overnight show
// ending past midnight may carry an end time earlier than its start, and no
// ordering between the two is enforced.
type Event struct {
	Date       string // YYYY-MM-DD, never empty
	Venue      string
	Title      string // never empty
	Category   string
	StartTime  string
	EndTime    string
	PriceText  string
	EventURL   string
	IsMuseum   bool
	Source     string
	EventType  string
	Notes      string
	MuseumName string
}

// Headers is the canonical column order of the full master table. Per-source
// writers may project a subset; readers map columns by name.
var Headers = []string{
	"date", "venue", "title", "category", "start_time", "end_time",
	"price_text", "event_url", "is_museum", "source", "event_type",
	"notes", "museum_name",
}

// Record renders the event as one CSV row in Headers order. is_museum is
// always written as "true"/"false" regardless of what was ingested.
func (e *Event) Record() []string {
	return []string{
		e.Date, e.Venue, e.Title, e.Category, e.StartTime, e.EndTime,
		e.PriceText, e.EventURL, FormatBool(e.IsMuseum), e.Source,
		e.EventType, e.Notes, e.MuseumName,
	}
}

// FromRecord builds an Event from a CSV row using a header-name→index map,
// so narrower per-source projections read cleanly. Missing columns become
// empty strings.
func FromRecord(index map[string]int, rec []string) *Event {
	get := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	return &Event{
		Date:       get("date"),
		Venue:      get("venue"),
		Title:      get("title"),
		Category:   get("category"),
		StartTime:  get("start_time"),
		EndTime:    get("end_time"),
		PriceText:  get("price_text"),
		EventURL:   get("event_url"),
		IsMuseum:   ParseBool(get("is_museum")),
		Source:     get("source"),
		EventType:  get("event_type"),
		Notes:      get("notes"),
		MuseumName: get("museum_name"),
	}
}

// Valid reports whether the record satisfies the persisted-record
// invariants: a date and a title are always present.
func (e *Event) Valid() bool {
	return e.Date != "" && e.Title != ""
}

// ParseBool canonicalizes the boolean encodings observed in historical data:
// "true" and "yes" are true; "false", "no", and empty are false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes":
		return true
	default:
		return false
	}
}

// FormatBool is the single boolean encoding used in written output.
func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// KeyFunc derives a dedupe key from an event.
type KeyFunc func(*Event) string

// MasterKey is the master-table uniqueness key: date, venue, title,
// start time, and category, with display fields case-folded.
func MasterKey(e *Event) string {
	return Key(e.Date, normalize.Fold(e.Venue), normalize.Fold(e.Title),
		e.StartTime, normalize.Fold(e.Category))
}

// Key joins key fields with a separator that cannot occur in field values
// once whitespace is collapsed.
func Key(fields ...string) string {
	return strings.Join(fields, "\x1f")
}
