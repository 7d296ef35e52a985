// Package calendar exports the master table as an iCalendar feed.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/obstacleb/artlinks-data/internal/event"
)

const prodID = "-//artlinks//artlinks-data//EN"

// EventUID creates a deterministic UID for an event based on the same fields
// that identify it in the master table, so re-exports update rather than
// duplicate entries in subscribing calendars.
func EventUID(e *event.Event) string {
	h := sha1.New()
	h.Write([]byte(event.MasterKey(e)))
	return fmt.Sprintf("%x@artlinks", h.Sum(nil))
}

// Build renders events as a VCALENDAR. Events with times get timed
// DTSTART/DTEND; events without a start time become all-day entries. Rows
// with an unparseable date are skipped; the table is the source of truth and
// the export never invents a time.
func Build(events []*event.Event, now time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(prodID)

	for _, e := range events {
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}

		ve := cal.AddEvent(EventUID(e))
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(e.Title)
		if e.Venue != "" {
			ve.SetLocation(e.Venue)
		}
		if e.EventURL != "" {
			ve.SetURL(e.EventURL)
		}
		if desc := description(e); desc != "" {
			ve.SetDescription(desc)
		}

		start, ok := atTime(day, e.StartTime)
		if !ok {
			ve.SetAllDayStartAt(day)
			ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}
		ve.SetStartAt(start)

		if end, ok := atTime(day, e.EndTime); ok {
			if !end.After(start) {
				// Listings that run past midnight publish an end time
				// earlier on the clock than the start.
				end = end.AddDate(0, 0, 1)
			}
			ve.SetEndAt(end)
		} else {
			ve.SetEndAt(start.Add(2 * time.Hour))
		}
	}

	return cal
}

// Serialize renders the feed as ICS text.
func Serialize(events []*event.Event, now time.Time) string {
	return Build(events, now).Serialize()
}

func atTime(day time.Time, hhmm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), true
}

func description(e *event.Event) string {
	var parts []string
	if e.Category != "" {
		parts = append(parts, "Category: "+e.Category)
	}
	if e.PriceText != "" {
		parts = append(parts, "Price: "+e.PriceText)
	}
	if e.Notes != "" {
		parts = append(parts, e.Notes)
	}
	return strings.Join(parts, "\n")
}
