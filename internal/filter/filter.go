// Package filter narrows the master table for queries.
//
// Filters combine date ranges, venue and category substring matching, a
// weekends-only switch, and free-only price matching. Criteria are ANDed;
// within a list criterion the entries are ORed.
//
// Example usage:
//
//	f := filter.Filter{WeekendsOnly: true, Venues: []string{"minna"}}
//	upcoming := f.Apply(events)
package filter

import (
	"strings"
	"time"

	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Filter represents event filtering criteria.
type Filter struct {
	// Date range, inclusive on both ends.
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`

	// Venue filtering (case-insensitive substring match).
	Venues []string `json:"venues,omitempty"`

	// Category filtering (case-insensitive substring match).
	Categories []string `json:"categories,omitempty"`

	// Weekend-only filtering (Saturday/Sunday).
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	// Free-only filtering on the price text.
	FreeOnly bool `json:"free_only,omitempty"`
}

// Apply returns the events matching every criterion, preserving order.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	var out []*event.Event
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether an event passes the filter. Events whose date
// fails to parse are excluded whenever any date-based criterion is set.
func (f *Filter) Matches(e *event.Event) bool {
	if f.From != nil || f.To != nil || f.WeekendsOnly {
		day, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return false
		}
		if f.From != nil && day.Before(*f.From) {
			return false
		}
		if f.To != nil && day.After(*f.To) {
			return false
		}
		if f.WeekendsOnly && day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			return false
		}
	}

	if !matchesAny(e.Venue, f.Venues) {
		return false
	}
	if !matchesAny(e.Category, f.Categories) {
		return false
	}

	if f.FreeOnly && !strings.Contains(normalize.Fold(e.PriceText), "free") {
		return false
	}

	return true
}

// matchesAny reports whether the folded value contains any of the terms; an
// empty term list matches everything.
func matchesAny(value string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	folded := normalize.Fold(value)
	for _, term := range terms {
		if term != "" && strings.Contains(folded, normalize.Fold(term)) {
			return true
		}
	}
	return false
}
