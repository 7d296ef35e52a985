package event

import (
	"sort"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Dedupe returns the first occurrence per key, preserving the original
// relative order of survivors.
func Dedupe(events []*Event, key KeyFunc) []*Event {
	seen := make(map[string]bool, len(events))
	out := make([]*Event, 0, len(events))
	for _, e := range events {
		k := key(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out
}

// Sort orders events ascending by (date, start_time, venue, title).
// Dates are ISO and times zero-padded, so plain string comparison is
// chronological.
func Sort(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if av, bv := normalize.Fold(a.Venue), normalize.Fold(b.Venue); av != bv {
			return av < bv
		}
		return normalize.Fold(a.Title) < normalize.Fold(b.Title)
	})
}
