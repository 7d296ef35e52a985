package filter

import (
	"testing"
	"time"

	"github.com/obstacleb/artlinks-data/internal/event"
)

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

var sample = []*event.Event{
	{Date: "2026-03-06", Venue: "111 Minna Gallery", Title: "Friday Show",
		Category: "Music", PriceText: "$10"},
	{Date: "2026-03-07", Venue: "Sketchboard (Figure)", Title: "Saturday Session",
		Category: "Figure Drawing", PriceText: "$20"},
	{Date: "2026-03-08", Venue: "Moth Belly Gallery", Title: "Sunday Opening",
		Category: "Opening", PriceText: "Free"},
	{Date: "bad-date", Venue: "111 Minna Gallery", Title: "Broken Row",
		Category: "Music"},
}

func TestApplyDateRange(t *testing.T) {
	f := Filter{From: day("2026-03-07"), To: day("2026-03-08")}
	got := f.Apply(sample)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Title != "Saturday Session" || got[1].Title != "Sunday Opening" {
		t.Errorf("wrong events: %v, %v", got[0].Title, got[1].Title)
	}
}

func TestApplyWeekendsOnly(t *testing.T) {
	f := Filter{WeekendsOnly: true}
	got := f.Apply(sample)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	for _, e := range got {
		if e.Title == "Friday Show" || e.Title == "Broken Row" {
			t.Errorf("event %q should have been excluded", e.Title)
		}
	}
}

func TestApplyVenueSubstring(t *testing.T) {
	f := Filter{Venues: []string{"minna"}}
	got := f.Apply(sample)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Title != "Friday Show" {
		t.Errorf("first = %q", got[0].Title)
	}
}

func TestApplyFreeOnly(t *testing.T) {
	f := Filter{FreeOnly: true}
	got := f.Apply(sample)
	if len(got) != 1 || got[0].Title != "Sunday Opening" {
		t.Errorf("free filter = %v", got)
	}
}

func TestApplyCombinedCriteria(t *testing.T) {
	f := Filter{
		WeekendsOnly: true,
		Categories:   []string{"figure"},
	}
	got := f.Apply(sample)
	if len(got) != 1 || got[0].Title != "Saturday Session" {
		t.Errorf("combined filter = %v", got)
	}
}

func TestMatchesEmptyFilter(t *testing.T) {
	f := Filter{}
	if !f.Matches(sample[0]) {
		t.Error("empty filter should match everything")
	}
	if !f.Matches(sample[3]) {
		t.Error("empty filter should match rows with bad dates too")
	}
}
