package assemble

import (
	"testing"
	"time"

	"github.com/obstacleb/artlinks-data/internal/classify"
)

var testProfile = Profile{
	Source:   "sketchboard",
	Venue:    "Sketchboard",
	BaseURL:  "https://www.sketchboard.co/schedule",
	Fallback: classify.Workshop,
	VenueFor: map[classify.Category]string{
		classify.DrinkAndDraw: "Sketchboard @ Madrone Art Bar",
	},
	DefaultPrice: map[classify.Category]string{
		classify.DrinkAndDraw: "$15 cash only (per Sketchboard)",
	},
	Now: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
}

func TestAssemble(t *testing.T) {
	c := Candidate{
		Title: "Drink & Draw",
		Block: "Tuesday, February 17, 2026 6:30 PM 8:30 PM at Madrone",
		Href:  "/schedule/drink-draw-feb",
	}

	res := Assemble(testProfile, c)
	if res.Dropped() {
		t.Fatalf("candidate dropped: %s", res.Reason)
	}

	e := res.Event
	if e.Date != "2026-02-17" {
		t.Errorf("Date = %q, want 2026-02-17", e.Date)
	}
	if e.StartTime != "18:30" || e.EndTime != "20:30" {
		t.Errorf("times = (%q, %q), want (18:30, 20:30)", e.StartTime, e.EndTime)
	}
	if e.Category != "Drink & Draw" {
		t.Errorf("Category = %q", e.Category)
	}
	if e.Venue != "Sketchboard @ Madrone Art Bar" {
		t.Errorf("Venue = %q: per-category venue override not applied", e.Venue)
	}
	if e.PriceText != "$15 cash only (per Sketchboard)" {
		t.Errorf("PriceText = %q: default price not applied", e.PriceText)
	}
	if e.EventURL != "https://www.sketchboard.co/schedule/drink-draw-feb" {
		t.Errorf("EventURL = %q: relative link not resolved", e.EventURL)
	}
	if e.Source != "sketchboard" {
		t.Errorf("Source = %q", e.Source)
	}
}

func TestAssembleDrops(t *testing.T) {
	tests := []struct {
		name   string
		c      Candidate
		reason Reason
	}{
		{"no title", Candidate{Block: "Tuesday, February 17, 2026"}, ReasonNoTitle},
		{"whitespace title", Candidate{Title: "  \n ", Block: "2026-02-17"}, ReasonNoTitle},
		{"no date", Candidate{Title: "Figure Drawing", Block: "weekly session, check site"}, ReasonNoDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Assemble(testProfile, tt.c)
			if !res.Dropped() {
				t.Fatalf("candidate not dropped: %+v", res.Event)
			}
			if res.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", res.Reason, tt.reason)
			}
		})
	}
}

func TestAssembleSkipList(t *testing.T) {
	p := testProfile
	p.SkipTitles = []string{"happy hour", "private event"}

	res := Assemble(p, Candidate{Title: "Gallery Happy Hour", Block: "2026-02-17"})
	if !res.Dropped() || res.Reason != ReasonSkipped {
		t.Errorf("skip-listed title not dropped: %+v", res)
	}
}

func TestAssemblePreResolvedDate(t *testing.T) {
	c := Candidate{
		Title:     "Hobby Hang",
		Block:     "Every Monday, 8-10pm",
		Date:      "2026-02-16",
		StartTime: "20:00",
		EndTime:   "22:00",
	}

	res := Assemble(testProfile, c)
	if res.Dropped() {
		t.Fatalf("candidate dropped: %s", res.Reason)
	}
	if res.Event.Date != "2026-02-16" {
		t.Errorf("Date = %q, want pre-resolved 2026-02-16", res.Event.Date)
	}
	if res.Event.StartTime != "20:00" || res.Event.EndTime != "22:00" {
		t.Errorf("pre-resolved times not kept: (%q, %q)", res.Event.StartTime, res.Event.EndTime)
	}
}

func TestAssembleCandidateVenueOverride(t *testing.T) {
	c := Candidate{
		Title: "Watercolor Basics",
		Block: "Watercolor Basics Feb 28 / 02:00 pm $85",
		Venue: "Case for Making — Online",
	}

	res := Assemble(testProfile, c)
	if res.Dropped() {
		t.Fatalf("candidate dropped: %s", res.Reason)
	}
	if res.Event.Venue != "Case for Making — Online" {
		t.Errorf("Venue = %q, want the candidate override", res.Event.Venue)
	}
}

func TestAssembleMalformedTimeStillEmits(t *testing.T) {
	c := Candidate{
		Title: "Evening Workshop",
		Block: "Tuesday, February 17, 2026, 6:30-8:30ish",
	}

	res := Assemble(testProfile, c)
	if res.Dropped() {
		t.Fatal("date-only event must still be emitted when the time range fails")
	}
	if res.Event.StartTime != "" || res.Event.EndTime != "" {
		t.Errorf("times = (%q, %q), want empty", res.Event.StartTime, res.Event.EndTime)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		href string
		want string
	}{
		{"https://syzygysf.com/", "/events/market", "https://syzygysf.com/events/market"},
		{"https://syzygysf.com/", "https://other.example/e", "https://other.example/e"},
		{"https://syzygysf.com/", "", ""},
		{"", "/events/market", ""},
	}
	for _, tt := range tests {
		if got := resolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
