package event

import "testing"

func TestDedupeCasingInsensitive(t *testing.T) {
	a := &Event{Date: "2026-02-17", Venue: "Syzygy SF", Title: "Hobby Hang", Category: "Syzygy"}
	b := &Event{Date: "2026-02-17", Venue: "syzygy sf", Title: "HOBBY HANG", Category: "syzygy"}

	got := Dedupe([]*Event{a, b}, MasterKey)
	if len(got) != 1 {
		t.Fatalf("Dedupe kept %d events, want 1", len(got))
	}
	if got[0] != a {
		t.Error("Dedupe must keep the first occurrence")
	}
}

func TestDedupeKeepsDistinctTimes(t *testing.T) {
	a := &Event{Date: "2026-02-17", Title: "Figure Drawing", StartTime: "10:00"}
	b := &Event{Date: "2026-02-17", Title: "Figure Drawing", StartTime: "18:00"}

	if got := Dedupe([]*Event{a, b}, MasterKey); len(got) != 2 {
		t.Errorf("Dedupe kept %d events, want 2 (different start times)", len(got))
	}
}

func TestSortOrder(t *testing.T) {
	events := []*Event{
		{Date: "2026-03-01", StartTime: "19:00", Venue: "B", Title: "late"},
		{Date: "2026-02-17", StartTime: "19:00", Venue: "A", Title: "evening"},
		{Date: "2026-02-17", StartTime: "09:00", Venue: "A", Title: "morning"},
		{Date: "2026-02-17", StartTime: "", Venue: "A", Title: "all day"},
		{Date: "2026-02-17", StartTime: "19:00", Venue: "A", Title: "Another evening"},
	}

	Sort(events)

	wantTitles := []string{"all day", "morning", "Another evening", "evening", "late"}
	for i, want := range wantTitles {
		if events[i].Title != want {
			t.Errorf("events[%d].Title = %q, want %q", i, events[i].Title, want)
		}
	}
}
