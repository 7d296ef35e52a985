package event

import (
	"reflect"
	"testing"
)

func evt(date, title, source string) *Event {
	return &Event{Date: date, Venue: "Venue", Title: title, Source: source}
}

func TestMergeReplacesSourceRows(t *testing.T) {
	master := []*Event{
		evt("2026-01-10", "Old listing", "syzygy"),
		evt("2026-01-12", "Kept listing", "arch"),
	}
	batch := []*Event{
		evt("2026-01-11", "New listing", "syzygy"),
	}

	got := Merge(master, batch, "syzygy")

	if len(got) != 2 {
		t.Fatalf("Merge kept %d rows, want 2", len(got))
	}
	if got[0].Title != "New listing" || got[1].Title != "Kept listing" {
		t.Errorf("unexpected rows: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestMergeEmptyBatchClearsSource(t *testing.T) {
	master := []*Event{
		evt("2026-01-10", "Gone", "syzygy"),
		evt("2026-01-12", "Stays", "arch"),
	}

	got := Merge(master, nil, "syzygy")

	if len(got) != 1 || got[0].Title != "Stays" {
		t.Errorf("Merge = %+v, want only the arch row", got)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	master := []*Event{
		evt("2026-01-12", "Other", "arch"),
	}
	batch := []*Event{
		evt("2026-01-10", "B", "syzygy"),
		evt("2026-01-11", "A", "syzygy"),
	}

	once := Merge(master, batch, "syzygy")
	twice := Merge(once, batch, "syzygy")

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("repeated merge diverged:\n once %+v\ntwice %+v", once, twice)
	}
}

func TestMergeMatchesNotesMarker(t *testing.T) {
	historical := &Event{
		Date: "2026-01-10", Title: "Drink & Draw",
		Source: "", Notes: "Auto-imported: Sketchboard",
	}
	master := []*Event{historical, evt("2026-01-12", "Stays", "arch")}

	got := Merge(master, nil, "sketchboard")

	if len(got) != 1 || got[0].Title != "Stays" {
		t.Errorf("notes-tagged historical row was not replaced: %+v", got)
	}
}

func TestMergeDeduplicatesAcrossSources(t *testing.T) {
	shared := evt("2026-01-10", "Same Event", "arch")
	master := []*Event{shared}
	batch := []*Event{evt("2026-01-10", "same event", "syzygy")}

	// Same date/venue/title/time/category collapses to the surviving first
	// occurrence after the master rows.
	got := Merge(master, batch, "syzygy")
	if len(got) != 1 {
		t.Errorf("Merge kept %d rows, want 1", len(got))
	}
}
