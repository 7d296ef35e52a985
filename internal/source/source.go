// Package source holds the per-venue adapters. Each adapter knows only its
// site's selectors and text layout: it fetches pages through the shared fetch
// client and emits candidate blocks for the shared assembler. The
// normalization core never reasons about markup.
package source

import (
	"time"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/fetch"
)

// Options carries run-wide extraction parameters shared by all adapters.
type Options struct {
	// Now anchors year inference and recurrence windows.
	Now time.Time

	// WindowDays is how far ahead recurring rules expand.
	WindowDays int

	// HorizonDays tunes the past-horizon year rollover.
	HorizonDays int
}

// Adapter is one venue's scraping strategy.
type Adapter interface {
	// Name is the source tag recorded on every emitted event.
	Name() string

	// Key is the source-specific dedupe key.
	Key() event.KeyFunc

	// Scrape fetches the venue's pages and returns candidate blocks plus the
	// assembly profile to build them with. Fetch errors are transient; the
	// pipeline isolates them per source.
	Scrape(client *fetch.Client, opts Options) ([]assemble.Candidate, assemble.Profile, error)
}

// All returns every registered adapter in a stable order.
func All() []Adapter {
	return []Adapter{
		&Sketchboard{},
		&Syzygy{},
		&Minna{},
		&Arch{},
		&MothBelly{},
		&Case{},
		&Comix{},
		&MissionComics{},
	}
}

// Lookup finds an adapter by name; ok is false for unknown names.
func Lookup(name string) (Adapter, bool) {
	for _, a := range All() {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}
