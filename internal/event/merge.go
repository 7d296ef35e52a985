package event

import (
	"strings"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Merge combines a freshly scraped per-source batch into the master table:
// every master row tagged with the batch's source is removed first, then the
// batch is appended and the whole set re-deduplicated and re-sorted. Running
// the same unchanged batch twice converges to identical output, and an empty
// batch clears the source's prior contribution entirely.
func Merge(master, batch []*Event, source string) []*Event {
	out := make([]*Event, 0, len(master)+len(batch))
	for _, e := range master {
		if TaggedWith(e, source) {
			continue
		}
		out = append(out, e)
	}
	out = append(out, batch...)

	out = Dedupe(out, MasterKey)
	Sort(out)
	return out
}

// TaggedWith reports whether a row belongs to the given source, either via
// the source column or via the "auto-imported: <source>" notes marker that
// older rows carry instead.
func TaggedWith(e *Event, source string) bool {
	src := normalize.Fold(source)
	if normalize.Fold(e.Source) == src {
		return true
	}
	return strings.Contains(normalize.Fold(e.Notes), "auto-imported: "+src)
}
