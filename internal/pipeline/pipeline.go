// Package pipeline runs source adapters end to end: fetch candidates,
// assemble records, deduplicate, sort, and write the per-source table.
//
// Sources run sequentially and independently. A fetch or parse failure in
// one source is logged and that source contributes zero records for the run;
// it never aborts the other sources. The merger is the only component that
// touches shared persisted state, and merges for different sources are not
// run concurrently against the same master table.
package pipeline

import (
	"fmt"

	"github.com/obstacleb/artlinks-data/internal/assemble"
	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/fetch"
	"github.com/obstacleb/artlinks-data/internal/logger"
	"github.com/obstacleb/artlinks-data/internal/source"
	"github.com/obstacleb/artlinks-data/internal/storage"
)

// RunStats summarizes one source's run. Dropped candidates are counted by
// reason rather than logged per item, so a source that silently collapses to
// zero records is still visible to the operator.
type RunStats struct {
	Source     string         `json:"source"`
	Candidates int            `json:"candidates"`
	Emitted    int            `json:"emitted"`
	Dropped    map[string]int `json:"dropped,omitempty"`
	Failed     bool           `json:"failed,omitempty"`
}

// Run executes one adapter and writes its table. Transient fetch failures
// mark the stats Failed and leave the previous table untouched; assembly and
// write errors behave the same way. The returned error is nil unless the
// write failed; callers treat fetch failures as degraded, not fatal.
func Run(a source.Adapter, client *fetch.Client, store *storage.Store, opts source.Options) (RunStats, error) {
	stats := RunStats{Source: a.Name(), Dropped: make(map[string]int)}

	candidates, profile, err := a.Scrape(client, opts)
	if err != nil {
		logger.Warn("source scrape failed", logger.Fields{"source": a.Name()}, err)
		stats.Failed = true
		return stats, nil
	}
	stats.Candidates = len(candidates)

	events := make([]*event.Event, 0, len(candidates))
	for _, c := range candidates {
		res := assemble.Assemble(profile, c)
		if res.Dropped() {
			stats.Dropped[string(res.Reason)]++
			logger.IncrCounter(a.Name() + ".dropped." + string(res.Reason))
			continue
		}
		events = append(events, res.Event)
	}

	events = event.Dedupe(events, a.Key())
	event.Sort(events)
	stats.Emitted = len(events)
	logger.AddCounter(a.Name()+".emitted", int64(len(events)))

	if err := store.WriteTable(store.SourcePath(a.Name()), events); err != nil {
		return stats, fmt.Errorf("writing %s table: %w", a.Name(), err)
	}

	logger.Info("source run complete", logger.Fields{
		"source":     a.Name(),
		"candidates": stats.Candidates,
		"emitted":    stats.Emitted,
		"dropped":    stats.Dropped,
	})
	return stats, nil
}

// Merge folds one source's freshly written table into the master table,
// replacing that source's prior contribution wholesale.
func Merge(store *storage.Store, masterPath, sourceName string) error {
	master, err := store.ReadTable(masterPath)
	if err != nil {
		return fmt.Errorf("reading master table: %w", err)
	}
	batch, err := store.ReadTable(store.SourcePath(sourceName))
	if err != nil {
		return fmt.Errorf("reading %s table: %w", sourceName, err)
	}

	merged := event.Merge(master, batch, sourceName)
	if err := store.WriteTable(masterPath, merged); err != nil {
		return fmt.Errorf("writing master table: %w", err)
	}

	logger.Info("merge complete", logger.Fields{
		"source": sourceName,
		"batch":  len(batch),
		"master": len(merged),
	})
	return nil
}
