package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/obstacleb/artlinks-data/internal/event"
	"github.com/obstacleb/artlinks-data/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time           `json:"checked_at"`
	Sources    []pipeline.RunStats `json:"sources,omitempty"`
	Merged     []string            `json:"merged,omitempty"`
	Events     []*event.Event      `json:"events,omitempty"`
	EventCount int                 `json:"event_count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	for _, s := range result.Sources {
		if s.Failed {
			fmt.Fprintf(w, "%s: FAILED (previous table kept)\n", s.Source)
			continue
		}
		fmt.Fprintf(w, "%s: %d events from %d candidates\n", s.Source, s.Emitted, s.Candidates)

		if len(s.Dropped) > 0 {
			reasons := make([]string, 0, len(s.Dropped))
			for r := range s.Dropped {
				reasons = append(reasons, r)
			}
			sort.Strings(reasons)
			for _, r := range reasons {
				fmt.Fprintf(w, "  dropped %d: %s\n", s.Dropped[r], r)
			}
		}
	}

	for _, name := range result.Merged {
		fmt.Fprintf(w, "merged: %s\n", name)
	}

	for _, e := range result.Events {
		fmt.Fprintf(w, "%s  %-11s %s @ %s", e.Date, timeSpan(e), e.Title, e.Venue)
		if e.PriceText != "" {
			fmt.Fprintf(w, " (%s)", e.PriceText)
		}
		fmt.Fprintln(w)
	}

	switch {
	case len(result.Sources) > 0:
		fmt.Fprintf(w, "\nTotal: %d events across %d sources\n", result.EventCount, len(result.Sources))
	case len(result.Merged) > 0:
		fmt.Fprintf(w, "\nMaster table: %d events\n", result.EventCount)
	case result.EventCount == 0:
		fmt.Fprintln(w, "No events found.")
	default:
		fmt.Fprintf(w, "\nTotal: %d events\n", result.EventCount)
	}

	return nil
}

// timeSpan renders "19:00-22:00", "19:00", or "all day".
func timeSpan(e *event.Event) string {
	switch {
	case e.StartTime == "":
		return "all day"
	case e.EndTime == "":
		return e.StartTime
	default:
		return e.StartTime + "-" + e.EndTime
	}
}
