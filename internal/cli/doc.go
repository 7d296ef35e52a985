// Package cli implements the command-line interface for artlinks.
//
// The cli package provides the Cobra-based CLI with commands for scraping
// sources into per-source CSV tables, merging those tables into the master
// table, and exporting the master table as an iCalendar feed. It coordinates
// the source, pipeline, storage, and calendar packages.
package cli
