// Package event defines the canonical Event record shared by every source
// adapter, the deduplicator, and the master-table merger.
//
// An Event always has a resolvable ISO date and a non-empty title; records
// that fail required-field extraction are dropped upstream and never
// constructed. Deduplication keys and sort order are defined here so that
// every call site collapses and orders records identically.
package event
