// Package storage is the tabular-store collaborator: CSV read/write of the
// canonical event schema, one file per source plus the merged master table.
//
// Writes are whole-file replacements via a temp file and rename, so a reader
// never sees a partially written table. Reads map columns by header name and
// canonicalize the historical is_museum encodings to a single boolean form.
package storage
