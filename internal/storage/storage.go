package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obstacleb/artlinks-data/internal/event"
)

// Store persists event tables as CSV files under a data directory.
type Store struct {
	dataDir string
}

// New creates a Store, expanding a leading ~ and creating the directory if
// needed.
func New(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

// SourcePath is the per-source table file for a scraper run.
func (s *Store) SourcePath(source string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s_events.csv", strings.ToLower(source)))
}

// MasterPath is the merged master table file.
func (s *Store) MasterPath(name string) string {
	if name == "" {
		name = "events.csv"
	}
	return filepath.Join(s.dataDir, name)
}

// ReadTable loads a CSV event table. Columns are mapped by header name, so
// narrower per-source projections read cleanly; is_museum values are
// canonicalized on ingestion. Rows missing a date or title are skipped;
// they violate the persisted-record invariants and cannot be merged or
// sorted meaningfully. A missing file is an empty table, not an error.
func (s *Store) ReadTable(path string) ([]*event.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	events := make([]*event.Event, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		e := event.FromRecord(index, rec)
		if !e.Valid() {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// WriteTable replaces the table file with the given events as a whole:
// the rows are written to a temp file in the same directory and renamed
// into place, so readers never observe a partial write.
func (s *Store) WriteTable(path string, events []*event.Event) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".artlinks-*.csv")
	if err != nil {
		return fmt.Errorf("creating temp table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(event.Headers); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range events {
		if err := w.Write(e.Record()); err != nil {
			tmp.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp table: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing table: %w", err)
	}
	return nil
}
