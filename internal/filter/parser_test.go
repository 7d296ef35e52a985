package filter

import (
	"testing"
	"time"
)

var parserRef = time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		from  string
		to    string
	}{
		{"iso bounds", "2026-03-01..2026-03-15", "2026-03-01", "2026-03-15"},
		{"same month", "June 1-15", "2026-06-01", "2026-06-15"},
		{"cross month", "June 20 - July 5", "2026-06-20", "2026-07-05"},
		{"whole month", "August", "2026-08-01", "2026-08-31"},
		{"past month rolls forward", "March 1-15", "2027-03-01", "2027-03-15"},
		{"cross month wrapping year", "December 20 - January 5", "2026-12-20", "2027-01-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseDateRange(tt.input, parserRef)
			if err != nil {
				t.Fatalf("ParseDateRange(%q): %v", tt.input, err)
			}
			if got := from.Format("2006-01-02"); got != tt.from {
				t.Errorf("from = %s, want %s", got, tt.from)
			}
			if got := to.Format("2006-01-02"); got != tt.to {
				t.Errorf("to = %s, want %s", got, tt.to)
			}
		})
	}
}

func TestParseDateRangeErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"next week",
		"June 15-1",
		"June 0-15",
		"2026-03-15..2026-03-01",
	} {
		if _, _, err := ParseDateRange(input, parserRef); err == nil {
			t.Errorf("ParseDateRange(%q) should fail", input)
		}
	}
}
