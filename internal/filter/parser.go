package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	monthNames = `january|february|march|april|may|june|july|august|september|october|november|december`

	// "2026-03-01..2026-03-15"
	isoRangeRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s*\.\.\s*(\d{4}-\d{2}-\d{2})$`)

	// "March 1-15"
	sameMonthRe = regexp.MustCompile(`(?i)^(` + monthNames + `)\s+(\d{1,2})\s*-\s*(\d{1,2})$`)

	// "March 1 - April 15"
	crossMonthRe = regexp.MustCompile(`(?i)^(` + monthNames + `)\s+(\d{1,2})\s*-\s*(` + monthNames + `)\s+(\d{1,2})$`)

	// "March"
	wholeMonthRe = regexp.MustCompile(`(?i)^(` + monthNames + `)$`)
)

// ParseDateRange parses a date range expression into inclusive bounds.
//
// Supported forms:
//   - "2026-03-01..2026-03-15" - explicit ISO bounds
//   - "March 1-15"             - same month, different days
//   - "March 1 - April 15"     - different months
//   - "March"                  - entire month
//
// Year-less forms infer the year from ref: a month already past rolls to
// next year, and a cross-month range whose end month precedes its start
// month wraps into the following year.
func ParseDateRange(input string, ref time.Time) (from, to time.Time, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return from, to, fmt.Errorf("date range cannot be empty")
	}

	if m := isoRangeRe.FindStringSubmatch(input); m != nil {
		from, err = time.Parse("2006-01-02", m[1])
		if err != nil {
			return from, to, fmt.Errorf("invalid start date: %s", m[1])
		}
		to, err = time.Parse("2006-01-02", m[2])
		if err != nil {
			return from, to, fmt.Errorf("invalid end date: %s", m[2])
		}
		return ordered(from, to)
	}

	if m := sameMonthRe.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		day1, day2 := atoiDay(m[2]), atoiDay(m[3])
		if day1 == 0 || day2 == 0 {
			return from, to, fmt.Errorf("invalid day in range: %s", input)
		}
		year := yearFor(month, ref)
		return ordered(
			time.Date(year, month, day1, 0, 0, 0, 0, time.UTC),
			time.Date(year, month, day2, 0, 0, 0, 0, time.UTC))
	}

	if m := crossMonthRe.FindStringSubmatch(input); m != nil {
		month1, month2 := parseMonth(m[1]), parseMonth(m[3])
		day1, day2 := atoiDay(m[2]), atoiDay(m[4])
		if day1 == 0 || day2 == 0 {
			return from, to, fmt.Errorf("invalid day in range: %s", input)
		}
		year1 := yearFor(month1, ref)
		year2 := year1
		if month2 < month1 {
			year2 = year1 + 1
		}
		return ordered(
			time.Date(year1, month1, day1, 0, 0, 0, 0, time.UTC),
			time.Date(year2, month2, day2, 0, 0, 0, 0, time.UTC))
	}

	if m := wholeMonthRe.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearFor(month, ref)
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		return first, first.AddDate(0, 1, -1), nil
	}

	return from, to, fmt.Errorf("unrecognized date range: %s", input)
}

func ordered(from, to time.Time) (time.Time, time.Time, error) {
	if from.After(to) {
		return from, to, fmt.Errorf("start date must be before end date")
	}
	return from, to, nil
}

// yearFor picks ref's year unless the month has fully passed.
func yearFor(month time.Month, ref time.Time) int {
	if month < ref.Month() {
		return ref.Year() + 1
	}
	return ref.Year()
}

func parseMonth(name string) time.Month {
	switch strings.ToLower(name) {
	case "january":
		return time.January
	case "february":
		return time.February
	case "march":
		return time.March
	case "april":
		return time.April
	case "may":
		return time.May
	case "june":
		return time.June
	case "july":
		return time.July
	case "august":
		return time.August
	case "september":
		return time.September
	case "october":
		return time.October
	case "november":
		return time.November
	case "december":
		return time.December
	}
	return 0
}

func atoiDay(s string) int {
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > 31 {
		return 0
	}
	return d
}
