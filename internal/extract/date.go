package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPastHorizonDays is how far in the past a year-less date may fall
// before the extractor assumes it belongs to next year. Schedules published
// near year boundaries list January dates in December; without the rollover
// those would be misdated a year back.
const DefaultPastHorizonDays = 270

var longMonths = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var shortMonths = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

const longMonthAlt = `January|February|March|April|May|June|July|August|September|October|November|December`
const weekdayAlt = `Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday`

var (
	isoRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)

	// "Tuesday, February 17, 2026"
	weekdayLongRe = regexp.MustCompile(`(?i)\b(?:` + weekdayAlt + `),\s+(` + longMonthAlt + `)\s+(\d{1,2}),\s+(\d{4})\b`)

	// "March 28, 2026"
	longYearRe = regexp.MustCompile(`(?i)\b(` + longMonthAlt + `)\s+(\d{1,2}),\s+(\d{4})\b`)

	// "February 17" with no year
	longNoYearRe = regexp.MustCompile(`(?i)\b(` + longMonthAlt + `)\s+(\d{1,2})\b`)

	// "04-25-2026"
	mdyRe = regexp.MustCompile(`\b(\d{2})-(\d{2})-(\d{4})\b`)

	// "Feb 28 / 02:00 pm" or "Feb 28 @ 2pm" (abbreviated month followed by a time)
	shortAtTimeRe = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2})\s*[@/]\s*\d{1,2}(?::\d{2})?\s*[ap]m\b`)
)

// Date attempts to extract a calendar date from text, trying grammars in
// strict precedence order: ISO, weekday+long-month+day+year, long-month+
// day+year, long-month+day (year inferred), MM-DD-YYYY, abbreviated month+
// day followed by a time. The first successful grammar wins and no later
// grammar runs, so conflicting partial matches on the same text are
// impossible. Returns ok=false when no grammar matches; callers must drop
// the candidate rather than default to today.
//
// ref anchors year inference for year-less grammars. horizonDays tunes the
// past-horizon rollover; values <= 0 use DefaultPastHorizonDays.
func Date(text string, ref time.Time, horizonDays int) (time.Time, bool) {
	if m := isoRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
	}

	if m := weekdayLongRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[3]), longMonths[strings.ToLower(m[1])], atoi(m[2]))
	}

	if m := longYearRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[3]), longMonths[strings.ToLower(m[1])], atoi(m[2]))
	}

	if m := longNoYearRe.FindStringSubmatch(text); m != nil {
		return inferYear(longMonths[strings.ToLower(m[1])], atoi(m[2]), ref, horizonDays)
	}

	if m := mdyRe.FindStringSubmatch(text); m != nil {
		return makeDate(atoi(m[3]), time.Month(atoi(m[1])), atoi(m[2]))
	}

	if m := shortAtTimeRe.FindStringSubmatch(text); m != nil {
		return inferYear(shortMonths[strings.ToLower(m[1])], atoi(m[2]), ref, horizonDays)
	}

	return time.Time{}, false
}

// inferYear resolves a month/day with no year: assume ref's year; if that
// lands more than horizonDays in the past relative to ref, roll forward one
// year.
func inferYear(month time.Month, day int, ref time.Time, horizonDays int) (time.Time, bool) {
	if horizonDays <= 0 {
		horizonDays = DefaultPastHorizonDays
	}

	d, ok := makeDate(ref.Year(), month, day)
	if !ok {
		return time.Time{}, false
	}

	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	if refDay.Sub(d) > time.Duration(horizonDays)*24*time.Hour {
		d = d.AddDate(1, 0, 0)
	}
	return d, true
}

// makeDate validates the components by round-tripping through time.Date;
// "February 30" normalizes to March and is rejected.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// ISODate formats an extracted date in the canonical YYYY-MM-DD form.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
