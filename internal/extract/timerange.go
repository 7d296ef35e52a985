package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

var (
	// "4:00 pm - 10:00 pm", "10:00 AM 6:00 PM", "11am-1pm"
	bothMeridiemRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*([ap]m)\s*(?:[-–]|to)?\s*(\d{1,2})(?::(\d{2}))?\s*([ap]m)\b`)

	// "6:30-8:30pm", "7-10pm": one trailing meridiem shared by both ends
	sharedMeridiemRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*[-–]\s*(\d{1,2})(?::(\d{2}))?\s*([ap]m)\b`)

	// "18:30-20:30": two-digit hours only, so a meridiem-less "6:30-8:30"
	// stays unresolvable instead of being misread as early morning
	range24Re = regexp.MustCompile(`\b([01]\d|2[0-3]):([0-5]\d)\s*[-–]\s*([01]\d|2[0-3]):([0-5]\d)\b`)

	meridiemNearby = regexp.MustCompile(`(?i)^[\s.]*[ap]m\b`)
)

// TimeRange extracts a start/end time pair from text, returning both in
// 24-hour HH:MM form, or two empty strings when no range resolves. A range
// with a single trailing meridiem applies that meridiem to both ends. When
// the end time's meridiem cannot be determined at all the whole extraction
// fails; time is optional on an event, so this never blocks date extraction.
func TimeRange(text string) (start, end string) {
	t := normalize.CollapseSpace(text)

	if m := bothMeridiemRe.FindStringSubmatch(t); m != nil {
		return to24(atoi(m[1]), atoi(m[2]), m[3]), to24(atoi(m[4]), atoi(m[5]), m[6])
	}

	if m := sharedMeridiemRe.FindStringSubmatch(t); m != nil {
		return to24(atoi(m[1]), atoi(m[2]), m[5]), to24(atoi(m[3]), atoi(m[4]), m[5])
	}

	if loc := range24Re.FindStringSubmatchIndex(t); loc != nil {
		// Guard against eating the front of a 12-hour range whose meridiem
		// trails the match, e.g. "6:30-8:30 p.m." with odd punctuation.
		if !meridiemNearby.MatchString(t[loc[1]:]) {
			m := range24Re.FindStringSubmatch(t)
			return fmt.Sprintf("%02d:%s", atoi(m[1]), m[2]), fmt.Sprintf("%02d:%s", atoi(m[3]), m[4])
		}
	}

	return "", ""
}

// Clock converts a single 12-hour clock reading to canonical "HH:MM".
// Adapters whose line grammar captures a lone time use this; ranges go
// through TimeRange.
func Clock(hour, minute int, meridiem string) string {
	return to24(hour, minute, meridiem)
}

// to24 converts a 12-hour clock reading to "HH:MM". Hours outside [1,12]
// are passed through modulo nothing; source listings do not produce them.
func to24(hour, minute int, meridiem string) string {
	switch strings.ToLower(meridiem) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
