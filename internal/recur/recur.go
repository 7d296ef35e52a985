// Package recur expands natural-language recurrence rules ("Every Monday,
// 8-10pm", "2nd Wednesday", "Third Thursday of every month") into concrete
// calendar dates within a bounded window.
//
// Rules compile to RFC 5545 recurrence rules and are expanded with
// github.com/teambition/rrule-go, which also handles months where an nth
// weekday does not exist (a "5th Friday" month is silently skipped).
// "Every other <weekday>" is inherently ambiguous without an anchor date and
// always expands to nothing; callers surface this as "rule not expandable"
// rather than guessing a phase.
package recur

import (
	"regexp"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/obstacleb/artlinks-data/internal/normalize"
)

// Rule is a parsed recurrence rule.
type Rule struct {
	Weekday time.Weekday

	// Ordinal is the nth-occurrence-in-month, or 0 for every week.
	Ordinal int

	// EveryOther marks an "every other <weekday>" rule, which has no anchor
	// date and therefore no defined phase.
	EveryOther bool
}

var (
	weekdayRe    = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	ordinalRe    = regexp.MustCompile(`\b(1st|first|2nd|second|3rd|third|4th|fourth|5th|fifth)\b`)
	everyRe      = regexp.MustCompile(`\bevery\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	everyOtherRe = regexp.MustCompile(`\bevery\s+other\b`)
)

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "tuesday": time.Tuesday, "wednesday": time.Wednesday,
	"thursday": time.Thursday, "friday": time.Friday, "saturday": time.Saturday,
	"sunday": time.Sunday,
}

var ordinals = map[string]int{
	"1st": 1, "first": 1, "2nd": 2, "second": 2, "3rd": 3, "third": 3,
	"4th": 4, "fourth": 4, "5th": 5, "fifth": 5,
}

// Parse reads a natural-language recurrence rule. Returns ok=false when the
// text contains no recognizable rule.
func Parse(text string) (Rule, bool) {
	t := normalize.Fold(text)

	if everyOtherRe.MatchString(t) {
		r := Rule{EveryOther: true}
		if m := weekdayRe.FindStringSubmatch(t); m != nil {
			r.Weekday = weekdays[m[1]]
		}
		return r, true
	}

	if om := ordinalRe.FindStringSubmatch(t); om != nil {
		if wm := weekdayRe.FindStringSubmatch(t); wm != nil {
			return Rule{Weekday: weekdays[wm[1]], Ordinal: ordinals[om[1]]}, true
		}
		return Rule{}, false
	}

	if m := everyRe.FindStringSubmatch(t); m != nil {
		return Rule{Weekday: weekdays[m[1]]}, true
	}

	return Rule{}, false
}

// Expand produces the dates the rule denotes within [start, endExclusive),
// at midnight UTC, in ascending order. An EveryOther rule expands to nil.
func (r Rule) Expand(start, endExclusive time.Time) []time.Time {
	if r.EveryOther || !endExclusive.After(start) {
		return nil
	}

	opt := rrule.ROption{
		Dtstart: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
	}
	wd := rruleWeekday(r.Weekday)
	if r.Ordinal > 0 {
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(r.Ordinal)}
	} else {
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{wd}
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil
	}

	var out []time.Time
	for _, t := range rule.Between(opt.Dtstart, endExclusive, true) {
		if !t.Before(endExclusive) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func rruleWeekday(wd time.Weekday) rrule.Weekday {
	switch wd {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}
