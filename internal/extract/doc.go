// Package extract recognizes date, time-range, and price expressions in
// loosely structured source text.
//
// Date grammars are tried in strict precedence order, most specific first,
// and the first match wins; no second grammar ever runs on the same text.
// Month-day dates with no year get the year inferred against a reference
// date with a configurable past-horizon rollover. Time-range extraction
// degrades to "no time" rather than guessing an unresolvable meridiem.
package extract
