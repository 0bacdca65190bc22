// Package schedule turns stored show-schedule patterns into next air times
// and human-readable descriptions. Patterns arrive in one of two persisted
// conventions: a restricted 5-field cron subset ("30 23 * * 0,6") or a
// natural form ("06:00:00 on Monday, Wednesday, Friday"). Everything here is
// pure: no I/O, no state, safe for concurrent use.
package schedule

import "fmt"

// Unspecified marks a wildcard hour or minute. A spec whose hour or minute
// is unspecified parses fine but can never produce a next occurrence.
const Unspecified = -1

// RuleKind discriminates the weekday constraint shapes found in persisted
// patterns.
type RuleKind int

const (
	// EveryDay fires every day of the week.
	EveryDay RuleKind = iota
	// SingleDay fires on one weekday.
	SingleDay
	// DayRange fires on an inclusive weekday range. No wraparound: a range
	// never crosses Saturday into Sunday.
	DayRange
	// DayList fires on an enumerated set of weekdays.
	DayList
)

// DayRule is the weekday constraint of a recurrence. Weekday indices follow
// the persisted convention: 0 = Sunday .. 6 = Saturday.
type DayRule struct {
	Kind RuleKind

	// Day is the weekday for SingleDay rules.
	Day int

	// Start and End bound a DayRange rule, inclusive, Start <= End.
	Start int
	End   int

	// Days holds the distinct weekdays of a DayList rule, in input order.
	Days []int

	// Labels carries the display names from a natural-form day list, in
	// input order. Names that did not map to a weekday are kept verbatim
	// (title-cased) so the formatter can still show them; they contribute
	// nothing to Days. Nil for cron-form lists.
	Labels []string
}

// Spec is a parsed, validated recurrence rule. It is a value: construct it
// with Parse and never mutate it.
type Spec struct {
	// Hour and Minute are the local fire time, or Unspecified for a
	// wildcard clock field.
	Hour   int
	Minute int

	// Days constrains which weekdays qualify.
	Days DayRule

	// Raw is the original pattern string, kept for diagnostics and as the
	// fallback display value.
	Raw string
}

// Resolvable reports whether the spec can produce a concrete next
// occurrence. Wildcard clock fields have no single "next" instant.
func (s Spec) Resolvable() bool {
	return s.Hour != Unspecified && s.Minute != Unspecified
}

// ParseError reports a pattern that matched neither recognized grammar or
// carried an out-of-range or malformed field. It always retains the
// offending input.
type ParseError struct {
	Pattern string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid schedule pattern %q: %s", e.Pattern, e.Reason)
}
