package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// naturalRe matches the natural persisted form "HH:MM[:SS] on Day, Day".
// Seconds are parsed and discarded; shows never fire at sub-minute offsets.
var naturalRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?\s+on\s+(.+)$`)

var weekdayIndex = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Parse turns a pattern string into a Spec. It recognizes the natural form
// and the 5-field cron subset; anything else is a *ParseError carrying the
// raw input. Callers that only need display text should use DescribePattern,
// which tolerates unparseable input.
func Parse(pattern string) (Spec, error) {
	trimmed := strings.TrimSpace(pattern)
	if trimmed == "" {
		return Spec{}, &ParseError{Pattern: pattern, Reason: "empty pattern"}
	}

	if m := naturalRe.FindStringSubmatch(trimmed); m != nil {
		return parseNatural(pattern, m)
	}

	if fields := strings.Fields(trimmed); len(fields) == 5 {
		return parseCronSubset(pattern, fields)
	}

	return Spec{}, &ParseError{Pattern: pattern, Reason: "not a recognized schedule pattern"}
}

func parseNatural(raw string, m []string) (Spec, error) {
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return Spec{}, &ParseError{Pattern: raw, Reason: "hour out of range"}
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return Spec{}, &ParseError{Pattern: raw, Reason: "minute out of range"}
	}

	var (
		days   []int
		labels []string
		seen   = map[string]bool{}
	)
	for _, part := range strings.Split(m[4], ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if idx, ok := weekdayIndex[key]; ok {
			days = append(days, idx)
			labels = append(labels, weekdayNames[idx])
		} else {
			// Legacy and hand-edited rows contain day names the engine
			// does not know. They stay visible in descriptions but never
			// match a calendar day.
			labels = append(labels, titleCase(name))
		}
	}
	if len(labels) == 0 {
		return Spec{}, &ParseError{Pattern: raw, Reason: "no days listed"}
	}

	return Spec{
		Hour:   hour,
		Minute: minute,
		Days:   DayRule{Kind: DayList, Days: days, Labels: labels},
		Raw:    raw,
	}, nil
}

func parseCronSubset(raw string, fields []string) (Spec, error) {
	minute, err := parseClockField(raw, fields[0], 59)
	if err != nil {
		return Spec{}, err
	}
	hour, err := parseClockField(raw, fields[1], 23)
	if err != nil {
		return Spec{}, err
	}

	// Day-of-month and month are accepted for compatibility with persisted
	// rows but never interpreted: the engine only models daily and weekly
	// cadences.
	for _, field := range fields[2:4] {
		if err := checkFieldSyntax(raw, field); err != nil {
			return Spec{}, err
		}
	}

	days, err := parseDayOfWeek(raw, fields[4])
	if err != nil {
		return Spec{}, err
	}

	return Spec{Hour: hour, Minute: minute, Days: days, Raw: raw}, nil
}

// parseClockField handles the minute and hour fields. A literal integer must
// be in range; a wildcard (or a range/list, which has no single clock value
// in this model) marks the field unspecified rather than failing.
func parseClockField(raw, field string, max int) (int, error) {
	if field == "*" || strings.ContainsAny(field, "-,") {
		if err := checkFieldSyntax(raw, field); err != nil {
			return 0, err
		}
		return Unspecified, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, &ParseError{Pattern: raw, Reason: "malformed numeric field " + strconv.Quote(field)}
	}
	if n < 0 || n > max {
		return 0, &ParseError{Pattern: raw, Reason: "value out of range in field " + strconv.Quote(field)}
	}
	return n, nil
}

// checkFieldSyntax validates that a field is a well-formed cron atom
// (integer, wildcard, N-M range, or comma list of integers) without
// interpreting it.
func checkFieldSyntax(raw, field string) error {
	if field == "*" {
		return nil
	}
	if start, end, ok := strings.Cut(field, "-"); ok {
		if !isUint(start) || !isUint(end) {
			return &ParseError{Pattern: raw, Reason: "malformed range " + strconv.Quote(field)}
		}
		return nil
	}
	for _, part := range strings.Split(field, ",") {
		if !isUint(part) {
			return &ParseError{Pattern: raw, Reason: "malformed numeric field " + strconv.Quote(field)}
		}
	}
	return nil
}

// parseDayOfWeek sub-parses the day-of-week field. Priority: range, list,
// wildcard, single value.
func parseDayOfWeek(raw, field string) (DayRule, error) {
	if start, end, ok := strings.Cut(field, "-"); ok {
		from, err := parseWeekdayValue(raw, start)
		if err != nil {
			return DayRule{}, err
		}
		to, err := parseWeekdayValue(raw, end)
		if err != nil {
			return DayRule{}, err
		}
		if from > to {
			return DayRule{}, &ParseError{Pattern: raw, Reason: "reversed day range " + strconv.Quote(field)}
		}
		return DayRule{Kind: DayRange, Start: from, End: to}, nil
	}

	if strings.Contains(field, ",") {
		var days []int
		seen := map[int]bool{}
		for _, part := range strings.Split(field, ",") {
			day, err := parseWeekdayValue(raw, part)
			if err != nil {
				return DayRule{}, err
			}
			if seen[day] {
				continue
			}
			seen[day] = true
			days = append(days, day)
		}
		return DayRule{Kind: DayList, Days: days}, nil
	}

	if field == "*" {
		return DayRule{Kind: EveryDay}, nil
	}

	day, err := parseWeekdayValue(raw, field)
	if err != nil {
		return DayRule{}, err
	}
	return DayRule{Kind: SingleDay, Day: day}, nil
}

func parseWeekdayValue(raw, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Pattern: raw, Reason: "malformed day-of-week value " + strconv.Quote(token)}
	}
	if n < 0 || n > 6 {
		return 0, &ParseError{Pattern: raw, Reason: "day-of-week value out of range: " + token}
	}
	return n, nil
}

func isUint(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func titleCase(s string) string {
	lower := strings.ToLower(s)
	runes := []rune(lower)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
