package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// complexFallback is shown for rules the engine can parse but cannot render
// as a single weekly fire time, such as wildcard-hour patterns.
const complexFallback = "Complex schedule"

// DescribePattern renders a raw pattern string for display. Unparseable
// input is echoed back unchanged: legacy and hand-edited rows must always
// have something presentable, so formatting never fails.
func DescribePattern(pattern string) string {
	spec, err := Parse(pattern)
	if err != nil {
		return pattern
	}
	return Describe(spec)
}

// Describe renders a parsed spec as natural language, for example
// "Weekdays at 6:00 AM" or "Mondays and Fridays at 11:30 PM".
func Describe(spec Spec) string {
	if !spec.Resolvable() {
		return complexFallback
	}
	return spec.Days.phrase() + " at " + clock12(spec.Hour, spec.Minute)
}

func (r DayRule) phrase() string {
	switch r.Kind {
	case EveryDay:
		return "Every day"

	case SingleDay:
		return weekdayNames[r.Day] + "s"

	case DayRange:
		if r.Start == 1 && r.End == 5 {
			return "Weekdays"
		}
		if r.Start == 0 && r.End == 6 {
			return "Every day"
		}
		names := make([]string, 0, r.End-r.Start+1)
		for d := r.Start; d <= r.End; d++ {
			names = append(names, weekdayNames[d]+"s")
		}
		return joinDays(names)

	case DayList:
		if r.Labels != nil {
			// Natural-form lists keep their input order and verbatim
			// labels; only names that mapped to a real weekday pluralize.
			if len(r.Days) == 7 && len(r.Labels) == 7 {
				return "Every day"
			}
			names := make([]string, len(r.Labels))
			for i, label := range r.Labels {
				if _, ok := weekdayIndex[strings.ToLower(label)]; ok {
					names[i] = label + "s"
				} else {
					names[i] = label
				}
			}
			return joinDays(names)
		}
		if len(r.Days) == 7 {
			return "Every day"
		}
		// Cron-form lists display in Monday-first week order regardless of
		// how the expression enumerated them.
		ordered := append([]int(nil), r.Days...)
		sort.Slice(ordered, func(i, j int) bool {
			return (ordered[i]+6)%7 < (ordered[j]+6)%7
		})
		names := make([]string, len(ordered))
		for i, d := range ordered {
			names[i] = weekdayNames[d] + "s"
		}
		return joinDays(names)
	}
	return complexFallback
}

// joinDays joins day names: one stands alone, two get "and", three or more
// get commas with an Oxford comma before the final item.
func joinDays(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// clock12 renders a 24-hour time on the 12-hour clock. Hour 0 is 12:MM AM,
// hour 12 is 12:MM PM.
func clock12(hour, minute int) string {
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, meridiem)
}

// RelativeLabel says how far away target is from now in calendar days, in
// target's zone: "Today", "Tomorrow", "in N days" inside a week, otherwise
// whole weeks.
func RelativeLabel(target, now time.Time) string {
	days := daysBetween(now.In(target.Location()), target)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days < 7:
		return fmt.Sprintf("in %d days", days)
	default:
		weeks := days / 7
		if weeks == 1 {
			return "in 1 week"
		}
		return fmt.Sprintf("in %d weeks", weeks)
	}
}

// daysBetween counts calendar-day boundaries between two instants in the
// same zone. Rounding absorbs the 23- and 25-hour days around DST shifts.
func daysBetween(from, to time.Time) int {
	fromMidnight := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toMidnight := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(toMidnight.Sub(fromMidnight).Round(24*time.Hour) / (24 * time.Hour))
}
