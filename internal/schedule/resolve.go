package schedule

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultTimezone is the zone used when a caller supplies none. Persisted
// schedules predate per-show timezones and were all written against US
// Eastern time.
const DefaultTimezone = "America/New_York"

// searchHorizonDays bounds the forward scan for range and list rules. Two
// full weeks always contain a matching day for any non-empty weekday set,
// even when today's time has already elapsed, so a miss within the horizon
// means the rule can never fire.
const searchHorizonDays = 14

var defaultLocation = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.Local
	}
	return loc
})

// Next computes the first instant strictly after now at which the spec
// fires, evaluated in loc (nil means DefaultTimezone). The second return is
// false when no occurrence exists: wildcard clock fields, or a weekday
// constraint with no match inside the search horizon. A candidate exactly
// equal to now counts as elapsed.
func Next(spec Spec, now time.Time, loc *time.Location) (time.Time, bool) {
	if !spec.Resolvable() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = defaultLocation()
	}
	now = now.In(loc)

	switch spec.Days.Kind {
	case EveryDay:
		candidate := timeOn(now, spec, loc)
		if candidate.After(now) {
			return candidate, true
		}
		return timeOn(now.AddDate(0, 0, 1), spec, loc), true

	case SingleDay:
		today := int(now.Weekday())
		if today == spec.Days.Day {
			if candidate := timeOn(now, spec, loc); candidate.After(now) {
				return candidate, true
			}
		}
		ahead := (spec.Days.Day - today + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return timeOn(now.AddDate(0, 0, ahead), spec, loc), true

	case DayRange, DayList:
		for i := 0; i < searchHorizonDays; i++ {
			day := now.AddDate(0, 0, i)
			if !spec.Days.matches(day.Weekday()) {
				continue
			}
			if candidate := timeOn(day, spec, loc); candidate.After(now) {
				return candidate, true
			}
		}
		return time.Time{}, false
	}

	return time.Time{}, false
}

func (r DayRule) matches(weekday time.Weekday) bool {
	day := int(weekday)
	switch r.Kind {
	case EveryDay:
		return true
	case SingleDay:
		return day == r.Day
	case DayRange:
		return day >= r.Start && day <= r.End
	case DayList:
		for _, d := range r.Days {
			if d == day {
				return true
			}
		}
	}
	return false
}

// timeOn builds the fire instant on the calendar day of ref. time.Date
// normalizes clock times erased by a DST spring-forward to the adjusted
// instant, which is the behavior we want for a wall-clock schedule.
func timeOn(ref time.Time, spec Spec, loc *time.Location) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), spec.Hour, spec.Minute, 0, 0, loc)
}

// cronSchedule adapts a Spec to the cron runner's Schedule interface.
type cronSchedule struct {
	spec Spec
	loc  *time.Location
}

// Cron wraps spec as a cron.Schedule so the engine can drive a robfig cron
// runner directly. Next returns the zero time when the spec has no further
// occurrence, which parks the entry.
func Cron(spec Spec, loc *time.Location) cron.Schedule {
	if loc == nil {
		loc = defaultLocation()
	}
	return cronSchedule{spec: spec, loc: loc}
}

func (c cronSchedule) Next(t time.Time) time.Time {
	next, ok := Next(c.spec, t, c.loc)
	if !ok {
		return time.Time{}
	}
	return next
}
