package core

import (
	"log/slog"
	"sort"
	"time"

	"aircheck/internal/schedule"
)

// Planner computes the upcoming lineup for a set of shows. It holds no
// mutable state; the location is the fallback zone for shows without one.
type Planner struct {
	logger   *slog.Logger
	location *time.Location
}

// NewPlanner constructs a planner. A nil location falls back to the
// engine's default zone at resolution time.
func NewPlanner(logger *slog.Logger, location *time.Location) *Planner {
	return &Planner{logger: logger, location: location}
}

// Lineup resolves every show against now and returns airings sorted by air
// time. Shows that cannot fire (unparseable pattern, wildcard clock, no day
// match) sort last with a nil AirsAt; their description falls back to the
// raw pattern so the caller always has something to display.
func (p *Planner) Lineup(shows []Show, now time.Time) []Airing {
	airings := make([]Airing, 0, len(shows))
	for _, show := range shows {
		airings = append(airings, p.resolve(show, now))
	}
	sort.SliceStable(airings, func(i, j int) bool {
		a, b := airings[i].AirsAt, airings[j].AirsAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return airings
}

func (p *Planner) resolve(show Show, now time.Time) Airing {
	airing := Airing{
		Show:        show.Name,
		Pattern:     show.Pattern,
		Description: schedule.DescribePattern(show.Pattern),
	}

	spec, err := schedule.Parse(show.Pattern)
	if err != nil {
		p.logger.Warn("unparseable show pattern", "show", show.Name, "pattern", show.Pattern)
		return airing
	}

	next, ok := schedule.Next(spec, now, p.showLocation(show))
	if !ok {
		p.logger.Debug("show has no next occurrence", "show", show.Name, "pattern", show.Pattern)
		return airing
	}
	airing.AirsAt = &next
	airing.When = schedule.RelativeLabel(next, now)
	return airing
}

func (p *Planner) showLocation(show Show) *time.Location {
	if show.Timezone == "" {
		return p.location
	}
	loc, err := time.LoadLocation(show.Timezone)
	if err != nil {
		p.logger.Warn("unknown show timezone, using default", "show", show.Name, "tz", show.Timezone)
		return p.location
	}
	return loc
}
