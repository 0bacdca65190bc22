package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"aircheck/internal/schedule"

	"github.com/robfig/cron/v3"
)

// TriggerFunc is invoked when a show reaches its air time. The actual
// recording pipeline lives outside this process; the default trigger logs
// and notifies so an external recorder can be attached later.
type TriggerFunc func(ctx context.Context, show Show, airsAt time.Time)

// Scheduler arms a cron runner with one entry per show, each driven by the
// recurrence engine rather than a stock cron expression.
type Scheduler struct {
	logger   *slog.Logger
	location *time.Location
	trigger  TriggerFunc

	cron    *cron.Cron
	entryMu sync.RWMutex
	entries map[string]cron.EntryID

	ctx context.Context
}

// NewScheduler constructs a scheduler. A nil location means the engine
// default; trigger must not be nil.
func NewScheduler(logger *slog.Logger, location *time.Location, trigger TriggerFunc) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		logger:   logger,
		location: location,
		trigger:  trigger,
		cron:     cron.New(cron.WithLocation(location)),
		entries:  make(map[string]cron.EntryID),
	}
}

// Start begins the scheduling loop. ctx is passed to trigger invocations.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
}

// Stop stops the scheduler and returns a context that completes when
// in-flight trigger dispatches finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Sync replaces the armed entries with the given show list. Shows with
// unparseable patterns are logged and skipped; shows with no next
// occurrence are armed anyway and simply never fire.
func (s *Scheduler) Sync(shows []Show) {
	s.entryMu.Lock()
	defer s.entryMu.Unlock()

	for name, entryID := range s.entries {
		s.cron.Remove(entryID)
		delete(s.entries, name)
	}

	for _, show := range shows {
		spec, err := schedule.Parse(show.Pattern)
		if err != nil {
			s.logger.Warn("skipping show with unparseable pattern",
				"show", show.Name, "pattern", show.Pattern, "err", err)
			continue
		}
		loc := s.location
		if show.Timezone != "" {
			if l, err := time.LoadLocation(show.Timezone); err == nil {
				loc = l
			} else {
				s.logger.Warn("unknown show timezone, using default",
					"show", show.Name, "tz", show.Timezone)
			}
		}
		entryID := s.cron.Schedule(schedule.Cron(spec, loc), s.job(show))
		s.entries[show.Name] = entryID
		s.logger.Info("armed show", "show", show.Name,
			"schedule", schedule.Describe(spec))
	}
}

// Armed reports whether a show currently has a scheduler entry.
func (s *Scheduler) Armed(name string) bool {
	s.entryMu.RLock()
	defer s.entryMu.RUnlock()
	_, ok := s.entries[name]
	return ok
}

func (s *Scheduler) job(show Show) cron.Job {
	return cron.FuncJob(func() {
		s.trigger(s.ctxOrBackground(), show, time.Now().In(s.location))
	})
}

func (s *Scheduler) ctxOrBackground() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}
