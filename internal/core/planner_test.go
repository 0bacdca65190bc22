package core

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlannerLineup(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	planner := NewPlanner(testLogger(), loc)

	shows := []Show{
		{Name: "Evening Drive", Pattern: "0 18 * * 1-5"},
		{Name: "Morning Jazz", Pattern: "06:00:00 on Monday, Wednesday, Friday"},
		{Name: "Mystery Hour", Pattern: "whenever the host feels like it"},
		{Name: "Open Line", Pattern: "* * * * 1"},
	}

	// Tuesday 2026-01-06 09:00 Eastern.
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, loc)
	lineup := planner.Lineup(shows, now)
	if len(lineup) != 4 {
		t.Fatalf("expected 4 airings, got %d", len(lineup))
	}

	// Evening Drive airs today at 18:00, before Morning Jazz tomorrow.
	if lineup[0].Show != "Evening Drive" {
		t.Fatalf("expected Evening Drive first, got %s", lineup[0].Show)
	}
	want := time.Date(2026, 1, 6, 18, 0, 0, 0, loc)
	if lineup[0].AirsAt == nil || !lineup[0].AirsAt.Equal(want) {
		t.Fatalf("expected Evening Drive at %v, got %v", want, lineup[0].AirsAt)
	}
	if lineup[0].When != "Today" {
		t.Fatalf("expected Today, got %q", lineup[0].When)
	}

	if lineup[1].Show != "Morning Jazz" {
		t.Fatalf("expected Morning Jazz second, got %s", lineup[1].Show)
	}
	if lineup[1].When != "Tomorrow" {
		t.Fatalf("expected Tomorrow, got %q", lineup[1].When)
	}
	if lineup[1].Description != "Mondays, Wednesdays, and Fridays at 6:00 AM" {
		t.Fatalf("unexpected description %q", lineup[1].Description)
	}

	// Unresolvable shows sort last with nil air times.
	for _, airing := range lineup[2:] {
		if airing.AirsAt != nil {
			t.Fatalf("expected nil AirsAt for %s", airing.Show)
		}
		if airing.When != "" {
			t.Fatalf("expected empty When for %s", airing.Show)
		}
	}
}

func TestPlannerPassThroughDescription(t *testing.T) {
	planner := NewPlanner(testLogger(), nil)
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)

	lineup := planner.Lineup([]Show{{Name: "Mystery Hour", Pattern: "not a schedule"}}, now)
	if lineup[0].Description != "not a schedule" {
		t.Fatalf("expected raw pattern echoed, got %q", lineup[0].Description)
	}

	lineup = planner.Lineup([]Show{{Name: "Open Line", Pattern: "* * * * 1"}}, now)
	if lineup[0].Description != "Complex schedule" {
		t.Fatalf("expected Complex schedule, got %q", lineup[0].Description)
	}
}

func TestPlannerPerShowTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	planner := NewPlanner(testLogger(), ny)

	shows := []Show{
		{Name: "Coast Show", Pattern: "0 6 * * *", Timezone: "America/Los_Angeles"},
	}
	now := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
	lineup := planner.Lineup(shows, now)
	if lineup[0].AirsAt == nil {
		t.Fatal("expected an air time")
	}
	if got := lineup[0].AirsAt.Format("15:04"); got != "06:00" {
		t.Fatalf("expected 06:00 Pacific wall clock, got %s", got)
	}
	if got := lineup[0].AirsAt.Location().String(); got != "America/Los_Angeles" {
		t.Fatalf("expected Pacific zone, got %s", got)
	}
}
