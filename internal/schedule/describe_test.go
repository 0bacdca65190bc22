package schedule

import (
	"testing"
	"time"
)

func TestDescribePattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"06:00:00 on Monday, Wednesday, Friday", "Mondays, Wednesdays, and Fridays at 6:00 AM"},
		{"0 18 * * 1-5", "Weekdays at 6:00 PM"},
		{"30 23 * * 0,6", "Saturdays and Sundays at 11:30 PM"},
		{"0 6 * * *", "Every day at 6:00 AM"},
		{"0 18 * * 0-6", "Every day at 6:00 PM"},
		{"0 18 * * 0,1,2,3,4,5,6", "Every day at 6:00 PM"},
		{"15 7 * * 2", "Tuesdays at 7:15 AM"},
		{"0 18 * * 2-4", "Tuesdays, Wednesdays, and Thursdays at 6:00 PM"},
		{"23:30 on Saturday", "Saturdays at 11:30 PM"},
		{"06:00:00 on Monday, Blursday", "Mondays and Blursday at 6:00 AM"},

		// 12-hour clock boundaries.
		{"0 0 * * *", "Every day at 12:00 AM"},
		{"30 12 * * *", "Every day at 12:30 PM"},

		// Parsed but unresolvable.
		{"* * * * 1", "Complex schedule"},
		{"* 6 * * 1-5", "Complex schedule"},

		// Unparseable input passes through untouched.
		{"not a schedule", "not a schedule"},
		{"whenever the host feels like it", "whenever the host feels like it"},
	}
	for _, tt := range tests {
		if got := DescribePattern(tt.pattern); got != tt.want {
			t.Errorf("DescribePattern(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestDescribeIsDeterministic(t *testing.T) {
	const pattern = "06:00:00 on Monday, Wednesday, Friday"
	spec, err := Parse(pattern)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first := Describe(spec)
	second := Describe(spec)
	if first != second {
		t.Fatalf("describe not deterministic: %q vs %q", first, second)
	}
	if again := DescribePattern(pattern); again != first {
		t.Fatalf("parse-then-describe drifted: %q vs %q", again, first)
	}
}

func TestDescribeCronListOrdersMondayFirst(t *testing.T) {
	// Enumerated out of order in the expression, displayed Monday-first.
	if got := DescribePattern("0 6 * * 5,1,3"); got != "Mondays, Wednesdays, and Fridays at 6:00 AM" {
		t.Fatalf("unexpected ordering: %q", got)
	}
}

func TestRelativeLabel(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, loc) // Tuesday

	tests := []struct {
		target time.Time
		want   string
	}{
		{time.Date(2026, 1, 6, 23, 0, 0, 0, loc), "Today"},
		{time.Date(2026, 1, 7, 6, 0, 0, 0, loc), "Tomorrow"},
		{time.Date(2026, 1, 9, 6, 0, 0, 0, loc), "in 3 days"},
		{time.Date(2026, 1, 13, 6, 0, 0, 0, loc), "in 1 week"},
		{time.Date(2026, 1, 21, 6, 0, 0, 0, loc), "in 2 weeks"},
	}
	for _, tt := range tests {
		if got := RelativeLabel(tt.target, now); got != tt.want {
			t.Errorf("RelativeLabel(%v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestRelativeLabelAcrossZones(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 23:00 Tuesday in New York is already Wednesday in UTC; the label is
	// computed in the target's zone.
	now := time.Date(2026, 1, 7, 3, 0, 0, 0, time.UTC)
	target := time.Date(2026, 1, 7, 6, 0, 0, 0, ny)
	if got := RelativeLabel(target, now); got != "Tomorrow" {
		t.Fatalf("expected Tomorrow, got %q", got)
	}
}
