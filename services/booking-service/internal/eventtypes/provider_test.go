package eventtypes

import (
	"testing"
	"time"
)

func weekdayEventType() EventType {
	return EventType{
		ID:            "et-1",
		HostID:        "host-1",
		Slug:          "intro-call",
		LengthMinutes: 30,
		Timezone:      "America/New_York",
		Rules: []WeeklyRule{
			{Weekday: 1, StartMinute: 9 * 60, EndMinute: 17 * 60},
			{Weekday: 2, StartMinute: 9 * 60, EndMinute: 17 * 60},
			{Weekday: 3, StartMinute: 9 * 60, EndMinute: 17 * 60},
			{Weekday: 4, StartMinute: 9 * 60, EndMinute: 17 * 60},
			{Weekday: 5, StartMinute: 9 * 60, EndMinute: 17 * 60},
		},
	}
}

func TestWindowsOnWeekday(t *testing.T) {
	// 2026-09-14 is a Monday.
	windows, err := WindowsOn(weekdayEventType(), "2026-09-14")
	if err != nil {
		t.Fatalf("WindowsOn: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("window count = %d, want 1", len(windows))
	}
	// 09:00 New York is 13:00 UTC during EDT.
	wantStart := time.Date(2026, 9, 14, 13, 0, 0, 0, time.UTC)
	if !windows[0].Start.Equal(wantStart) {
		t.Fatalf("window start = %v, want %v", windows[0].Start, wantStart)
	}
	if got := windows[0].End.Sub(windows[0].Start); got != 8*time.Hour {
		t.Fatalf("window length = %v, want 8h", got)
	}
}

func TestWindowsOnWeekend(t *testing.T) {
	// 2026-09-13 is a Sunday with no rule.
	windows, err := WindowsOn(weekdayEventType(), "2026-09-13")
	if err != nil {
		t.Fatalf("WindowsOn: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("expected no windows on Sunday, got %d", len(windows))
	}
}

func TestWindowsOnClosedOverride(t *testing.T) {
	et := weekdayEventType()
	et.Overrides = []DateOverride{{Date: "2026-09-14", Closed: true}}

	windows, err := WindowsOn(et, "2026-09-14")
	if err != nil {
		t.Fatalf("WindowsOn: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("closed override should hide the date, got %d windows", len(windows))
	}
}

func TestWindowsOnOverrideReplacesRules(t *testing.T) {
	et := weekdayEventType()
	et.Overrides = []DateOverride{{Date: "2026-09-14", StartMinute: 12 * 60, EndMinute: 14 * 60}}

	windows, err := WindowsOn(et, "2026-09-14")
	if err != nil {
		t.Fatalf("WindowsOn: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("window count = %d, want 1", len(windows))
	}
	wantStart := time.Date(2026, 9, 14, 16, 0, 0, 0, time.UTC) // noon EDT
	if !windows[0].Start.Equal(wantStart) {
		t.Fatalf("override start = %v, want %v", windows[0].Start, wantStart)
	}
}

func TestWindowsOnDSTTransition(t *testing.T) {
	et := weekdayEventType()
	et.Rules = append(et.Rules, WeeklyRule{Weekday: 0, StartMinute: 9 * 60, EndMinute: 12 * 60})

	// 2026-11-01: US DST fall-back. 09:00 EST = 14:00 UTC (offset -5).
	windows, err := WindowsOn(et, "2026-11-01")
	if err != nil {
		t.Fatalf("WindowsOn: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("window count = %d, want 1", len(windows))
	}
	wantStart := time.Date(2026, 11, 1, 14, 0, 0, 0, time.UTC)
	if !windows[0].Start.Equal(wantStart) {
		t.Fatalf("DST window start = %v, want %v", windows[0].Start, wantStart)
	}
}

func TestWindowsOnBadTimezone(t *testing.T) {
	et := weekdayEventType()
	et.Timezone = "Not/AZone"
	if _, err := WindowsOn(et, "2026-09-14"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
