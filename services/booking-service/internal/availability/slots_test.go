package availability

import (
	"testing"
	"time"
)

func day(t *testing.T, loc *time.Location, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 9, 14, hour, min, 0, 0, loc)
}

func starts(slots []Slot) []time.Time {
	out := make([]time.Time, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

func TestEmptyDayFirstSlotIsWindowStart(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 17, 0)
	opts := Options{
		Duration: 30 * time.Minute,
		Now:      day(t, time.UTC, 0, 0),
	}

	slots := AvailableSlots(windowStart, windowEnd, opts, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots on an empty day")
	}
	if !slots[0].Start.Equal(windowStart) {
		t.Fatalf("first slot = %v, want %v", slots[0].Start, windowStart)
	}
	if len(slots) != 16 {
		t.Fatalf("slot count = %d, want 16", len(slots))
	}
}

func TestBookedSlotMovesFirstSlotForward(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 17, 0)
	opts := Options{
		Duration: 30 * time.Minute,
		Now:      day(t, time.UTC, 0, 0),
	}
	busy := []Busy{{Start: day(t, time.UTC, 9, 0), End: day(t, time.UTC, 9, 30)}}

	slots := AvailableSlots(windowStart, windowEnd, opts, busy)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	want := day(t, time.UTC, 9, 30)
	if !slots[0].Start.Equal(want) {
		t.Fatalf("first slot = %v, want %v", slots[0].Start, want)
	}
}

func TestAfterBufferPushesPastNextStep(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 17, 0)
	opts := Options{
		Duration:    30 * time.Minute,
		AfterBuffer: 15 * time.Minute,
		Now:         day(t, time.UTC, 0, 0),
	}
	// 9:00-9:30 booked; the after buffer keeps the line blocked until 9:45,
	// so 9:30 collides and 10:00 is the first clear step boundary.
	busy := []Busy{{Start: day(t, time.UTC, 9, 0), End: day(t, time.UTC, 9, 30)}}

	slots := AvailableSlots(windowStart, windowEnd, opts, busy)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	want := day(t, time.UTC, 10, 0)
	if !slots[0].Start.Equal(want) {
		t.Fatalf("first slot = %v, want %v (got all %v)", slots[0].Start, want, starts(slots))
	}
}

func TestBeforeBufferBlocksPrecedingSlot(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 12, 0)
	opts := Options{
		Duration:     30 * time.Minute,
		BeforeBuffer: 30 * time.Minute,
		Now:          day(t, time.UTC, 0, 0),
	}
	busy := []Busy{{Start: day(t, time.UTC, 10, 0), End: day(t, time.UTC, 10, 30)}}

	slots := AvailableSlots(windowStart, windowEnd, opts, busy)
	for _, s := range slots {
		if s.Start.Equal(day(t, time.UTC, 9, 30)) {
			t.Fatal("9:30 should be blocked by the 10:00 booking's before buffer")
		}
	}
	if !slots[0].Start.Equal(day(t, time.UTC, 9, 0)) {
		t.Fatalf("first slot = %v, want 09:00", slots[0].Start)
	}
}

func TestMinimumNoticeSkipsNearSlots(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 17, 0)
	opts := Options{
		Duration: 30 * time.Minute,
		Notice:   2 * time.Hour,
		Now:      day(t, time.UTC, 9, 10),
	}

	slots := AvailableSlots(windowStart, windowEnd, opts, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	// now + notice = 11:10; first step boundary at or after that is 11:30.
	want := day(t, time.UTC, 11, 30)
	if !slots[0].Start.Equal(want) {
		t.Fatalf("first slot = %v, want %v", slots[0].Start, want)
	}
}

func TestSeatedSlotStaysOfferedUntilCapacity(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 11, 0)
	opts := Options{
		Duration:     30 * time.Minute,
		SeatsPerSlot: 3,
		Now:          day(t, time.UTC, 0, 0),
	}
	busy := []Busy{{
		Start:       day(t, time.UTC, 9, 0),
		End:         day(t, time.UTC, 9, 30),
		SeatsTotal:  3,
		SeatsBooked: 1,
	}}

	slots := AvailableSlots(windowStart, windowEnd, opts, busy)
	if len(slots) == 0 || !slots[0].Start.Equal(day(t, time.UTC, 9, 0)) {
		t.Fatalf("9:00 should still be offered with seats left, got %v", starts(slots))
	}
	if slots[0].SeatsRemaining != 2 {
		t.Fatalf("seats remaining = %d, want 2", slots[0].SeatsRemaining)
	}
	// Untouched slots report full capacity.
	if slots[1].SeatsRemaining != 3 {
		t.Fatalf("untouched slot seats = %d, want 3", slots[1].SeatsRemaining)
	}
}

func TestSeatedSlotDisappearsAtCapacity(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 11, 0)
	opts := Options{
		Duration:     30 * time.Minute,
		SeatsPerSlot: 2,
		Now:          day(t, time.UTC, 0, 0),
	}
	busy := []Busy{{
		Start:       day(t, time.UTC, 9, 0),
		End:         day(t, time.UTC, 9, 30),
		SeatsTotal:  2,
		SeatsBooked: 2,
	}}

	slots := AvailableSlots(windowStart, windowEnd, opts, busy)
	if len(slots) == 0 {
		t.Fatal("other slots should remain")
	}
	if slots[0].Start.Equal(day(t, time.UTC, 9, 0)) {
		t.Fatal("full seated slot should not be offered")
	}
	if !slots[0].Start.Equal(day(t, time.UTC, 9, 30)) {
		t.Fatalf("first slot = %v, want 09:30", slots[0].Start)
	}
}

func TestMisalignedOverlapBlocksSeatedSlot(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 11, 0)
	opts := Options{
		Duration:     time.Hour,
		Step:         30 * time.Minute,
		SeatsPerSlot: 5,
		Now:          day(t, time.UTC, 0, 0),
	}
	// Seated booking at 9:00; the 9:30 candidate overlaps it without sharing
	// its start, so joining is not possible there.
	busy := []Busy{{
		Start:       day(t, time.UTC, 9, 0),
		End:         day(t, time.UTC, 10, 0),
		SeatsTotal:  5,
		SeatsBooked: 1,
	}}

	slots := AvailableSlots(windowStart, windowEnd, opts, busy)
	for _, s := range slots {
		if s.Start.Equal(day(t, time.UTC, 9, 30)) {
			t.Fatal("9:30 overlaps the seated booking without alignment and must be blocked")
		}
	}
}

func TestFirstPerDayKeepsOneSlotPerDisplayDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	// Slots spanning a UTC midnight: 23:30 and 00:30 UTC are the same day in
	// New York but different days in UTC. The Sep 16 slot is its own day in
	// both zones.
	slots := []Slot{
		{Start: time.Date(2026, 9, 14, 23, 30, 0, 0, time.UTC), SeatsRemaining: 1},
		{Start: time.Date(2026, 9, 15, 0, 30, 0, 0, time.UTC), SeatsRemaining: 1},
		{Start: time.Date(2026, 9, 16, 14, 0, 0, 0, time.UTC), SeatsRemaining: 1},
	}

	gotNY := FirstPerDay(slots, ny)
	if len(gotNY) != 2 {
		t.Fatalf("NY days = %d, want 2", len(gotNY))
	}
	gotUTC := FirstPerDay(slots, time.UTC)
	if len(gotUTC) != 3 {
		t.Fatalf("UTC days = %d, want 3", len(gotUTC))
	}
	if !gotNY[0].Start.Equal(slots[0].Start) {
		t.Fatalf("first NY slot = %v, want %v", gotNY[0].Start, slots[0].Start)
	}
	if !gotUTC[1].Start.Equal(slots[1].Start) {
		t.Fatalf("second UTC slot = %v, want %v", gotUTC[1].Start, slots[1].Start)
	}
}

func TestDisplayTimezoneDoesNotChangeInstants(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 12, 0)
	opts := Options{Duration: time.Hour, Now: day(t, time.UTC, 0, 0)}

	slots := AvailableSlots(windowStart, windowEnd, opts, nil)
	if len(slots) != 3 {
		t.Fatalf("slot count = %d, want 3", len(slots))
	}

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	for _, s := range slots {
		rendered := s.Start.In(ny)
		if !rendered.Equal(s.Start) {
			t.Fatalf("rendering in %v changed the instant: %v vs %v", ny, rendered, s.Start)
		}
	}
	if got := slots[0].Start.In(ny).Format("15:04"); got != "05:00" {
		t.Fatalf("09:00 UTC renders as %s in New York, want 05:00", got)
	}
}

func TestWindowShorterThanDurationYieldsNothing(t *testing.T) {
	windowStart := day(t, time.UTC, 9, 0)
	windowEnd := day(t, time.UTC, 9, 20)
	opts := Options{Duration: 30 * time.Minute, Now: day(t, time.UTC, 0, 0)}

	if slots := AvailableSlots(windowStart, windowEnd, opts, nil); slots != nil {
		t.Fatalf("expected no slots, got %v", starts(slots))
	}
}
