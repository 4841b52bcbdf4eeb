package availability

import "time"

// Busy is an existing confirmed booking projected onto the timeline.
// SeatsTotal > 0 marks a seated booking that further attendees may join
// while SeatsBooked < SeatsTotal.
type Busy struct {
	Start       time.Time
	End         time.Time
	SeatsTotal  int
	SeatsBooked int
}

// Slot is an offered start time. SeatsRemaining is how many attendees can
// still book this start; for unseated event types it is always 1.
type Slot struct {
	Start          time.Time
	SeatsRemaining int
}

// Options carries the event type settings that shape slot generation.
type Options struct {
	Duration     time.Duration
	Step         time.Duration // defaults to Duration when <= 0
	BeforeBuffer time.Duration
	AfterBuffer  time.Duration
	Notice       time.Duration
	Now          time.Time
	SeatsPerSlot int // 0 = unseated
}

// AvailableSlots returns slot starts within [windowStart, windowEnd) where a
// booking of opts.Duration would not collide with any busy interval.
//
// Buffers expand the busy intervals, not the candidate: a booking guarded by
// an after buffer keeps the timeline blocked past its end, so the next offered
// start is the first step boundary clear of the expanded interval. A seated
// busy entry whose start equals the candidate does not block until it reaches
// capacity; the emitted slot then carries the remaining seat count.
//
// All times are expected to be in the same location (timezone).
func AvailableSlots(windowStart, windowEnd time.Time, opts Options, busy []Busy) []Slot {
	if opts.Duration <= 0 {
		return nil
	}
	step := opts.Step
	if step <= 0 {
		step = opts.Duration
	}
	if !windowEnd.After(windowStart) {
		return nil
	}
	if windowStart.Add(opts.Duration).After(windowEnd) {
		return nil
	}

	earliest := opts.Now.Add(opts.Notice)

	var slots []Slot
	for t := windowStart; !t.Add(opts.Duration).After(windowEnd); t = t.Add(step) {
		if t.Before(earliest) {
			continue
		}
		seats, ok := seatsAt(t, t.Add(opts.Duration), opts, busy)
		if !ok {
			continue
		}
		slots = append(slots, Slot{Start: t, SeatsRemaining: seats})
	}
	return slots
}

// seatsAt reports whether a booking over [start, end) fits and how many seats
// remain at that start.
func seatsAt(start, end time.Time, opts Options, busy []Busy) (int, bool) {
	remaining := 1
	if opts.SeatsPerSlot > 0 {
		remaining = opts.SeatsPerSlot
	}

	for _, b := range busy {
		blockedFrom := b.Start.Add(-opts.BeforeBuffer)
		blockedUntil := b.End.Add(opts.AfterBuffer)
		// Half-open: [start,end) overlaps [blockedFrom,blockedUntil) iff
		// start < blockedUntil && blockedFrom < end.
		if !start.Before(blockedUntil) || !blockedFrom.Before(end) {
			continue
		}
		if b.SeatsTotal > 0 && b.Start.Equal(start) {
			left := b.SeatsTotal - b.SeatsBooked
			if left <= 0 {
				return 0, false
			}
			if left < remaining {
				remaining = left
			}
			continue
		}
		return 0, false
	}
	return remaining, true
}

// FirstPerDay keeps only the earliest slot of each calendar day, with day
// boundaries taken in loc (the requester's display timezone).
func FirstPerDay(slots []Slot, loc *time.Location) []Slot {
	if loc == nil {
		loc = time.UTC
	}
	var out []Slot
	seen := map[string]struct{}{}
	for _, s := range slots {
		day := s.Start.In(loc).Format("2006-01-02")
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, s)
	}
	return out
}
