package eventtypes

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event type not found")

// WeeklyRule opens a window on one weekday, minutes from local midnight.
type WeeklyRule struct {
	Weekday     int `json:"weekday"` // 0 = Sunday
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

// DateOverride replaces the weekly rules on a specific local date.
// Closed overrides hide the date entirely.
type DateOverride struct {
	Date        string `json:"date"` // YYYY-MM-DD in the event type's timezone
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Closed      bool   `json:"closed"`
}

type EventType struct {
	ID                   string         `json:"id"`
	HostID               string         `json:"host_id"`
	Slug                 string         `json:"slug"`
	Title                string         `json:"title"`
	LengthMinutes        int            `json:"length_minutes"`
	SlotIntervalMinutes  int            `json:"slot_interval_minutes"`
	BeforeBufferMinutes  int            `json:"before_buffer_minutes"`
	AfterBufferMinutes   int            `json:"after_buffer_minutes"`
	MinimumNoticeMinutes int            `json:"minimum_notice_minutes"`
	SeatsPerSlot         int            `json:"seats_per_slot"`
	OnlyFirstSlot        bool           `json:"only_first_slot"`
	PriceCents           int64          `json:"price_cents"`
	Currency             string         `json:"currency"`
	Timezone             string         `json:"timezone"`
	Rules                []WeeklyRule   `json:"rules"`
	Overrides            []DateOverride `json:"overrides"`
}

// Provider resolves event type settings for public slot and booking requests.
type Provider interface {
	BySlug(ctx context.Context, hostID, slug string) (EventType, error)
	ByID(ctx context.Context, eventTypeID string) (EventType, error)
}

type Window struct {
	Start time.Time
	End   time.Time
}

// WindowsOn returns the open windows of the event type on a local calendar
// date, as UTC instants. The date is interpreted in the event type's timezone,
// so DST transitions fall out of time.Date in that location.
func WindowsOn(et EventType, date string) ([]Window, error) {
	loc, err := time.LoadLocation(et.Timezone)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, err
	}

	for _, ov := range et.Overrides {
		if ov.Date != date {
			continue
		}
		if ov.Closed || ov.EndMinute <= ov.StartMinute {
			return nil, nil
		}
		return []Window{minuteWindow(day, loc, ov.StartMinute, ov.EndMinute)}, nil
	}

	var windows []Window
	weekday := int(day.Weekday())
	for _, rule := range et.Rules {
		if rule.Weekday != weekday || rule.EndMinute <= rule.StartMinute {
			continue
		}
		windows = append(windows, minuteWindow(day, loc, rule.StartMinute, rule.EndMinute))
	}
	return windows, nil
}

func minuteWindow(day time.Time, loc *time.Location, startMinute, endMinute int) Window {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, startMinute, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), 0, endMinute, 0, 0, loc)
	return Window{Start: start.UTC(), End: end.UTC()}
}
