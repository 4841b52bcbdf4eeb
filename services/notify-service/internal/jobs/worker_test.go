package jobs

import (
	"strings"
	"testing"
	"time"
)

func TestRenderReminderUsesAttendeeTimezone(t *testing.T) {
	job := Job{
		Channel:   "email",
		Recipient: "guest@example.com",
		TemplateData: map[string]any{
			"event_title":   "Intro Call",
			"attendee_name": "Ada",
			"start_time":    "2026-09-14T13:00:00Z",
			"timezone":      "America/New_York",
		},
	}

	subject, body := renderReminder(job)
	if subject != "Reminder: Intro Call" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "Hi Ada") {
		t.Fatalf("body missing greeting: %q", body)
	}
	// 13:00 UTC is 09:00 EDT on that date.
	if !strings.Contains(body, "09:00") {
		t.Fatalf("body should render the local start time: %q", body)
	}
}

func TestRenderReminderFallsBackOnBadInput(t *testing.T) {
	job := Job{
		RemindAt:     time.Now(),
		TemplateData: map[string]any{"start_time": "not-a-time"},
	}

	subject, body := renderReminder(job)
	if subject != "Reminder: your booking" {
		t.Fatalf("subject = %q", subject)
	}
	if !strings.Contains(body, "not-a-time") {
		t.Fatalf("body should carry the raw start time: %q", body)
	}
}
