package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/slotwise/slotwise/services/booking-service/internal/availability"
	"github.com/slotwise/slotwise/services/booking-service/internal/eventtypes"
)

type stubProvider struct {
	et  eventtypes.EventType
	err error
}

func (s stubProvider) BySlug(ctx context.Context, hostID, slug string) (eventtypes.EventType, error) {
	return s.et, s.err
}

func (s stubProvider) ByID(ctx context.Context, eventTypeID string) (eventtypes.EventType, error) {
	return s.et, s.err
}

func newTestHandler(p eventtypes.Provider) *BookingHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBookingHandler(nil, nil, p, nil, nil, logger, nil)
}

func TestSlotsRequiresQueryParams(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSlotsRejectsBadDays(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?host_id=h&event_type=intro&date=2026-09-14&days=99", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSlotsRejectsUnknownTimezone(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?host_id=h&event_type=intro&date=2026-09-14&timezone=Not%2FAZone", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSlotsUnknownEventType(t *testing.T) {
	h := newTestHandler(stubProvider{err: eventtypes.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots?host_id=h&event_type=missing&date=2026-09-14", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestSlotsMethodNotAllowed(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/slots", nil)
	rec := httptest.NewRecorder()
	h.Slots(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/book", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRejectsMissingFields(t *testing.T) {
	h := newTestHandler(stubProvider{})

	body := `{"host_id":"h","event_type":"intro","start_time":"2026-09-14T13:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/book", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRejectsBadStartTime(t *testing.T) {
	h := newTestHandler(stubProvider{})

	body := `{"host_id":"h","event_type":"intro","start_time":"tomorrow","attendee":{"name":"A","email":"a@example.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/book", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateUnknownEventType(t *testing.T) {
	h := newTestHandler(stubProvider{err: eventtypes.ErrNotFound})

	body := `{"host_id":"h","event_type":"missing","start_time":"2026-09-14T13:00:00Z","attendee":{"name":"A","email":"a@example.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/book", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCancelRequiresIDs(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/cancel", strings.NewReader(`{"reason":"x"}`))
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListRequiresHost(t *testing.T) {
	h := newTestHandler(stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGroupSlotsByDayUsesDisplayTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	et := eventtypes.EventType{LengthMinutes: 30, SeatsPerSlot: 2}
	slots := []availability.Slot{
		{Start: time.Date(2026, 9, 14, 23, 30, 0, 0, time.UTC), SeatsRemaining: 2},
		{Start: time.Date(2026, 9, 15, 1, 0, 0, 0, time.UTC), SeatsRemaining: 1},
	}

	resp := groupSlotsByDay(slots, ny, et)
	if resp.Timezone != "America/New_York" {
		t.Fatalf("timezone = %q", resp.Timezone)
	}
	// Both instants fall on 2026-09-14 in New York.
	if len(resp.Days) != 1 {
		t.Fatalf("day count = %d, want 1", len(resp.Days))
	}
	if resp.Days[0].Date != "2026-09-14" {
		t.Fatalf("date = %q, want 2026-09-14", resp.Days[0].Date)
	}
	if len(resp.Days[0].Slots) != 2 {
		t.Fatalf("slot count = %d, want 2", len(resp.Days[0].Slots))
	}
	if got := resp.Days[0].Slots[0].StartTime; !strings.HasPrefix(got, "2026-09-14T19:30:00") {
		t.Fatalf("first slot rendered as %q, want 19:30 local", got)
	}
	if resp.Days[0].Slots[1].SeatsRemaining != 1 {
		t.Fatalf("seats remaining = %d, want 1", resp.Days[0].Slots[1].SeatsRemaining)
	}
}

func TestGroupSlotsByDayOmitsSeatsForUnseated(t *testing.T) {
	et := eventtypes.EventType{LengthMinutes: 30}
	slots := []availability.Slot{{Start: time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC), SeatsRemaining: 1}}

	resp := groupSlotsByDay(slots, time.UTC, et)
	if resp.Days[0].Slots[0].SeatsRemaining != 0 {
		t.Fatalf("unseated slot should not carry a seat count")
	}
}
