package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/slotwise/slotwise/services/calendar-service/internal/storage"
)

func validRequest() eventTypeRequest {
	return eventTypeRequest{
		Slug:          "intro-call",
		Title:         "Intro Call",
		LengthMinutes: 30,
		Timezone:      "America/New_York",
		Rules: []storage.WeeklyRule{
			{Weekday: 1, StartMinute: 540, EndMinute: 1020},
		},
	}
}

func TestEventTypeRequestValidateDefaults(t *testing.T) {
	req := validRequest()
	if err := req.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.SlotIntervalMinutes != 30 {
		t.Fatalf("slot interval = %d, want length default 30", req.SlotIntervalMinutes)
	}
}

func TestEventTypeRequestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*eventTypeRequest)
	}{
		{"empty slug", func(r *eventTypeRequest) { r.Slug = "" }},
		{"bad slug", func(r *eventTypeRequest) { r.Slug = "Intro Call!" }},
		{"missing title", func(r *eventTypeRequest) { r.Title = " " }},
		{"zero length", func(r *eventTypeRequest) { r.LengthMinutes = 0 }},
		{"negative buffer", func(r *eventTypeRequest) { r.BeforeBufferMinutes = -5 }},
		{"negative seats", func(r *eventTypeRequest) { r.SeatsPerSlot = -1 }},
		{"negative price", func(r *eventTypeRequest) { r.PriceCents = -100 }},
		{"bad timezone", func(r *eventTypeRequest) { r.Timezone = "Not/AZone" }},
		{"rule weekday out of range", func(r *eventTypeRequest) { r.Rules[0].Weekday = 7 }},
		{"rule inverted window", func(r *eventTypeRequest) {
			r.Rules[0].StartMinute = 600
			r.Rules[0].EndMinute = 540
		}},
		{"override bad date", func(r *eventTypeRequest) {
			r.Overrides = []storage.DateOverride{{Date: "14-09-2026", StartMinute: 540, EndMinute: 600}}
		}},
		{"override inverted window", func(r *eventTypeRequest) {
			r.Overrides = []storage.DateOverride{{Date: "2026-09-14", StartMinute: 600, EndMinute: 540}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			if err := req.validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestEventTypeRequestClosedOverrideSkipsWindowCheck(t *testing.T) {
	req := validRequest()
	req.Overrides = []storage.DateOverride{{Date: "2026-09-14", Closed: true}}
	if err := req.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestEventTypeRequestPaidDefaultsCurrency(t *testing.T) {
	req := validRequest()
	req.PriceCents = 5000
	if err := req.validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if req.Currency != "usd" {
		t.Fatalf("currency = %q, want usd", req.Currency)
	}
}

func TestCollectionRequiresHostHeader(t *testing.T) {
	h := NewEventTypeHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/event-types", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.Collection(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCollectionMethodNotAllowed(t *testing.T) {
	h := NewEventTypeHandler(nil, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/event-types", nil)
	rec := httptest.NewRecorder()
	h.Collection(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestCreateRejectsInvalidPayload(t *testing.T) {
	h := NewEventTypeHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/event-types", strings.NewReader(`{"slug":"x","title":""}`))
	req.Header.Set("X-Host-Id", "host-1")
	rec := httptest.NewRecorder()
	h.Collection(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestItemRequiresID(t *testing.T) {
	h := NewEventTypeHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/event-types/item", nil)
	req.Header.Set("X-Host-Id", "host-1")
	rec := httptest.NewRecorder()
	h.Item(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
