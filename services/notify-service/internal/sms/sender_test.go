package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWebhookSenderPostsBookingContext(t *testing.T) {
	var got map[string]string
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, "relay-token")
	err := s.Send(context.Background(), Message{
		To:        "+15550100",
		Body:      "Reminder: Intro call on Mon, 14 Sep 2026 09:00 EDT.",
		BookingID: "b-1",
		HostID:    "h-1",
	})
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if authHeader != "Bearer relay-token" {
		t.Fatalf("Authorization = %q", authHeader)
	}
	want := map[string]string{
		"to":         "+15550100",
		"body":       "Reminder: Intro call on Mon, 14 Sep 2026 09:00 EDT.",
		"booking_id": "b-1",
		"host_id":    "h-1",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("payload[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestWebhookSenderRejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, "")
	err := s.Send(context.Background(), Message{To: "+15550100", Body: "hi"})
	if err == nil {
		t.Fatal("expected error on 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("error %q does not carry the status code", err)
	}
}

func TestWebhookSenderRequiresURL(t *testing.T) {
	s := NewWebhookSender("  ", "tok")
	if err := s.Send(context.Background(), Message{To: "+15550100", Body: "hi"}); err == nil {
		t.Fatal("expected error without a configured url")
	}
}
