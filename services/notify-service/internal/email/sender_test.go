package email

import (
	"strings"
	"testing"
)

func TestRenderCarriesBookingHeader(t *testing.T) {
	s := NewSMTPSender("mailpit", "1025", "no-reply@slotwise.local")
	raw := s.render(Message{
		To:        "guest@example.com",
		Subject:   "Booking reminder",
		Body:      "See you soon.",
		BookingID: "6b1f2c9a-0000-0000-0000-000000000001",
	})

	for _, want := range []string{
		"From: Slotwise <no-reply@slotwise.local>\r\n",
		"To: guest@example.com\r\n",
		"Subject: Booking reminder\r\n",
		"X-Slotwise-Booking-Id: 6b1f2c9a-0000-0000-0000-000000000001\r\n",
		"\r\n\r\nSee you soon.\r\n",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestRenderOmitsBookingHeaderWhenUnset(t *testing.T) {
	s := NewSMTPSender("mailpit", "1025", "no-reply@slotwise.local")
	raw := s.render(Message{To: "guest@example.com", Subject: "Hi", Body: "."})
	if strings.Contains(raw, "X-Slotwise-Booking-Id") {
		t.Fatalf("unexpected booking header:\n%s", raw)
	}
}

func TestNewSMTPSenderDefaultsFrom(t *testing.T) {
	s := NewSMTPSender("mailpit", "1025", "  ")
	if s.from != "no-reply@slotwise.local" {
		t.Fatalf("from = %q", s.from)
	}
	if s.addr != "mailpit:1025" {
		t.Fatalf("addr = %q", s.addr)
	}
}
