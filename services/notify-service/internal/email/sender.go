package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Message is one outbound email tied to a booking. BookingID travels as a
// mail header so a delivery in the mailbox can be traced back to its booking.
type Message struct {
	To        string
	Subject   string
	Body      string
	BookingID string
}

type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends mail via unauthenticated SMTP (Mailpit-compatible).
type SMTPSender struct {
	addr     string
	from     string
	fromName string
}

func NewSMTPSender(host string, port string, from string) *SMTPSender {
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@slotwise.local"
	}
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%s", strings.TrimSpace(host), strings.TrimSpace(port)),
		from:     from,
		fromName: "Slotwise",
	}
}

func (s *SMTPSender) Send(msg Message) error {
	raw := s.render(msg)
	return smtp.SendMail(s.addr, nil, s.from, []string{msg.To}, []byte(raw))
}

// render builds a minimal RFC 5322 message; enough for Mailpit and most
// SMTP relays.
func (s *SMTPSender) render(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.fromName, s.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	if msg.BookingID != "" {
		fmt.Fprintf(&b, "X-Slotwise-Booking-Id: %s\r\n", msg.BookingID)
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return b.String()
}
