package payments

import (
	"log/slog"
	"strings"

	"github.com/slotwise/slotwise/services/booking-service/internal/eventtypes"
	"github.com/stripe/stripe-go/v79"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
)

// Checkout creates Stripe Checkout sessions for paid event types.
// A zero-value Checkout (no secret key) disables paid bookings.
type Checkout struct {
	secretKey  string
	successURL string
	cancelURL  string
	logger     *slog.Logger
}

type Config struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

func NewCheckout(logger *slog.Logger, cfg Config) *Checkout {
	return &Checkout{
		secretKey:  strings.TrimSpace(cfg.SecretKey),
		successURL: strings.TrimSpace(cfg.SuccessURL),
		cancelURL:  strings.TrimSpace(cfg.CancelURL),
		logger:     logger,
	}
}

func (c *Checkout) Enabled() bool {
	return c.secretKey != "" && c.successURL != "" && c.cancelURL != ""
}

type Session struct {
	ID  string
	URL string
}

// CreateSession opens a one-off payment session for a booking. The booking id
// travels in the metadata so the webhook can confirm the right booking.
func (c *Checkout) CreateSession(bookingID string, et eventtypes.EventType, customerEmail, idempotencyKey string) (Session, error) {
	stripe.Key = c.secretKey

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		ClientReferenceID: stripe.String(bookingID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(et.Currency)),
					UnitAmount: stripe.Int64(et.PriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(et.Title),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"booking_id":    bookingID,
			"event_type_id": et.ID,
			"host_id":       et.HostID,
		},
	}
	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}
	params.AddExpand("url")
	if idempotencyKey != "" {
		params.IdempotencyKey = stripe.String(idempotencyKey)
	}

	sess, err := checkoutsession.New(params)
	if err != nil {
		c.logger.Error("stripe checkout session create failed", "err", err)
		return Session{}, err
	}
	return Session{ID: sess.ID, URL: sess.URL}, nil
}
