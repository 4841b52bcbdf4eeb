package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/slotwise/slotwise/services/booking-service/internal/outbox"
	"github.com/slotwise/slotwise/services/booking-service/internal/storage"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

type StripeWebhookHandler struct {
	inner     *BookingHandler
	secret    string
	tolerance time.Duration
}

func NewStripeWebhookHandler(inner *BookingHandler, secret string, toleranceSeconds int) *StripeWebhookHandler {
	if toleranceSeconds <= 0 {
		toleranceSeconds = 300
	}
	return &StripeWebhookHandler{
		inner:     inner,
		secret:    strings.TrimSpace(secret),
		tolerance: time.Duration(toleranceSeconds) * time.Second,
	}
}

// ServeHTTP handles Stripe webhooks (no JWT auth; signature verification is
// the auth). The gateway exposes this path publicly.
func (h *StripeWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.secret == "" {
		http.Error(w, "stripe webhook not configured", http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	if strings.TrimSpace(sigHeader) == "" {
		http.Error(w, "missing Stripe-Signature header", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1 MiB hard cap
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	evt, err := webhook.ConstructEventWithTolerance(body, sigHeader, h.secret, h.tolerance)
	if err != nil {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	evtType := string(evt.Type)
	h.inner.logger.Info("payment provider event received",
		"provider", "stripe",
		"provider_event_id", evt.ID,
		"event_type", evtType,
	)

	ctx := r.Context()
	tx, err := h.inner.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Idempotency: ignore replayed Stripe events.
	if err := h.inner.repo.InsertProviderEvent(ctx, tx, storage.ProviderEvent{
		Provider:        "stripe",
		ProviderEventID: evt.ID,
		EventType:       evtType,
		Payload:         body,
	}); err != nil {
		if errors.Is(err, storage.ErrDuplicateProviderEvent) {
			writeJSON(w, http.StatusOK, map[string]any{"status": "duplicate"})
			_ = tx.Commit(ctx)
			return
		}
		http.Error(w, "failed to record provider event", http.StatusInternalServerError)
		return
	}

	switch evtType {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
			h.inner.logger.Error("stripe: invalid checkout session payload", "err", err)
			break
		}
		bookingID := strings.TrimSpace(session.Metadata["booking_id"])
		if bookingID == "" {
			h.inner.logger.Warn("stripe: missing booking_id metadata on checkout session")
			break
		}

		confirmed, err := h.inner.repo.Confirm(ctx, tx, bookingID)
		if err != nil {
			http.Error(w, "failed to confirm booking", http.StatusInternalServerError)
			return
		}
		if !confirmed {
			h.inner.logger.Info("booking not pending, skipping confirm", "booking_id", bookingID)
			break
		}

		payload, err := json.Marshal(map[string]any{
			"booking_id":          bookingID,
			"checkout_session_id": session.ID,
			"amount_total":        session.AmountTotal,
			"currency":            string(session.Currency),
		})
		if err != nil {
			http.Error(w, "failed to build event payload", http.StatusInternalServerError)
			return
		}
		if err := h.inner.outboxRepo.Insert(ctx, tx, outboxEvent("booking.confirmed.v1", bookingID, payload)); err != nil {
			http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
			return
		}
		h.enqueuePostPaymentReminders(w, r, tx, bookingID)

	case "checkout.session.expired":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
			h.inner.logger.Error("stripe: invalid checkout session payload", "err", err)
			break
		}
		bookingID := strings.TrimSpace(session.Metadata["booking_id"])
		if bookingID == "" {
			break
		}
		// Release the slot held by the unpaid booking.
		booking, err := h.inner.repo.Get(ctx, bookingID)
		if err != nil {
			if storage.IsNotFound(err) {
				break
			}
			http.Error(w, "failed to load booking", http.StatusInternalServerError)
			return
		}
		if booking.Status != "pending_payment" {
			break
		}
		cancelledAt, err := h.inner.repo.Cancel(ctx, tx, booking.HostID, bookingID, "payment session expired")
		if err != nil {
			http.Error(w, "failed to cancel booking", http.StatusInternalServerError)
			return
		}
		payload, err := json.Marshal(map[string]any{
			"booking_id":   bookingID,
			"host_id":      booking.HostID,
			"cancelled_at": cancelledAt.UTC().Format(time.RFC3339),
			"reason":       "payment session expired",
		})
		if err != nil {
			http.Error(w, "failed to build event payload", http.StatusInternalServerError)
			return
		}
		if err := h.inner.outboxRepo.Insert(ctx, tx, outboxEvent("booking.cancelled.v1", bookingID, payload)); err != nil {
			http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// enqueuePostPaymentReminders schedules reminders that were deferred until
// payment landed. Best effort: a failed lookup only loses reminders, never
// the confirmation.
func (h *StripeWebhookHandler) enqueuePostPaymentReminders(w http.ResponseWriter, r *http.Request, tx pgx.Tx, bookingID string) {
	ctx := r.Context()
	booking, err := h.inner.repo.Get(ctx, bookingID)
	if err != nil {
		h.inner.logger.Warn("reminder scheduling skipped: booking lookup failed", "err", err, "booking_id", bookingID)
		return
	}
	et, err := h.inner.provider.ByID(ctx, booking.EventTypeID)
	if err != nil {
		h.inner.logger.Warn("reminder scheduling skipped: event type lookup failed", "err", err, "booking_id", bookingID)
		return
	}
	attendees, err := h.inner.repo.ListAttendees(ctx, bookingID)
	if err != nil {
		h.inner.logger.Warn("reminder scheduling skipped: attendee lookup failed", "err", err, "booking_id", bookingID)
		return
	}
	for _, a := range attendees {
		h.inner.enqueueReminders(ctx, tx, bookingID, et, &booking, attendeeRequest{
			Name:     a.Name,
			Email:    a.Email,
			Phone:    a.Phone,
			Timezone: a.Timezone,
		})
	}
}

func outboxEvent(eventType, bookingID string, payload []byte) outbox.Event {
	return outbox.Event{
		AggregateType: "booking",
		AggregateID:   bookingID,
		EventType:     eventType,
		Payload:       payload,
	}
}
