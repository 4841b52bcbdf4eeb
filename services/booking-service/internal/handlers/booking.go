package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/slotwise/slotwise/services/booking-service/internal/availability"
	"github.com/slotwise/slotwise/services/booking-service/internal/eventtypes"
	"github.com/slotwise/slotwise/services/booking-service/internal/model"
	"github.com/slotwise/slotwise/services/booking-service/internal/outbox"
	"github.com/slotwise/slotwise/services/booking-service/internal/payments"
	"github.com/slotwise/slotwise/services/booking-service/internal/storage"
)

const (
	maxRangeDays         = 31
	defaultRangeDays     = 7
	defaultReminderAhead = 24 * time.Hour
)

type BookingHandler struct {
	repo       *storage.BookingRepository
	outboxRepo *outbox.Repository
	provider   eventtypes.Provider
	fallback   eventtypes.Provider // direct calendar-service lookup, may be nil
	checkout   *payments.Checkout
	logger     *slog.Logger
	offsets    []time.Duration
	now        func() time.Time
}

func NewBookingHandler(repo *storage.BookingRepository, outboxRepo *outbox.Repository, provider eventtypes.Provider, fallback eventtypes.Provider, checkout *payments.Checkout, logger *slog.Logger, reminderOffsets []time.Duration) *BookingHandler {
	if len(reminderOffsets) == 0 {
		reminderOffsets = []time.Duration{defaultReminderAhead}
	}
	return &BookingHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		provider:   provider,
		fallback:   fallback,
		checkout:   checkout,
		logger:     logger,
		offsets:    reminderOffsets,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

type slotItem struct {
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	SeatsRemaining int    `json:"seats_remaining,omitempty"`
}

type dayItem struct {
	Date  string     `json:"date"`
	Slots []slotItem `json:"slots"`
}

type slotsResponse struct {
	Timezone string    `json:"timezone"`
	Days     []dayItem `json:"days"`
}

// Slots is the public availability endpoint: all offered start times for an
// event type over a date range, rendered in the requester's timezone.
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	hostID := strings.TrimSpace(q.Get("host_id"))
	slug := strings.TrimSpace(q.Get("event_type"))
	fromDate := strings.TrimSpace(q.Get("date"))
	if hostID == "" || slug == "" || fromDate == "" {
		http.Error(w, "host_id, event_type, and date are required", http.StatusBadRequest)
		return
	}

	days := defaultRangeDays
	if raw := strings.TrimSpace(q.Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRangeDays {
			http.Error(w, "days must be between 1 and 31", http.StatusBadRequest)
			return
		}
		days = n
	}

	displayLoc, err := displayLocation(q.Get("timezone"))
	if err != nil {
		http.Error(w, "unknown timezone", http.StatusBadRequest)
		return
	}

	et, err := h.loadEventTypeBySlug(r.Context(), hostID, slug)
	if err != nil {
		if errors.Is(err, eventtypes.ErrNotFound) {
			http.Error(w, "event type not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load event type", http.StatusInternalServerError)
		return
	}

	startDay, err := time.Parse("2006-01-02", fromDate)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	slots, err := h.computeSlots(r.Context(), et, startDay, days)
	if err != nil {
		h.logger.Error("slot computation failed", "err", err, "event_type_id", et.ID)
		http.Error(w, "failed to compute slots", http.StatusInternalServerError)
		return
	}

	if et.OnlyFirstSlot {
		slots = availability.FirstPerDay(slots, displayLoc)
	}

	writeJSON(w, http.StatusOK, groupSlotsByDay(slots, displayLoc, et))
}

// computeSlots runs the engine over each open window of each date in the range.
func (h *BookingHandler) computeSlots(ctx context.Context, et eventtypes.EventType, startDay time.Time, days int) ([]availability.Slot, error) {
	opts := availability.Options{
		Duration:     time.Duration(et.LengthMinutes) * time.Minute,
		Step:         time.Duration(et.SlotIntervalMinutes) * time.Minute,
		BeforeBuffer: time.Duration(et.BeforeBufferMinutes) * time.Minute,
		AfterBuffer:  time.Duration(et.AfterBufferMinutes) * time.Minute,
		Notice:       time.Duration(et.MinimumNoticeMinutes) * time.Minute,
		Now:          h.now(),
		SeatsPerSlot: et.SeatsPerSlot,
	}

	var all []availability.Slot
	for i := 0; i < days; i++ {
		date := startDay.AddDate(0, 0, i).Format("2006-01-02")
		windows, err := eventtypes.WindowsOn(et, date)
		if err != nil {
			return nil, err
		}
		for _, win := range windows {
			busy, err := h.busyIn(ctx, et, win.Start, win.End, opts)
			if err != nil {
				return nil, err
			}
			all = append(all, availability.AvailableSlots(win.Start, win.End, opts, busy)...)
		}
	}
	return all, nil
}

func (h *BookingHandler) busyIn(ctx context.Context, et eventtypes.EventType, start, end time.Time, opts availability.Options) ([]availability.Busy, error) {
	// Widen the fetch so buffer-expanded neighbours outside the window still count.
	pad := opts.BeforeBuffer + opts.AfterBuffer + opts.Duration
	booked, err := h.repo.ListBusyIntervals(ctx, et.ID, et.SeatsPerSlot, start.Add(-pad), end.Add(pad))
	if err != nil {
		return nil, err
	}
	busy := make([]availability.Busy, 0, len(booked))
	for _, b := range booked {
		busy = append(busy, availability.Busy{
			Start:       b.Start,
			End:         b.End,
			SeatsTotal:  b.SeatsTotal,
			SeatsBooked: b.SeatsBooked,
		})
	}
	return busy, nil
}

func groupSlotsByDay(slots []availability.Slot, loc *time.Location, et eventtypes.EventType) slotsResponse {
	resp := slotsResponse{Timezone: loc.String(), Days: []dayItem{}}
	length := time.Duration(et.LengthMinutes) * time.Minute
	byDay := map[string]int{}
	for _, s := range slots {
		local := s.Start.In(loc)
		date := local.Format("2006-01-02")
		item := slotItem{
			StartTime: local.Format(time.RFC3339),
			EndTime:   s.Start.Add(length).In(loc).Format(time.RFC3339),
		}
		if et.SeatsPerSlot > 0 {
			item.SeatsRemaining = s.SeatsRemaining
		}
		idx, ok := byDay[date]
		if !ok {
			resp.Days = append(resp.Days, dayItem{Date: date})
			idx = len(resp.Days) - 1
			byDay[date] = idx
		}
		resp.Days[idx].Slots = append(resp.Days[idx].Slots, item)
	}
	return resp
}

type attendeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type createBookingRequest struct {
	HostID    string          `json:"host_id"`
	EventType string          `json:"event_type"`
	StartTime string          `json:"start_time"`
	Attendee  attendeeRequest `json:"attendee"`
}

type createBookingResponse struct {
	BookingID      string `json:"booking_id"`
	SeatUID        string `json:"seat_uid,omitempty"`
	Status         string `json:"status"`
	SeatsRemaining int    `json:"seats_remaining,omitempty"`
	CheckoutURL    string `json:"checkout_url,omitempty"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.HostID = strings.TrimSpace(req.HostID)
	req.EventType = strings.TrimSpace(req.EventType)
	req.Attendee.Name = strings.TrimSpace(req.Attendee.Name)
	req.Attendee.Email = strings.TrimSpace(req.Attendee.Email)
	req.Attendee.Phone = strings.TrimSpace(req.Attendee.Phone)
	req.Attendee.Timezone = strings.TrimSpace(req.Attendee.Timezone)

	if req.HostID == "" || req.EventType == "" || req.Attendee.Name == "" || req.Attendee.Email == "" {
		http.Error(w, "missing required fields", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}
	start = start.UTC()

	et, err := h.loadEventTypeBySlug(r.Context(), req.HostID, req.EventType)
	if err != nil {
		if errors.Is(err, eventtypes.ErrNotFound) {
			http.Error(w, "event type not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load event type", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	idempotencyKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idempotencyKey != "" {
		rec, exists, err := h.repo.LockIdempotencyKey(ctx, tx, et.HostID, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to lock idempotency key", http.StatusInternalServerError)
			return
		}
		if exists && rec.StatusCode > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(rec.StatusCode)
			_, _ = w.Write(rec.ResponsePayload)
			return
		}
	}

	// Seated join: lock the booking at this exact start first so a concurrent
	// request cannot take the last seat between check and insert.
	if et.SeatsPerSlot > 0 {
		existing, found, err := h.repo.GetAlignedSeatedForUpdate(ctx, tx, et.ID, start)
		if err != nil {
			http.Error(w, "failed to check existing booking", http.StatusInternalServerError)
			return
		}
		if found {
			h.joinSeatedBooking(w, r, tx, et, existing, req, idempotencyKey)
			return
		}
	}

	seats, ok, err := h.startBookable(ctx, et, start)
	if err != nil {
		h.logger.Error("availability check failed", "err", err, "event_type_id", et.ID)
		http.Error(w, "failed to validate availability", http.StatusInternalServerError)
		return
	}
	if !ok {
		h.rejectWithIdempotency(w, ctx, tx, et.HostID, idempotencyKey, http.StatusUnprocessableEntity, "requested time is not available")
		return
	}

	status := "confirmed"
	if et.PriceCents > 0 {
		if h.checkout == nil || !h.checkout.Enabled() {
			http.Error(w, "paid bookings not configured", http.StatusNotImplemented)
			return
		}
		status = "pending_payment"
	}

	booking := &model.Booking{
		EventTypeID: et.ID,
		HostID:      et.HostID,
		StartTime:   start,
		EndTime:     start.Add(time.Duration(et.LengthMinutes) * time.Minute),
		Status:      status,
		SeatsBooked: 1,
	}
	bookingID, err := h.repo.Create(ctx, tx, booking)
	if err != nil {
		if storage.IsConflict(err) {
			h.rejectWithIdempotency(w, ctx, tx, et.HostID, idempotencyKey, http.StatusConflict, "time slot already booked")
			return
		}
		http.Error(w, "failed to create booking", http.StatusInternalServerError)
		return
	}

	_, seatUID, err := h.repo.AddAttendee(ctx, tx, &model.Attendee{
		BookingID: bookingID,
		Name:      req.Attendee.Name,
		Email:     req.Attendee.Email,
		Phone:     req.Attendee.Phone,
		Timezone:  req.Attendee.Timezone,
	})
	if err != nil {
		http.Error(w, "failed to record attendee", http.StatusInternalServerError)
		return
	}

	if err := h.insertBookingEvent(ctx, tx, "booking.created.v1", bookingID, et, booking, req.Attendee); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	resp := createBookingResponse{BookingID: bookingID, SeatUID: seatUID, Status: status}
	if et.SeatsPerSlot > 0 {
		resp.SeatsRemaining = seats - 1
	}

	if status == "pending_payment" {
		sess, err := h.checkout.CreateSession(bookingID, et, req.Attendee.Email, idempotencyKey)
		if err != nil {
			http.Error(w, "failed to create checkout session", http.StatusBadGateway)
			return
		}
		if err := h.repo.SetCheckoutSession(ctx, tx, bookingID, sess.ID); err != nil {
			http.Error(w, "failed to persist checkout session", http.StatusInternalServerError)
			return
		}
		resp.CheckoutURL = sess.URL
	} else {
		if err := h.insertBookingEvent(ctx, tx, "booking.confirmed.v1", bookingID, et, booking, req.Attendee); err != nil {
			http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
			return
		}
		h.enqueueReminders(ctx, tx, bookingID, et, booking, req.Attendee)
	}

	respBody, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, et.HostID, idempotencyKey, bookingID, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

func (h *BookingHandler) joinSeatedBooking(w http.ResponseWriter, r *http.Request, tx pgx.Tx, et eventtypes.EventType, existing model.Booking, req createBookingRequest, idempotencyKey string) {
	ctx := r.Context()

	if existing.SeatsBooked >= et.SeatsPerSlot {
		h.rejectWithIdempotency(w, ctx, tx, et.HostID, idempotencyKey, http.StatusConflict, "no seats remaining")
		return
	}

	_, seatUID, err := h.repo.AddAttendee(ctx, tx, &model.Attendee{
		BookingID: existing.ID,
		Name:      req.Attendee.Name,
		Email:     req.Attendee.Email,
		Phone:     req.Attendee.Phone,
		Timezone:  req.Attendee.Timezone,
	})
	if err != nil {
		http.Error(w, "failed to record attendee", http.StatusInternalServerError)
		return
	}
	seats, err := h.repo.IncrementSeats(ctx, tx, existing.ID)
	if err != nil {
		http.Error(w, "failed to update seat count", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":     existing.ID,
		"event_type_id":  et.ID,
		"host_id":        et.HostID,
		"seat_uid":       seatUID,
		"attendee_email": req.Attendee.Email,
		"attendee_name":  req.Attendee.Name,
		"seats_booked":   seats,
		"seats_total":    et.SeatsPerSlot,
		"start_time":     existing.StartTime.UTC().Format(time.RFC3339),
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   existing.ID,
		EventType:     "booking.attendee.added.v1",
		Payload:       payload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	h.enqueueReminders(ctx, tx, existing.ID, et, &existing, req.Attendee)

	respBody, err := json.Marshal(createBookingResponse{
		BookingID:      existing.ID,
		SeatUID:        seatUID,
		Status:         existing.Status,
		SeatsRemaining: et.SeatsPerSlot - seats,
	})
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	if idempotencyKey != "" {
		if err := h.repo.FinalizeIdempotency(ctx, tx, et.HostID, idempotencyKey, existing.ID, http.StatusCreated, respBody); err != nil {
			http.Error(w, "failed to finalize idempotency key", http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(respBody)
}

// startBookable checks the requested start against the offered slots of its
// local date, so notice, buffers, windows, and capacity all apply to writes
// exactly as they do to reads.
func (h *BookingHandler) startBookable(ctx context.Context, et eventtypes.EventType, start time.Time) (int, bool, error) {
	loc, err := time.LoadLocation(et.Timezone)
	if err != nil {
		return 0, false, err
	}
	date := start.In(loc).Format("2006-01-02")
	day, _ := time.Parse("2006-01-02", date)

	slots, err := h.computeSlots(ctx, et, day, 1)
	if err != nil {
		return 0, false, err
	}
	if et.OnlyFirstSlot {
		slots = availability.FirstPerDay(slots, loc)
	}
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s.SeatsRemaining, true, nil
		}
	}
	return 0, false, nil
}

type cancelBookingRequest struct {
	HostID    string `json:"host_id"`
	BookingID string `json:"booking_id"`
	Reason    string `json:"reason"`
}

type cancelBookingResponse struct {
	BookingID   string `json:"booking_id"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelled_at"`
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req cancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.HostID = strings.TrimSpace(req.HostID)
	req.BookingID = strings.TrimSpace(req.BookingID)
	req.Reason = strings.TrimSpace(req.Reason)
	if req.HostID == "" || req.BookingID == "" {
		http.Error(w, "host_id and booking_id required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	booking, err := h.repo.GetForUpdate(ctx, tx, req.HostID, req.BookingID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "booking not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load booking", http.StatusInternalServerError)
		return
	}

	if booking.Status == "cancelled" && booking.CancelledAt != nil {
		h.writeCancelResponse(w, booking.ID, booking.CancelledAt.UTC())
		return
	}

	cancelledAt, err := h.repo.Cancel(ctx, tx, req.HostID, booking.ID, req.Reason)
	if err != nil {
		http.Error(w, "failed to cancel booking", http.StatusInternalServerError)
		return
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":    booking.ID,
		"event_type_id": booking.EventTypeID,
		"host_id":       booking.HostID,
		"start_time":    booking.StartTime.UTC().Format(time.RFC3339),
		"end_time":      booking.EndTime.UTC().Format(time.RFC3339),
		"cancelled_at":  cancelledAt.UTC().Format(time.RFC3339),
		"reason":        req.Reason,
	})
	if err != nil {
		http.Error(w, "failed to build cancellation event", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   booking.ID,
		EventType:     "booking.cancelled.v1",
		Payload:       payload,
	}); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	h.writeCancelResponse(w, booking.ID, cancelledAt.UTC())
}

type listBookingItem struct {
	BookingID   string `json:"booking_id"`
	EventTypeID string `json:"event_type_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	SeatsBooked int    `json:"seats_booked"`
	CancelledAt string `json:"cancelled_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hostID := strings.TrimSpace(r.Header.Get("X-Host-Id"))
	if hostID == "" {
		hostID = strings.TrimSpace(r.URL.Query().Get("host_id"))
	}
	if hostID == "" {
		http.Error(w, "host_id required", http.StatusBadRequest)
		return
	}

	limit := 50
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	bookings, err := h.repo.ListByHost(r.Context(), hostID, limit)
	if err != nil {
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}

	items := make([]listBookingItem, 0, len(bookings))
	for _, b := range bookings {
		item := listBookingItem{
			BookingID:   b.ID,
			EventTypeID: b.EventTypeID,
			StartTime:   b.StartTime.UTC().Format(time.RFC3339),
			EndTime:     b.EndTime.UTC().Format(time.RFC3339),
			Status:      b.Status,
			SeatsBooked: b.SeatsBooked,
			CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if b.CancelledAt != nil {
			item.CancelledAt = b.CancelledAt.UTC().Format(time.RFC3339)
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *BookingHandler) loadEventTypeBySlug(ctx context.Context, hostID, slug string) (eventtypes.EventType, error) {
	et, err := h.provider.BySlug(ctx, hostID, slug)
	if err == nil {
		return et, nil
	}
	if !errors.Is(err, eventtypes.ErrNotFound) || h.fallback == nil {
		return eventtypes.EventType{}, err
	}

	fbCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	et, fbErr := h.fallback.BySlug(fbCtx, hostID, slug)
	if fbErr != nil {
		h.logger.Warn("calendar-service lookup failed after cache miss", "err", fbErr)
		return eventtypes.EventType{}, err
	}
	return et, nil
}

func (h *BookingHandler) insertBookingEvent(ctx context.Context, tx pgx.Tx, eventType, bookingID string, et eventtypes.EventType, b *model.Booking, attendee attendeeRequest) error {
	payload, err := json.Marshal(map[string]any{
		"booking_id":     bookingID,
		"event_type_id":  et.ID,
		"host_id":        et.HostID,
		"title":          et.Title,
		"attendee_name":  attendee.Name,
		"attendee_email": attendee.Email,
		"attendee_phone": attendee.Phone,
		"start_time":     b.StartTime.UTC().Format(time.RFC3339),
		"end_time":       b.EndTime.UTC().Format(time.RFC3339),
		"status":         b.Status,
	})
	if err != nil {
		return err
	}
	return h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   bookingID,
		EventType:     eventType,
		Payload:       payload,
	})
}

func (h *BookingHandler) enqueueReminders(ctx context.Context, tx pgx.Tx, bookingID string, et eventtypes.EventType, b *model.Booking, attendee attendeeRequest) {
	now := h.now()
	for _, offset := range h.offsets {
		remindAt := b.StartTime.Add(-offset)
		if remindAt.Before(now) {
			continue
		}
		h.enqueueReminder(ctx, tx, bookingID, et, b, attendee, remindAt, "email", attendee.Email)
		h.enqueueReminder(ctx, tx, bookingID, et, b, attendee, remindAt, "sms", attendee.Phone)
	}
}

func (h *BookingHandler) enqueueReminder(ctx context.Context, tx pgx.Tx, bookingID string, et eventtypes.EventType, b *model.Booking, attendee attendeeRequest, remindAt time.Time, channel, recipient string) {
	if strings.TrimSpace(recipient) == "" {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"booking_id": bookingID,
		"host_id":    et.HostID,
		"channel":    channel,
		"recipient":  recipient,
		"remind_at":  remindAt.UTC().Format(time.RFC3339),
		"template_data": map[string]any{
			"attendee_name": attendee.Name,
			"event_title":   et.Title,
			"start_time":    b.StartTime.UTC().Format(time.RFC3339),
			"timezone":      attendee.Timezone,
		},
	})
	if err != nil {
		h.logger.Error("failed to build reminder payload", "err", err)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   bookingID,
		EventType:     "booking.reminder.requested.v1",
		Payload:       payload,
	}); err != nil {
		h.logger.Error("failed to enqueue reminder", "err", err)
	}
}

func (h *BookingHandler) rejectWithIdempotency(w http.ResponseWriter, ctx context.Context, tx pgx.Tx, hostID, key string, statusCode int, msg string) {
	if key != "" {
		body, err := json.Marshal(map[string]string{"error": msg})
		if err == nil {
			if err := h.repo.FinalizeIdempotency(ctx, tx, hostID, key, "", statusCode, body); err == nil {
				_ = tx.Commit(ctx)
			} else {
				h.logger.Error("failed to finalize idempotency (error)", "err", err)
			}
		}
	}
	http.Error(w, msg, statusCode)
}

func (h *BookingHandler) writeCancelResponse(w http.ResponseWriter, bookingID string, cancelledAt time.Time) {
	writeJSON(w, http.StatusOK, cancelBookingResponse{
		BookingID:   bookingID,
		Status:      "cancelled",
		CancelledAt: cancelledAt.Format(time.RFC3339),
	})
}

func displayLocation(raw string) (*time.Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(raw)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
