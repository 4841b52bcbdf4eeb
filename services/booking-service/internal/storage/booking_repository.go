package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/slotwise/slotwise/libs/db"
	"github.com/slotwise/slotwise/services/booking-service/internal/model"
)

var ErrDuplicateProviderEvent = errors.New("duplicate provider event")

type BookingRepository struct {
	pool *db.Pool
}

type IdempotencyRecord struct {
	HostID          string
	IdempotencyKey  string
	BookingID       string
	StatusCode      int
	ResponsePayload []byte
}

type ProviderEvent struct {
	Provider        string
	ProviderEventID string
	EventType       string
	Payload         []byte
}

func NewBookingRepository(pool *db.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

func (r *BookingRepository) LockIdempotencyKey(ctx context.Context, tx pgx.Tx, hostID, key string) (IdempotencyRecord, bool, error) {
	rec, err := r.selectIdempotencyForUpdate(ctx, tx, hostID, key)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return IdempotencyRecord{}, false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO booking_idempotency_keys (host_id, idempotency_key)
		VALUES ($1, $2)
		ON CONFLICT (host_id, idempotency_key) DO NOTHING
	`, hostID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	rec, err = r.selectIdempotencyForUpdate(ctx, tx, hostID, key)
	if err != nil {
		return IdempotencyRecord{}, false, err
	}
	return rec, false, nil
}

func (r *BookingRepository) FinalizeIdempotency(ctx context.Context, tx pgx.Tx, hostID, key, bookingID string, statusCode int, response []byte) error {
	_, err := tx.Exec(ctx, `
		UPDATE booking_idempotency_keys
		SET booking_id = $3,
			status_code = $4,
			response_payload = $5,
			updated_at = now()
		WHERE host_id = $1 AND idempotency_key = $2
	`, hostID, key, nullableID(bookingID), statusCode, response)
	return err
}

func (r *BookingRepository) Create(ctx context.Context, tx pgx.Tx, b *model.Booking) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO bookings
			(event_type_id, host_id, start_time, end_time, status, seats_booked)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, b.EventTypeID, b.HostID, b.StartTime, b.EndTime, b.Status, b.SeatsBooked).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *BookingRepository) AddAttendee(ctx context.Context, tx pgx.Tx, a *model.Attendee) (string, string, error) {
	seatUID := uuid.NewString()
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO booking_attendees (booking_id, seat_uid, name, email, phone, timezone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.BookingID, seatUID, a.Name, a.Email, a.Phone, a.Timezone).Scan(&id)
	if err != nil {
		return "", "", err
	}
	return id, seatUID, nil
}

// IncrementSeats bumps the seat counter after an attendee joins an existing
// seated booking. Returns the new count.
func (r *BookingRepository) IncrementSeats(ctx context.Context, tx pgx.Tx, bookingID string) (int, error) {
	var seats int
	err := tx.QueryRow(ctx, `
		UPDATE bookings
		SET seats_booked = seats_booked + 1
		WHERE id = $1
		RETURNING seats_booked
	`, bookingID).Scan(&seats)
	return seats, err
}

// GetAlignedSeatedForUpdate locks the confirmed booking starting exactly at
// start for a seated event type, if any, so a concurrent join cannot
// oversubscribe the slot.
func (r *BookingRepository) GetAlignedSeatedForUpdate(ctx context.Context, tx pgx.Tx, eventTypeID string, start time.Time) (model.Booking, bool, error) {
	b, err := scanBooking(tx.QueryRow(ctx, `
		SELECT id, event_type_id, host_id, start_time, end_time, status, seats_booked,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM bookings
		WHERE event_type_id = $1
			AND start_time = $2
			AND status IN ('confirmed', 'pending_payment')
		FOR UPDATE
	`, eventTypeID, start))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, false, nil
		}
		return model.Booking{}, false, err
	}
	return b, true, nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, hostID, bookingID string) (model.Booking, error) {
	return scanBooking(tx.QueryRow(ctx, `
		SELECT id, event_type_id, host_id, start_time, end_time, status, seats_booked,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM bookings
		WHERE id = $1 AND host_id = $2
		FOR UPDATE
	`, bookingID, hostID))
}

func (r *BookingRepository) Get(ctx context.Context, bookingID string) (model.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, `
		SELECT id, event_type_id, host_id, start_time, end_time, status, seats_booked,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM bookings
		WHERE id = $1
	`, bookingID))
}

func (r *BookingRepository) Cancel(ctx context.Context, tx pgx.Tx, hostID, bookingID, reason string) (time.Time, error) {
	var cancelledAt time.Time
	err := tx.QueryRow(ctx, `
		UPDATE bookings
		SET status = 'cancelled',
			cancelled_at = now(),
			cancellation_reason = $3
		WHERE id = $1 AND host_id = $2
		RETURNING cancelled_at
	`, bookingID, hostID, reason).Scan(&cancelledAt)
	return cancelledAt, err
}

// Confirm flips a pending_payment booking to confirmed once payment lands.
// Returns false when the booking was not pending (already confirmed or cancelled).
func (r *BookingRepository) Confirm(ctx context.Context, tx pgx.Tx, bookingID string) (bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = 'confirmed'
		WHERE id = $1 AND status = 'pending_payment'
	`, bookingID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListBusyIntervals returns confirmed bookings overlapping [start, end) for
// the event type, with seat counts for the seated join check. Cancelled
// bookings never appear; pending_payment holds the slot until it expires.
func (r *BookingRepository) ListBusyIntervals(ctx context.Context, eventTypeID string, seatsPerSlot int, start, end time.Time) ([]model.BusyInterval, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT start_time, end_time, seats_booked
		FROM bookings
		WHERE event_type_id = $1
			AND status IN ('confirmed', 'pending_payment')
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`, eventTypeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var busy []model.BusyInterval
	for rows.Next() {
		var b model.BusyInterval
		if err := rows.Scan(&b.Start, &b.End, &b.SeatsBooked); err != nil {
			return nil, err
		}
		b.SeatsTotal = seatsPerSlot
		busy = append(busy, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return busy, nil
}

func (r *BookingRepository) ListByHost(ctx context.Context, hostID string, limit int) ([]model.Booking, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_type_id, host_id, start_time, end_time, status, seats_booked,
			cancelled_at, COALESCE(cancellation_reason, ''), created_at
		FROM bookings
		WHERE host_id = $1
		ORDER BY start_time DESC
		LIMIT $2
	`, hostID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return bookings, nil
}

func (r *BookingRepository) ListAttendees(ctx context.Context, bookingID string) ([]model.Attendee, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, booking_id, seat_uid, name, email, phone, COALESCE(timezone, ''), created_at
		FROM booking_attendees
		WHERE booking_id = $1
		ORDER BY created_at ASC
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []model.Attendee
	for rows.Next() {
		var a model.Attendee
		if err := rows.Scan(&a.ID, &a.BookingID, &a.SeatUID, &a.Name, &a.Email, &a.Phone, &a.Timezone, &a.CreatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return attendees, nil
}

// InsertProviderEvent records an external payment provider event; the unique
// (provider, provider_event_id) pair makes webhook replays visible.
func (r *BookingRepository) InsertProviderEvent(ctx context.Context, tx pgx.Tx, evt ProviderEvent) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO provider_events (provider, provider_event_id, event_type, payload)
		VALUES ($1, $2, $3, $4)
	`, evt.Provider, evt.ProviderEventID, evt.EventType, evt.Payload)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateProviderEvent
		}
		return err
	}
	return nil
}

func (r *BookingRepository) SetCheckoutSession(ctx context.Context, tx pgx.Tx, bookingID, sessionID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE bookings
		SET checkout_session_id = $2
		WHERE id = $1
	`, bookingID, sessionID)
	return err
}

func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func (r *BookingRepository) selectIdempotencyForUpdate(ctx context.Context, tx pgx.Tx, hostID, key string) (IdempotencyRecord, error) {
	var rec IdempotencyRecord
	var responseText string
	err := tx.QueryRow(ctx, `
		SELECT host_id::text,
			idempotency_key,
			COALESCE(booking_id::text, ''),
			COALESCE(status_code, 0),
			COALESCE(response_payload::text, '')
		FROM booking_idempotency_keys
		WHERE host_id = $1 AND idempotency_key = $2
		FOR UPDATE
	`, hostID, key).Scan(
		&rec.HostID,
		&rec.IdempotencyKey,
		&rec.BookingID,
		&rec.StatusCode,
		&responseText,
	)
	if err != nil {
		return IdempotencyRecord{}, err
	}
	if responseText != "" {
		rec.ResponsePayload = []byte(responseText)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (model.Booking, error) {
	var b model.Booking
	var cancelledAt *time.Time
	err := row.Scan(
		&b.ID,
		&b.EventTypeID,
		&b.HostID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.SeatsBooked,
		&cancelledAt,
		&b.CancelReason,
		&b.CreatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	b.CancelledAt = cancelledAt
	return b, nil
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
