package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/slotwise/slotwise/libs/db"
)

// ErrDuplicate maps unique violations (host email, event type slug).
var ErrDuplicate = errors.New("duplicate record")

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

type Host struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Timezone     string
	CreatedAt    time.Time
}

func (r *Repository) CreateHost(ctx context.Context, tx pgx.Tx, email, passwordHash, name, timezone string) (string, error) {
	id := uuid.NewString()
	_, err := tx.Exec(ctx, `
		INSERT INTO hosts (id, email, password_hash, name, timezone)
		VALUES ($1, $2, $3, $4, $5)
	`, id, email, passwordHash, name, timezone)
	if err != nil {
		if isUniqueViolation(err) {
			return "", ErrDuplicate
		}
		return "", err
	}
	return id, nil
}

func (r *Repository) GetHostByEmail(ctx context.Context, email string) (Host, error) {
	var h Host
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, email, password_hash, name, timezone, created_at
		FROM hosts
		WHERE email = $1
	`, email).Scan(&h.ID, &h.Email, &h.PasswordHash, &h.Name, &h.Timezone, &h.CreatedAt)
	return h, err
}

func (r *Repository) GetHost(ctx context.Context, hostID string) (Host, error) {
	var h Host
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, email, password_hash, name, timezone, created_at
		FROM hosts
		WHERE id = $1
	`, hostID).Scan(&h.ID, &h.Email, &h.PasswordHash, &h.Name, &h.Timezone, &h.CreatedAt)
	return h, err
}

// WeeklyRule and DateOverride carry the JSON shape the published event type
// snapshot uses; booking-service unmarshals the same shape into its cache.
type WeeklyRule struct {
	Weekday     int `json:"weekday"` // 0 = Sunday
	StartMinute int `json:"start_minute"`
	EndMinute   int `json:"end_minute"`
}

type DateOverride struct {
	Date        string `json:"date"` // YYYY-MM-DD in the event type's timezone
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	Closed      bool   `json:"closed"`
}

type EventType struct {
	ID                   string         `json:"id"`
	HostID               string         `json:"host_id"`
	Slug                 string         `json:"slug"`
	Title                string         `json:"title"`
	LengthMinutes        int            `json:"length_minutes"`
	SlotIntervalMinutes  int            `json:"slot_interval_minutes"`
	BeforeBufferMinutes  int            `json:"before_buffer_minutes"`
	AfterBufferMinutes   int            `json:"after_buffer_minutes"`
	MinimumNoticeMinutes int            `json:"minimum_notice_minutes"`
	SeatsPerSlot         int            `json:"seats_per_slot"`
	OnlyFirstSlot        bool           `json:"only_first_slot"`
	PriceCents           int64          `json:"price_cents"`
	Currency             string         `json:"currency"`
	Timezone             string         `json:"timezone"`
	Rules                []WeeklyRule   `json:"rules"`
	Overrides            []DateOverride `json:"overrides"`
}

func (r *Repository) CreateEventType(ctx context.Context, tx pgx.Tx, et EventType) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO event_types (
			id, host_id, slug, title, length_minutes, slot_interval_minutes,
			before_buffer_minutes, after_buffer_minutes, minimum_notice_minutes,
			seats_per_slot, only_first_slot, price_cents, currency, timezone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, et.ID, et.HostID, et.Slug, et.Title, et.LengthMinutes, et.SlotIntervalMinutes,
		et.BeforeBufferMinutes, et.AfterBufferMinutes, et.MinimumNoticeMinutes,
		et.SeatsPerSlot, et.OnlyFirstSlot, et.PriceCents, et.Currency, et.Timezone)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if err := r.replaceRules(ctx, tx, et.ID, et.Rules); err != nil {
		return err
	}
	return r.replaceOverrides(ctx, tx, et.ID, et.Overrides)
}

func (r *Repository) UpdateEventType(ctx context.Context, tx pgx.Tx, et EventType) error {
	tag, err := tx.Exec(ctx, `
		UPDATE event_types
		SET slug = $3,
			title = $4,
			length_minutes = $5,
			slot_interval_minutes = $6,
			before_buffer_minutes = $7,
			after_buffer_minutes = $8,
			minimum_notice_minutes = $9,
			seats_per_slot = $10,
			only_first_slot = $11,
			price_cents = $12,
			currency = $13,
			timezone = $14,
			updated_at = now()
		WHERE id = $1 AND host_id = $2
	`, et.ID, et.HostID, et.Slug, et.Title, et.LengthMinutes, et.SlotIntervalMinutes,
		et.BeforeBufferMinutes, et.AfterBufferMinutes, et.MinimumNoticeMinutes,
		et.SeatsPerSlot, et.OnlyFirstSlot, et.PriceCents, et.Currency, et.Timezone)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	if err := r.replaceRules(ctx, tx, et.ID, et.Rules); err != nil {
		return err
	}
	return r.replaceOverrides(ctx, tx, et.ID, et.Overrides)
}

func (r *Repository) DeleteEventType(ctx context.Context, tx pgx.Tx, hostID, eventTypeID string) error {
	tag, err := tx.Exec(ctx, `
		DELETE FROM event_types
		WHERE id = $1 AND host_id = $2
	`, eventTypeID, hostID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) replaceRules(ctx context.Context, tx pgx.Tx, eventTypeID string, rules []WeeklyRule) error {
	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules WHERE event_type_id = $1`, eventTypeID); err != nil {
		return err
	}
	for _, rule := range rules {
		if _, err := tx.Exec(ctx, `
			INSERT INTO availability_rules (event_type_id, weekday, is_available, start_minute, end_minute)
			VALUES ($1, $2, true, $3, $4)
			ON CONFLICT (event_type_id, weekday) DO UPDATE
			SET start_minute = EXCLUDED.start_minute,
				end_minute = EXCLUDED.end_minute,
				is_available = true
		`, eventTypeID, rule.Weekday, rule.StartMinute, rule.EndMinute); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) replaceOverrides(ctx context.Context, tx pgx.Tx, eventTypeID string, overrides []DateOverride) error {
	if _, err := tx.Exec(ctx, `DELETE FROM date_overrides WHERE event_type_id = $1`, eventTypeID); err != nil {
		return err
	}
	for _, ov := range overrides {
		if _, err := tx.Exec(ctx, `
			INSERT INTO date_overrides (id, event_type_id, date, is_available, start_minute, end_minute)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), eventTypeID, ov.Date, !ov.Closed, ov.StartMinute, ov.EndMinute); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) GetEventType(ctx context.Context, hostID, eventTypeID string) (EventType, error) {
	return r.getEventType(ctx, `
		SELECT id::text, host_id::text, slug, title, length_minutes, slot_interval_minutes,
			before_buffer_minutes, after_buffer_minutes, minimum_notice_minutes,
			seats_per_slot, only_first_slot, price_cents, currency, timezone
		FROM event_types
		WHERE id = $1 AND host_id = $2
	`, eventTypeID, hostID)
}

func (r *Repository) GetEventTypeByID(ctx context.Context, eventTypeID string) (EventType, error) {
	return r.getEventType(ctx, `
		SELECT id::text, host_id::text, slug, title, length_minutes, slot_interval_minutes,
			before_buffer_minutes, after_buffer_minutes, minimum_notice_minutes,
			seats_per_slot, only_first_slot, price_cents, currency, timezone
		FROM event_types
		WHERE id = $1
	`, eventTypeID)
}

func (r *Repository) GetEventTypeBySlug(ctx context.Context, hostID, slug string) (EventType, error) {
	return r.getEventType(ctx, `
		SELECT id::text, host_id::text, slug, title, length_minutes, slot_interval_minutes,
			before_buffer_minutes, after_buffer_minutes, minimum_notice_minutes,
			seats_per_slot, only_first_slot, price_cents, currency, timezone
		FROM event_types
		WHERE host_id = $1 AND slug = $2
	`, hostID, slug)
}

func (r *Repository) getEventType(ctx context.Context, query string, args ...any) (EventType, error) {
	var et EventType
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&et.ID, &et.HostID, &et.Slug, &et.Title, &et.LengthMinutes, &et.SlotIntervalMinutes,
		&et.BeforeBufferMinutes, &et.AfterBufferMinutes, &et.MinimumNoticeMinutes,
		&et.SeatsPerSlot, &et.OnlyFirstSlot, &et.PriceCents, &et.Currency, &et.Timezone,
	)
	if err != nil {
		return EventType{}, err
	}
	if et.Rules, err = r.listRules(ctx, et.ID); err != nil {
		return EventType{}, err
	}
	if et.Overrides, err = r.listOverrides(ctx, et.ID); err != nil {
		return EventType{}, err
	}
	return et, nil
}

func (r *Repository) listRules(ctx context.Context, eventTypeID string) ([]WeeklyRule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weekday, start_minute, end_minute
		FROM availability_rules
		WHERE event_type_id = $1 AND is_available
		ORDER BY weekday ASC
	`, eventTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WeeklyRule
	for rows.Next() {
		var rule WeeklyRule
		if err := rows.Scan(&rule.Weekday, &rule.StartMinute, &rule.EndMinute); err != nil {
			return nil, err
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (r *Repository) listOverrides(ctx context.Context, eventTypeID string) ([]DateOverride, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date::text, start_minute, end_minute, NOT is_available
		FROM date_overrides
		WHERE event_type_id = $1
		ORDER BY date ASC
	`, eventTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DateOverride
	for rows.Next() {
		var ov DateOverride
		if err := rows.Scan(&ov.Date, &ov.StartMinute, &ov.EndMinute, &ov.Closed); err != nil {
			return nil, err
		}
		out = append(out, ov)
	}
	return out, rows.Err()
}

func (r *Repository) ListEventTypes(ctx context.Context, hostID string, limit int) ([]EventType, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, host_id::text, slug, title, length_minutes, slot_interval_minutes,
			before_buffer_minutes, after_buffer_minutes, minimum_notice_minutes,
			seats_per_slot, only_first_slot, price_cents, currency, timezone
		FROM event_types
		WHERE host_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, hostID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EventType
	for rows.Next() {
		var et EventType
		if err := rows.Scan(
			&et.ID, &et.HostID, &et.Slug, &et.Title, &et.LengthMinutes, &et.SlotIntervalMinutes,
			&et.BeforeBufferMinutes, &et.AfterBufferMinutes, &et.MinimumNoticeMinutes,
			&et.SeatsPerSlot, &et.OnlyFirstSlot, &et.PriceCents, &et.Currency, &et.Timezone,
		); err != nil {
			return nil, err
		}
		out = append(out, et)
	}
	return out, rows.Err()
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
