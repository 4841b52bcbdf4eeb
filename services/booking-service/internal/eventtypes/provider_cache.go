package eventtypes

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/slotwise/slotwise/libs/db"
)

// CacheProvider serves event types from the local event_type_cache table,
// which the Kafka consumer keeps in sync with calendar-service updates.
type CacheProvider struct {
	pool *db.Pool
}

func NewCacheProvider(pool *db.Pool) *CacheProvider {
	return &CacheProvider{pool: pool}
}

func (p *CacheProvider) BySlug(ctx context.Context, hostID, slug string) (EventType, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `
		SELECT payload
		FROM event_type_cache
		WHERE host_id = $1 AND slug = $2
	`, hostID, slug).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EventType{}, ErrNotFound
		}
		return EventType{}, err
	}
	return decode(payload)
}

func (p *CacheProvider) ByID(ctx context.Context, eventTypeID string) (EventType, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `
		SELECT payload
		FROM event_type_cache
		WHERE event_type_id = $1
	`, eventTypeID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EventType{}, ErrNotFound
		}
		return EventType{}, err
	}
	return decode(payload)
}

// Upsert stores the event type snapshot carried by a calendar event.
func (p *CacheProvider) Upsert(ctx context.Context, et EventType) error {
	payload, err := json.Marshal(et)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, `
		INSERT INTO event_type_cache (event_type_id, host_id, slug, payload, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (event_type_id) DO UPDATE
		SET host_id = EXCLUDED.host_id,
			slug = EXCLUDED.slug,
			payload = EXCLUDED.payload,
			updated_at = now()
	`, et.ID, et.HostID, et.Slug, payload)
	return err
}

func (p *CacheProvider) Delete(ctx context.Context, eventTypeID string) error {
	_, err := p.pool.Exec(ctx, `
		DELETE FROM event_type_cache WHERE event_type_id = $1
	`, eventTypeID)
	return err
}

func decode(payload []byte) (EventType, error) {
	var et EventType
	if err := json.Unmarshal(payload, &et); err != nil {
		return EventType{}, err
	}
	return et, nil
}
