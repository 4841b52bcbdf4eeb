package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/slotwise/slotwise/services/calendar-service/internal/outbox"
	"github.com/slotwise/slotwise/services/calendar-service/internal/storage"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type EventTypeHandler struct {
	repo   *storage.Repository
	outbox *outbox.Repository
}

func NewEventTypeHandler(repo *storage.Repository, outboxRepo *outbox.Repository) *EventTypeHandler {
	return &EventTypeHandler{repo: repo, outbox: outboxRepo}
}

func hostID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-Host-Id"))
}

type eventTypeRequest struct {
	Slug                 string                 `json:"slug"`
	Title                string                 `json:"title"`
	LengthMinutes        int                    `json:"length_minutes"`
	SlotIntervalMinutes  int                    `json:"slot_interval_minutes"`
	BeforeBufferMinutes  int                    `json:"before_buffer_minutes"`
	AfterBufferMinutes   int                    `json:"after_buffer_minutes"`
	MinimumNoticeMinutes int                    `json:"minimum_notice_minutes"`
	SeatsPerSlot         int                    `json:"seats_per_slot"`
	OnlyFirstSlot        bool                   `json:"only_first_slot"`
	PriceCents           int64                  `json:"price_cents"`
	Currency             string                 `json:"currency"`
	Timezone             string                 `json:"timezone"`
	Rules                []storage.WeeklyRule   `json:"rules"`
	Overrides            []storage.DateOverride `json:"overrides"`
}

func (req *eventTypeRequest) validate() error {
	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))
	req.Title = strings.TrimSpace(req.Title)
	req.Currency = strings.ToLower(strings.TrimSpace(req.Currency))
	if !slugPattern.MatchString(req.Slug) {
		return errors.New("slug must be lowercase letters, digits and hyphens")
	}
	if req.Title == "" {
		return errors.New("title is required")
	}
	if req.LengthMinutes <= 0 || req.LengthMinutes > 1440 {
		return errors.New("length_minutes must be between 1 and 1440")
	}
	if req.SlotIntervalMinutes == 0 {
		req.SlotIntervalMinutes = req.LengthMinutes
	}
	if req.SlotIntervalMinutes < 0 || req.SlotIntervalMinutes > 1440 {
		return errors.New("slot_interval_minutes must be between 0 and 1440")
	}
	if req.BeforeBufferMinutes < 0 || req.AfterBufferMinutes < 0 {
		return errors.New("buffers must not be negative")
	}
	if req.MinimumNoticeMinutes < 0 {
		return errors.New("minimum_notice_minutes must not be negative")
	}
	if req.SeatsPerSlot < 0 {
		return errors.New("seats_per_slot must not be negative")
	}
	if req.PriceCents < 0 {
		return errors.New("price_cents must not be negative")
	}
	if req.PriceCents > 0 && req.Currency == "" {
		req.Currency = "usd"
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return errors.New("unknown timezone")
	}
	for _, rule := range req.Rules {
		if rule.Weekday < 0 || rule.Weekday > 6 {
			return errors.New("rule weekday must be between 0 and 6")
		}
		if err := validateMinutes(rule.StartMinute, rule.EndMinute); err != nil {
			return fmt.Errorf("rule for weekday %d: %w", rule.Weekday, err)
		}
	}
	for _, ov := range req.Overrides {
		if _, err := time.Parse("2006-01-02", ov.Date); err != nil {
			return errors.New("override date must be YYYY-MM-DD")
		}
		if !ov.Closed {
			if err := validateMinutes(ov.StartMinute, ov.EndMinute); err != nil {
				return fmt.Errorf("override for %s: %w", ov.Date, err)
			}
		}
	}
	return nil
}

func validateMinutes(start, end int) error {
	if start < 0 || start > 1440 || end < 0 || end > 1440 {
		return errors.New("minutes must be between 0 and 1440")
	}
	if end <= start {
		return errors.New("end_minute must be after start_minute")
	}
	return nil
}

func (req *eventTypeRequest) toEventType(id, host string) storage.EventType {
	return storage.EventType{
		ID:                   id,
		HostID:               host,
		Slug:                 req.Slug,
		Title:                req.Title,
		LengthMinutes:        req.LengthMinutes,
		SlotIntervalMinutes:  req.SlotIntervalMinutes,
		BeforeBufferMinutes:  req.BeforeBufferMinutes,
		AfterBufferMinutes:   req.AfterBufferMinutes,
		MinimumNoticeMinutes: req.MinimumNoticeMinutes,
		SeatsPerSlot:         req.SeatsPerSlot,
		OnlyFirstSlot:        req.OnlyFirstSlot,
		PriceCents:           req.PriceCents,
		Currency:             req.Currency,
		Timezone:             req.Timezone,
		Rules:                req.Rules,
		Overrides:            req.Overrides,
	}
}

// Collection handles /api/v1/event-types.
func (h *EventTypeHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item handles /api/v1/event-types/item?id=<event_type_id>.
func (h *EventTypeHandler) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *EventTypeHandler) create(w http.ResponseWriter, r *http.Request) {
	host := hostID(r)
	if host == "" {
		http.Error(w, "missing X-Host-Id header", http.StatusBadRequest)
		return
	}
	var req eventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	et := req.toEventType(uuid.NewString(), host)
	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.CreateEventType(ctx, tx, et); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			http.Error(w, "slug already in use", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create event type", http.StatusInternalServerError)
		return
	}
	if err := h.publishSnapshot(ctx, tx, et, false); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, et)
}

func (h *EventTypeHandler) list(w http.ResponseWriter, r *http.Request) {
	host := hostID(r)
	if host == "" {
		http.Error(w, "missing X-Host-Id header", http.StatusBadRequest)
		return
	}
	items, err := h.repo.ListEventTypes(r.Context(), host, 100)
	if err != nil {
		http.Error(w, "failed to list event types", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []storage.EventType{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"event_types": items})
}

func (h *EventTypeHandler) get(w http.ResponseWriter, r *http.Request) {
	host := hostID(r)
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if host == "" || id == "" {
		http.Error(w, "missing X-Host-Id header or id", http.StatusBadRequest)
		return
	}
	et, err := h.repo.GetEventType(r.Context(), host, id)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "event type not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load event type", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, et)
}

func (h *EventTypeHandler) update(w http.ResponseWriter, r *http.Request) {
	host := hostID(r)
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if host == "" || id == "" {
		http.Error(w, "missing X-Host-Id header or id", http.StatusBadRequest)
		return
	}
	var req eventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	et := req.toEventType(id, host)
	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.UpdateEventType(ctx, tx, et); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "event type not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, storage.ErrDuplicate) {
			http.Error(w, "slug already in use", http.StatusConflict)
			return
		}
		http.Error(w, "failed to update event type", http.StatusInternalServerError)
		return
	}
	if err := h.publishSnapshot(ctx, tx, et, false); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, et)
}

func (h *EventTypeHandler) delete(w http.ResponseWriter, r *http.Request) {
	host := hostID(r)
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if host == "" || id == "" {
		http.Error(w, "missing X-Host-Id header or id", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.DeleteEventType(ctx, tx, host, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "event type not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete event type", http.StatusInternalServerError)
		return
	}
	// Deletions ride the same topic as updates; consumers drop their cache row.
	if err := h.publishSnapshot(ctx, tx, storage.EventType{ID: id, HostID: host}, true); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *EventTypeHandler) publishSnapshot(ctx context.Context, tx pgx.Tx, et storage.EventType, deleted bool) error {
	payload, err := json.Marshal(map[string]any{
		"deleted":    deleted,
		"event_type": et,
	})
	if err != nil {
		return err
	}
	return h.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "event_type",
		AggregateID:   et.ID,
		EventType:     "calendar.event_type.updated.v1",
		Payload:       payload,
	})
}
