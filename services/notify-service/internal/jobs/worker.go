package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/slotwise/slotwise/libs/db"
	otelx "github.com/slotwise/slotwise/libs/otel"
	"github.com/slotwise/slotwise/services/notify-service/internal/email"
	"github.com/slotwise/slotwise/services/notify-service/internal/outbox"
	"github.com/slotwise/slotwise/services/notify-service/internal/sms"
	"github.com/slotwise/slotwise/services/notify-service/internal/storage"
)

// Worker drains due reminder jobs and delivers them. Failed deliveries are
// retried with a fixed backoff; once max_attempts is exhausted the job lands
// on the DLQ topic for manual follow-up.
type Worker struct {
	pool          *db.Pool
	repo          *Repository
	outbox        *outbox.Repository
	notifications *storage.Repository
	email         email.Sender
	sms           sms.Sender
	logger        *slog.Logger
	interval      time.Duration
	batchSize     int
	backoff       time.Duration
}

type WorkerConfig struct {
	Interval  time.Duration
	BatchSize int
	Backoff   time.Duration
}

func NewWorker(pool *db.Pool, repo *Repository, outboxRepo *outbox.Repository, notifications *storage.Repository, emailSender email.Sender, smsSender sms.Sender, logger *slog.Logger, cfg WorkerConfig) *Worker {
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 1 * time.Minute
	}
	return &Worker{
		pool:          pool,
		repo:          repo,
		outbox:        outboxRepo,
		notifications: notifications,
		email:         emailSender,
		sms:           smsSender,
		logger:        logger,
		interval:      cfg.Interval,
		batchSize:     cfg.BatchSize,
		backoff:       cfg.Backoff,
	}
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				w.logger.Error("reminder batch failed", "err", err)
			}
		}
	}
}

func (w *Worker) processBatch(ctx context.Context) error {
	tx, err := w.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	due, err := w.repo.FetchDue(ctx, tx, w.batchSize)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return tx.Commit(ctx)
	}

	var sent []int64
	for _, job := range due {
		jobCtx := otelx.ContextWithTraceContext(ctx, job.Traceparent, job.Tracestate)
		if err := w.deliver(jobCtx, job); err != nil {
			w.logger.Error("reminder delivery failed", "err", err, "booking_id", job.BookingID, "channel", job.Channel)
			if err := w.handleFailure(jobCtx, tx, job, err.Error()); err != nil {
				return err
			}
			continue
		}
		sent = append(sent, job.ID)

		if err := w.notifications.Insert(jobCtx, storage.Notification{
			BookingID: job.BookingID,
			HostID:    job.HostID,
			Channel:   job.Channel,
			Recipient: job.Recipient,
			Payload:   job.TemplateData,
			Status:    "sent",
		}); err != nil {
			w.logger.Error("failed to persist notification", "err", err, "booking_id", job.BookingID)
		}
		if err := w.enqueueSentEvent(jobCtx, tx, job); err != nil {
			return err
		}
	}

	if err := w.repo.MarkProcessed(ctx, tx, sent); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (w *Worker) deliver(ctx context.Context, job Job) error {
	subject, body := renderReminder(job)
	switch strings.ToLower(job.Channel) {
	case "email":
		return w.email.Send(email.Message{
			To:        job.Recipient,
			Subject:   subject,
			Body:      body,
			BookingID: job.BookingID,
		})
	case "sms":
		return w.sms.Send(ctx, sms.Message{
			To:        job.Recipient,
			Body:      body,
			BookingID: job.BookingID,
			HostID:    job.HostID,
		})
	default:
		return fmt.Errorf("unsupported channel: %s", job.Channel)
	}
}

func (w *Worker) handleFailure(ctx context.Context, tx pgx.Tx, job Job, reason string) error {
	attempts := job.Attempts + 1
	nextRunAt := time.Now().UTC().Add(w.backoff)
	if err := w.repo.MarkFailed(ctx, tx, job.ID, attempts, job.MaxAttempts, nextRunAt, reason); err != nil {
		return err
	}
	if attempts < job.MaxAttempts {
		return nil
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":    job.BookingID,
		"host_id":       job.HostID,
		"channel":       job.Channel,
		"recipient":     job.Recipient,
		"remind_at":     job.RemindAt.UTC().Format(time.RFC3339),
		"template_data": job.TemplateData,
		"error_reason":  reason,
		"failed_at":     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return w.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "reminder_job",
		AggregateID:   job.BookingID,
		EventType:     "notify.reminder.dlq.v1",
		Payload:       payload,
	})
}

func (w *Worker) enqueueSentEvent(ctx context.Context, tx pgx.Tx, job Job) error {
	providerID := "smtp"
	if strings.EqualFold(job.Channel, "sms") {
		providerID = w.sms.ProviderID()
	}
	payload, err := json.Marshal(map[string]any{
		"booking_id":  job.BookingID,
		"host_id":     job.HostID,
		"channel":     job.Channel,
		"provider_id": providerID,
		"sent_at":     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return w.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "reminder_job",
		AggregateID:   job.BookingID,
		EventType:     "notify.reminder.sent.v1",
		Payload:       payload,
	})
}

func renderReminder(job Job) (subject, body string) {
	title, _ := job.TemplateData["event_title"].(string)
	name, _ := job.TemplateData["attendee_name"].(string)
	startRaw, _ := job.TemplateData["start_time"].(string)
	tz, _ := job.TemplateData["timezone"].(string)

	when := startRaw
	if start, err := time.Parse(time.RFC3339, startRaw); err == nil {
		loc := time.UTC
		if tz != "" {
			if l, err := time.LoadLocation(tz); err == nil {
				loc = l
			}
		}
		when = start.In(loc).Format("Mon, 02 Jan 2006 15:04 MST")
	}

	if title == "" {
		title = "your booking"
	}
	subject = fmt.Sprintf("Reminder: %s", title)
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	body = fmt.Sprintf("%s,\n\nThis is a reminder for %s on %s.\n", greeting, title, when)
	return subject, body
}
