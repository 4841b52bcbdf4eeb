package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/slotwise/slotwise/libs/config"
	"github.com/slotwise/slotwise/libs/db"
	"github.com/slotwise/slotwise/libs/httpx"
	"github.com/slotwise/slotwise/libs/kafkax"
	otelx "github.com/slotwise/slotwise/libs/otel"
	"github.com/slotwise/slotwise/libs/runtime"
	"github.com/slotwise/slotwise/services/notify-service/internal/consumer"
	"github.com/slotwise/slotwise/services/notify-service/internal/email"
	"github.com/slotwise/slotwise/services/notify-service/internal/inbox"
	"github.com/slotwise/slotwise/services/notify-service/internal/jobs"
	"github.com/slotwise/slotwise/services/notify-service/internal/sms"
	"github.com/slotwise/slotwise/services/notify-service/internal/storage"

	"github.com/slotwise/slotwise/services/notify-service/internal/outbox"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type reminderPayload struct {
	BookingID    string         `json:"booking_id"`
	HostID       string         `json:"host_id"`
	Channel      string         `json:"channel"`
	Recipient    string         `json:"recipient"`
	RemindAt     string         `json:"remind_at"`
	TemplateData map[string]any `json:"template_data"`
}

type bookingPayload struct {
	BookingID     string `json:"booking_id"`
	EventTypeID   string `json:"event_type_id"`
	HostID        string `json:"host_id"`
	Title         string `json:"title"`
	AttendeeName  string `json:"attendee_name"`
	AttendeeEmail string `json:"attendee_email"`
	StartTime     string `json:"start_time"`
}

func main() {
	service := config.String("SERVICE_NAME", "notify-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	inboxRepo := inbox.NewRepository(pool)
	jobsRepo := jobs.NewRepository()
	notificationsRepo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	emailSender := email.NewSMTPSender(
		config.String("SMTP_HOST", "mailpit"),
		config.String("SMTP_PORT", "1025"),
		config.String("SMTP_FROM", "no-reply@slotwise.local"),
	)

	var smsSender sms.Sender
	switch strings.ToLower(config.String("SMS_PROVIDER", "noop")) {
	case "webhook":
		smsSender = sms.NewWebhookSender(config.String("SMS_WEBHOOK_URL", ""), config.String("SMS_WEBHOOK_TOKEN", ""))
	default:
		smsSender = sms.NewNoopSender()
	}

	worker := jobs.NewWorker(pool, jobsRepo, outboxRepo, notificationsRepo, emailSender, smsSender, logger, jobs.WorkerConfig{
		Interval:  time.Duration(config.Int("WORKER_INTERVAL_SECONDS", 2)) * time.Second,
		BatchSize: config.Int("WORKER_BATCH_SIZE", 50),
		Backoff:   time.Duration(config.Int("WORKER_BACKOFF_SECONDS", 60)) * time.Second,
	})
	go worker.Run(ctx)

	brokers := config.String("KAFKA_BROKERS", "")
	groupID := config.String("KAFKA_GROUP_ID", "notify-service")

	reminderConsumer := consumer.New(logger, inboxRepo, consumer.Config{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   "booking.reminder.requested.v1",
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload reminderPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid reminder payload", "err", err)
			return nil
		}
		if payload.BookingID == "" || payload.Channel == "" || payload.Recipient == "" {
			logger.Error("missing reminder fields", "booking_id", payload.BookingID)
			return nil
		}
		remindAt, err := time.Parse(time.RFC3339, payload.RemindAt)
		if err != nil {
			logger.Error("invalid remind_at", "err", err, "booking_id", payload.BookingID)
			return nil
		}

		meta := kafkax.ExtractEventMeta(msg)
		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()
		if err := jobsRepo.Insert(ctx, tx, jobs.Job{
			IdempotencyKey: meta.EventID,
			BookingID:      payload.BookingID,
			HostID:         payload.HostID,
			Channel:        payload.Channel,
			Recipient:      payload.Recipient,
			RemindAt:       remindAt,
			TemplateData:   payload.TemplateData,
		}); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	go reminderConsumer.Run(ctx)

	confirmedConsumer := consumer.New(logger, inboxRepo, consumer.Config{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   "booking.confirmed.v1",
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload bookingPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid booking payload", "err", err)
			return nil
		}
		// Stripe-confirmed bookings publish without attendee details; their
		// reminders are scheduled by the webhook path instead.
		if payload.AttendeeEmail == "" {
			return nil
		}

		subject := fmt.Sprintf("Booking confirmed: %s", payload.Title)
		body := fmt.Sprintf("Hi %s,\n\nYour booking for %s at %s is confirmed.\n",
			payload.AttendeeName, payload.Title, payload.StartTime)
		status := "sent"
		if err := emailSender.Send(email.Message{
			To:        payload.AttendeeEmail,
			Subject:   subject,
			Body:      body,
			BookingID: payload.BookingID,
		}); err != nil {
			logger.Error("confirmation email failed", "err", err, "booking_id", payload.BookingID)
			status = "failed"
		}
		return notificationsRepo.Insert(ctx, storage.Notification{
			BookingID: payload.BookingID,
			HostID:    payload.HostID,
			Channel:   "email",
			Recipient: payload.AttendeeEmail,
			Payload:   map[string]any{"kind": "confirmation", "title": payload.Title},
			Status:    status,
		})
	})
	go confirmedConsumer.Run(ctx)

	cancelledConsumer := consumer.New(logger, inboxRepo, consumer.Config{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   "booking.cancelled.v1",
	}, func(ctx context.Context, msg kafka.Message) error {
		var payload bookingPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			logger.Error("invalid booking payload", "err", err)
			return nil
		}
		if payload.BookingID == "" {
			return nil
		}
		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()
		if err := jobsRepo.DeleteForBooking(ctx, tx, payload.BookingID); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}
		logger.Info("pending reminders dropped", "booking_id", payload.BookingID)
		return nil
	})
	go cancelledConsumer.Run(ctx)

	runHTTP(ctx, logger, pool, port)
}

func runHTTP(ctx context.Context, logger *slog.Logger, pool *db.Pool, port string) {
	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notify")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}
