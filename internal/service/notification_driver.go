package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/campuskit/school-api/internal/models"
	"github.com/campuskit/school-api/internal/repository"
	"github.com/campuskit/school-api/internal/utils"
)

// NotificationDriver delivers persisted notification rows. Implementations are
// chosen once at startup.
type NotificationDriver interface {
	Name() string
	Deliver(ctx context.Context, rows []models.Notification) error
}

// Pusher dispatches a notification to concrete device tokens. The push
// transport itself is an external collaborator.
type Pusher interface {
	Push(ctx context.Context, devices []models.DeviceToken, notification models.Notification) error
}

// syncDriver delivers inline and best-effort: delivery failures are logged and
// never fail the originating request.
type syncDriver struct {
	devices repository.DeviceRepository
	pusher  Pusher
	logger  zerolog.Logger
}

// NewSyncDriver constructs the inline delivery driver.
func NewSyncDriver(devices repository.DeviceRepository, pusher Pusher, logger zerolog.Logger) NotificationDriver {
	return &syncDriver{
		devices: devices,
		pusher:  pusher,
		logger:  logger.With().Str("component", "notification_sync_driver").Logger(),
	}
}

func (d *syncDriver) Name() string { return "sync" }

func (d *syncDriver) Deliver(ctx context.Context, rows []models.Notification) error {
	if d.pusher == nil {
		return nil
	}

	for _, row := range rows {
		devices, err := d.devices.ListValidForRecipient(ctx, row.RecipientType, row.RecipientID)
		if err != nil {
			d.logger.Error().Err(err).Uint("notification_id", row.ID).Msg("failed to resolve devices")
			continue
		}
		if len(devices) == 0 {
			continue
		}

		if err := d.pusher.Push(ctx, devices, row); err != nil {
			d.logger.Error().Err(err).Uint("notification_id", row.ID).Msg("push delivery failed")
		}
	}

	return nil
}

// queueDriver enqueues rows on NATS for an out-of-process dispatcher. A
// publish failure fails the whole request.
type queueDriver struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewQueueDriver constructs the queue-backed delivery driver.
func NewQueueDriver(conn *nats.Conn, subject string, logger zerolog.Logger) NotificationDriver {
	if subject == "" {
		subject = "notifications.dispatch"
	}
	return &queueDriver{
		conn:    conn,
		subject: subject,
		logger:  logger.With().Str("component", "notification_queue_driver").Logger(),
	}
}

func (d *queueDriver) Name() string { return "queue" }

func (d *queueDriver) Deliver(ctx context.Context, rows []models.Notification) error {
	if d.conn == nil || !d.conn.IsConnected() {
		d.logger.Error().Msg("notification queue unavailable")
		return utils.ErrInternal()
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode notification batch: %w", err)
	}

	if err := d.conn.Publish(d.subject, payload); err != nil {
		d.logger.Error().Err(err).Str("subject", d.subject).Msg("failed to enqueue notifications")
		return utils.ErrInternal()
	}

	return nil
}

// LogPusher is the default push dispatcher: it records intended deliveries so
// the sync driver stays observable without an external push service.
type LogPusher struct {
	Logger zerolog.Logger
}

// Push logs the delivery intent for each device batch.
func (p LogPusher) Push(_ context.Context, devices []models.DeviceToken, notification models.Notification) error {
	p.Logger.Info().
		Int("devices", len(devices)).
		Uint("notification_id", notification.ID).
		Str("recipient_type", notification.RecipientType).
		Msg("push dispatched")
	return nil
}
