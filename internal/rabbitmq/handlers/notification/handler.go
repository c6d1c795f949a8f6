package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/zlog"

	"github.com/olegtsov/notify-dispatcher/internal/model"
	"github.com/olegtsov/notify-dispatcher/internal/status"
)

// Interfaces over the collaborators the handler drives. Rendering and
// delivery are external capabilities; the handler only classifies their
// outcomes.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/notification/mock.go -package=mocks
type statusTracker interface {
	GetByIdemKey(ctx context.Context, idemKey string) (model.StatusRecord, error)
	Set(ctx context.Context, idemKey string, rec model.StatusRecord) error
}

type renderer interface {
	Render(templateCode string, variables map[string]string) (model.Rendered, error)
}

type Transport interface {
	Deliver(ctx context.Context, address string, rendered model.Rendered) (string, error)
}

type retryScheduler interface {
	ShouldRetry(msg model.NotificationMessage) bool
	ScheduleRetry(ctx context.Context, msg model.NotificationMessage) (model.NotificationMessage, error)
}

// Handler processes one delivery at a time: idempotency check, render,
// deliver, then exactly one of ack, retry+ack, or nack. A nack without
// requeue routes the message to the failure queue.
type Handler struct {
	tracker    statusTracker
	renderer   renderer
	transports map[model.Channel]Transport
	scheduler  retryScheduler
}

// NewHandler creates a message handler with one transport per channel.
func NewHandler(
	tracker statusTracker,
	r renderer,
	transports map[model.Channel]Transport,
	scheduler retryScheduler,
) *Handler {
	return &Handler{
		tracker:    tracker,
		renderer:   r,
		transports: transports,
		scheduler:  scheduler,
	}
}

// HandleMessage consumes a single delivery. Every path ends in an ack or a
// nack so a stuck message can never pin the prefetch window; a panic in a
// collaborator is swallowed into a nack.
func (h *Handler) HandleMessage(ctx context.Context, d amqp.Delivery) {
	settled := false
	defer func() {
		if r := recover(); r != nil {
			zlog.Logger.Error().Interface("panic", r).Msg("handler panicked, rejecting message")
			if !settled {
				nack(d)
			}
		}
	}()

	var msg model.NotificationMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		// Malformed bodies can never succeed; straight to the failure queue.
		zlog.Logger.Error().Err(err).Msg("malformed message body, rejecting")
		settled = true
		nack(d)
		return
	}

	if err := msg.Validate(); err != nil {
		zlog.Logger.Error().Err(err).
			Str("notification_id", msg.NotificationID.String()).
			Msg("invalid message, rejecting")
		settled = true
		nack(d)
		return
	}

	idemKey := msg.IdempotencyKey()

	// At-least-once redelivery guard: a notification already sent is
	// acknowledged and discarded.
	rec, err := h.tracker.GetByIdemKey(ctx, idemKey)
	if err != nil && !errors.Is(err, status.ErrNotFound) {
		zlog.Logger.Warn().Err(err).
			Str("notification_id", msg.NotificationID.String()).
			Msg("idempotency check failed, proceeding with delivery")
	}
	if err == nil && rec.Status == model.StatusSent {
		zlog.Logger.Info().
			Str("notification_id", msg.NotificationID.String()).
			Msg("duplicate delivery, already sent")
		settled = true
		ack(d)
		return
	}

	deliveryID, err := h.deliver(ctx, msg)
	if err == nil {
		h.setStatus(ctx, idemKey, model.StatusRecord{
			NotificationID: msg.NotificationID,
			RequestID:      msg.RequestID,
			Status:         model.StatusSent,
			RetryCount:     msg.RetryCount,
			DeliveryID:     deliveryID,
			UpdatedAt:      nowUTC(),
		})
		settled = true
		ack(d)
		return
	}

	zlog.Logger.Warn().Err(err).
		Str("notification_id", msg.NotificationID.String()).
		Str("channel", string(msg.Channel)).
		Int("retry_count", msg.RetryCount).
		Msg("delivery failed")

	if h.scheduler.ShouldRetry(msg) {
		updated, schedErr := h.scheduler.ScheduleRetry(ctx, msg)
		if schedErr == nil {
			h.setStatus(ctx, idemKey, model.StatusRecord{
				NotificationID: msg.NotificationID,
				RequestID:      msg.RequestID,
				Status:         model.StatusRetrying,
				Error:          err.Error(),
				RetryCount:     updated.RetryCount,
				UpdatedAt:      nowUTC(),
			})
			// The retry is a distinct re-publish; this delivery is done.
			settled = true
			ack(d)
			return
		}
		zlog.Logger.Error().Err(schedErr).
			Str("notification_id", msg.NotificationID.String()).
			Msg("failed to schedule retry")
	}

	h.setStatus(ctx, idemKey, model.StatusRecord{
		NotificationID: msg.NotificationID,
		RequestID:      msg.RequestID,
		Status:         model.StatusFailed,
		Error:          err.Error(),
		RetryCount:     msg.RetryCount,
		UpdatedAt:      nowUTC(),
	})
	settled = true
	nack(d)
}

func (h *Handler) deliver(ctx context.Context, msg model.NotificationMessage) (string, error) {
	rendered, err := h.renderer.Render(msg.TemplateCode, msg.Variables)
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", msg.TemplateCode, err)
	}

	t, ok := h.transports[msg.Channel]
	if !ok {
		return "", fmt.Errorf("no transport for channel %s", msg.Channel)
	}

	deliveryID, err := t.Deliver(ctx, msg.Recipient, rendered)
	if err != nil {
		return "", fmt.Errorf("deliver via %s: %w", msg.Channel, err)
	}
	return deliveryID, nil
}

func (h *Handler) setStatus(ctx context.Context, idemKey string, rec model.StatusRecord) {
	if err := h.tracker.Set(ctx, idemKey, rec); err != nil {
		zlog.Logger.Error().Err(err).
			Str("notification_id", rec.NotificationID.String()).
			Str("status", rec.Status).
			Msg("failed to update status record")
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func ack(d amqp.Delivery) {
	if err := d.Ack(false); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to ack message")
	}
}

func nack(d amqp.Delivery) {
	if err := d.Nack(false, false); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to nack message")
	}
}
