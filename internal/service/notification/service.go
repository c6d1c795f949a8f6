package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/olegtsov/notify-dispatcher/internal/breaker"
	"github.com/olegtsov/notify-dispatcher/internal/model"
	"github.com/olegtsov/notify-dispatcher/internal/status"
)

// brokerDependency names the broker in the circuit-breaker registry.
const brokerDependency = "rabbitmq"

var (
	// ErrInvalidChannel rejects submissions for channels the pipeline
	// does not deliver to.
	ErrInvalidChannel = errors.New("invalid channel")

	// ErrBrokerUnavailable is returned when the publish path is down,
	// either because the broker rejected the publish or because its
	// circuit is open.
	ErrBrokerUnavailable = errors.New("broker unavailable")

	// ErrStatusNotFound is returned for status queries with no record,
	// including records that expired.
	ErrStatusNotFound = errors.New("notification status not found")
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

type notificationPublisher interface {
	Publish(ctx context.Context, msg model.NotificationMessage) error
}

type queueInspector interface {
	Depths() (map[string]int, error)
}

type recipientResolver interface {
	Resolve(ctx context.Context, userID string, channel model.Channel) (string, error)
}

type statusTracker interface {
	Reserve(ctx context.Context, idemKey string, rec model.StatusRecord) (bool, error)
	Release(ctx context.Context, idemKey string, rec model.StatusRecord) error
	GetByIdemKey(ctx context.Context, idemKey string) (model.StatusRecord, error)
	GetByRequestID(ctx context.Context, requestID string) (model.StatusRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.StatusRecord, error)
}

type breakerRegistry interface {
	Do(ctx context.Context, name string, fn func(ctx context.Context) error) error
	Snapshot() []breaker.Status
}

// SubmitRequest is an accepted front-door submission after transport-level
// validation.
type SubmitRequest struct {
	Channel      string
	UserID       string
	TemplateCode string
	Variables    map[string]string
	RequestID    string
	Priority     int
}

// Metrics is the introspection payload for operators.
type Metrics struct {
	Queues   map[string]int   `json:"queues"`
	Breakers []breaker.Status `json:"breakers"`
}

// Service is the front door of the pipeline: it validates submissions,
// deduplicates them, resolves recipients and publishes messages through
// the broker's circuit breaker.
type Service struct {
	queue     notificationPublisher
	inspector queueInspector
	resolver  recipientResolver
	tracker   statusTracker
	breakers  breakerRegistry
}

// NewService wires the publish path.
func NewService(
	queue notificationPublisher,
	inspector queueInspector,
	resolver recipientResolver,
	tracker statusTracker,
	breakers breakerRegistry,
) *Service {
	return &Service{
		queue:     queue,
		inspector: inspector,
		resolver:  resolver,
		tracker:   tracker,
		breakers:  breakers,
	}
}

// Submit enqueues a notification for delivery. Repeated submissions with
// the same idempotency key return the first submission's record without
// publishing again. A failed publish leaves no state behind.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (model.StatusRecord, error) {
	channel := model.Channel(req.Channel)
	if !channel.Valid() {
		return model.StatusRecord{}, fmt.Errorf("%w: %q", ErrInvalidChannel, req.Channel)
	}

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	idemKey := model.IdempotencyKey(req.UserID, channel, req.TemplateCode, requestID)

	// Fast path for duplicate submissions.
	if existing, err := s.tracker.GetByIdemKey(ctx, idemKey); err == nil {
		return existing, nil
	} else if !errors.Is(err, status.ErrNotFound) {
		return model.StatusRecord{}, fmt.Errorf("check idempotency key: %w", err)
	}

	address, err := s.resolver.Resolve(ctx, req.UserID, channel)
	if err != nil {
		return model.StatusRecord{}, fmt.Errorf("resolve recipient: %w", err)
	}

	now := time.Now().UTC()
	msg := model.NotificationMessage{
		NotificationID: uuid.New(),
		RequestID:      requestID,
		Channel:        channel,
		UserID:         req.UserID,
		Recipient:      address,
		TemplateCode:   req.TemplateCode,
		Variables:      req.Variables,
		Priority:       req.Priority,
		RetryCount:     0,
		CreatedAt:      now,
	}

	rec := model.StatusRecord{
		NotificationID: msg.NotificationID,
		RequestID:      requestID,
		Status:         model.StatusQueued,
		UpdatedAt:      now,
	}

	// Atomic reservation: concurrent first-submits race on a single
	// conditional write, the loser returns the winner's record.
	reserved, err := s.tracker.Reserve(ctx, idemKey, rec)
	if err != nil {
		return model.StatusRecord{}, fmt.Errorf("reserve status record: %w", err)
	}
	if !reserved {
		existing, err := s.tracker.GetByIdemKey(ctx, idemKey)
		if err != nil {
			return model.StatusRecord{}, fmt.Errorf("load existing status record: %w", err)
		}
		return existing, nil
	}

	err = s.breakers.Do(ctx, brokerDependency, func(ctx context.Context) error {
		return s.queue.Publish(ctx, msg)
	})
	if err != nil {
		if relErr := s.tracker.Release(ctx, idemKey, rec); relErr != nil {
			zlog.Logger.Error().Err(relErr).
				Str("notification_id", msg.NotificationID.String()).
				Msg("failed to release status reservation")
		}
		return model.StatusRecord{}, fmt.Errorf("%w: %s", ErrBrokerUnavailable, err)
	}

	return rec, nil
}

// Status looks a notification up by notification id or client request id.
func (s *Service) Status(ctx context.Context, id string) (model.StatusRecord, error) {
	var (
		rec model.StatusRecord
		err error
	)

	if parsed, parseErr := uuid.Parse(id); parseErr == nil {
		rec, err = s.tracker.GetByID(ctx, parsed)
	} else {
		rec, err = s.tracker.GetByRequestID(ctx, id)
	}

	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return model.StatusRecord{}, ErrStatusNotFound
		}
		return model.StatusRecord{}, fmt.Errorf("get notification status: %w", err)
	}
	return rec, nil
}

// Metrics reports queue depths and circuit-breaker states.
func (s *Service) Metrics(ctx context.Context) (Metrics, error) {
	var depths map[string]int
	err := s.breakers.Do(ctx, brokerDependency, func(context.Context) error {
		var err error
		depths, err = s.inspector.Depths()
		return err
	})
	if err != nil {
		return Metrics{}, fmt.Errorf("%w: %s", ErrBrokerUnavailable, err)
	}

	return Metrics{
		Queues:   depths,
		Breakers: s.breakers.Snapshot(),
	}, nil
}
