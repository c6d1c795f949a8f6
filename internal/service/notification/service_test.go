package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegtsov/notify-dispatcher/internal/breaker"
	mocks "github.com/olegtsov/notify-dispatcher/internal/mocks/service/notification"
	"github.com/olegtsov/notify-dispatcher/internal/model"
	"github.com/olegtsov/notify-dispatcher/internal/repository/recipient"
	"github.com/olegtsov/notify-dispatcher/internal/status"
)

type serviceMocks struct {
	queue     *mocks.MocknotificationPublisher
	inspector *mocks.MockqueueInspector
	resolver  *mocks.MockrecipientResolver
	tracker   *mocks.MockstatusTracker
	breakers  *mocks.MockbreakerRegistry
}

func setupService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := serviceMocks{
		queue:     mocks.NewMocknotificationPublisher(ctrl),
		inspector: mocks.NewMockqueueInspector(ctrl),
		resolver:  mocks.NewMockrecipientResolver(ctrl),
		tracker:   mocks.NewMockstatusTracker(ctrl),
		breakers:  mocks.NewMockbreakerRegistry(ctrl),
	}

	svc := NewService(m.queue, m.inspector, m.resolver, m.tracker, m.breakers)
	return svc, m
}

// passThroughBreaker makes the mocked registry invoke the guarded call.
func passThroughBreaker(m serviceMocks) {
	m.breakers.EXPECT().Do(gomock.Any(), "rabbitmq", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
}

func submitRequest() SubmitRequest {
	return SubmitRequest{
		Channel:      "email",
		UserID:       "u1",
		TemplateCode: "welcome",
		Variables:    map[string]string{"name": "Alice"},
		RequestID:    "r1",
	}
}

func TestService_Submit_Success(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	idemKey := model.IdempotencyKey("u1", model.ChannelEmail, "welcome", "r1")

	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).
		Return(model.StatusRecord{}, status.ErrNotFound)
	m.resolver.EXPECT().Resolve(gomock.Any(), "u1", model.ChannelEmail).
		Return("user@example.com", nil)
	m.tracker.EXPECT().Reserve(gomock.Any(), idemKey, gomock.Any()).Return(true, nil)
	passThroughBreaker(m)

	var published model.NotificationMessage
	m.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msg model.NotificationMessage) error {
			published = msg
			return nil
		},
	)

	rec, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.StatusQueued, rec.Status)
	assert.Equal(t, "r1", rec.RequestID)
	assert.NotEqual(t, uuid.Nil, rec.NotificationID)

	assert.Equal(t, rec.NotificationID, published.NotificationID)
	assert.Equal(t, "user@example.com", published.Recipient)
	assert.Equal(t, 0, published.RetryCount)
	assert.False(t, published.CreatedAt.IsZero())
}

func TestService_Submit_InvalidChannel(t *testing.T) {
	svc, _ := setupService(t)

	req := submitRequest()
	req.Channel = "fax"

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestService_Submit_DuplicateReturnsExistingRecord(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	idemKey := model.IdempotencyKey("u1", model.ChannelEmail, "welcome", "r1")

	existing := model.StatusRecord{
		NotificationID: uuid.New(),
		RequestID:      "r1",
		Status:         model.StatusSent,
		UpdatedAt:      time.Now().UTC(),
	}

	// No resolve, reserve or publish happens for a duplicate.
	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).Return(existing, nil)

	rec, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, existing, rec)
}

func TestService_Submit_LostReservationRace(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	idemKey := model.IdempotencyKey("u1", model.ChannelEmail, "welcome", "r1")

	winner := model.StatusRecord{
		NotificationID: uuid.New(),
		RequestID:      "r1",
		Status:         model.StatusQueued,
	}

	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).
		Return(model.StatusRecord{}, status.ErrNotFound)
	m.resolver.EXPECT().Resolve(gomock.Any(), "u1", model.ChannelEmail).
		Return("user@example.com", nil)
	m.tracker.EXPECT().Reserve(gomock.Any(), idemKey, gomock.Any()).Return(false, nil)
	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).Return(winner, nil)

	rec, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, winner, rec)
}

func TestService_Submit_UnknownRecipient(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	idemKey := model.IdempotencyKey("u1", model.ChannelEmail, "welcome", "r1")

	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).
		Return(model.StatusRecord{}, status.ErrNotFound)
	m.resolver.EXPECT().Resolve(gomock.Any(), "u1", model.ChannelEmail).
		Return("", recipient.ErrRecipientNotFound)

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, recipient.ErrRecipientNotFound)
}

func TestService_Submit_PublishFailureReleasesReservation(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	idemKey := model.IdempotencyKey("u1", model.ChannelEmail, "welcome", "r1")

	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).
		Return(model.StatusRecord{}, status.ErrNotFound)
	m.resolver.EXPECT().Resolve(gomock.Any(), "u1", model.ChannelEmail).
		Return("user@example.com", nil)
	m.tracker.EXPECT().Reserve(gomock.Any(), idemKey, gomock.Any()).Return(true, nil)
	passThroughBreaker(m)
	m.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
	m.tracker.EXPECT().Release(gomock.Any(), idemKey, gomock.Any()).Return(nil)

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
}

func TestService_Submit_OpenCircuitShortCircuits(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	idemKey := model.IdempotencyKey("u1", model.ChannelEmail, "welcome", "r1")

	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), idemKey).
		Return(model.StatusRecord{}, status.ErrNotFound)
	m.resolver.EXPECT().Resolve(gomock.Any(), "u1", model.ChannelEmail).
		Return("user@example.com", nil)
	m.tracker.EXPECT().Reserve(gomock.Any(), idemKey, gomock.Any()).Return(true, nil)

	// The breaker rejects without invoking the publish at all.
	m.breakers.EXPECT().Do(gomock.Any(), "rabbitmq", gomock.Any()).Return(breaker.ErrOpen)
	m.tracker.EXPECT().Release(gomock.Any(), idemKey, gomock.Any()).Return(nil)

	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrBrokerUnavailable)
}

func TestService_Submit_GeneratesRequestID(t *testing.T) {
	svc, m := setupService(t)
	req := submitRequest()
	req.RequestID = ""

	m.tracker.EXPECT().GetByIdemKey(gomock.Any(), gomock.Any()).
		Return(model.StatusRecord{}, status.ErrNotFound)
	m.resolver.EXPECT().Resolve(gomock.Any(), "u1", model.ChannelEmail).
		Return("user@example.com", nil)
	m.tracker.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	passThroughBreaker(m)
	m.queue.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	rec, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.RequestID)
}

func TestService_Status_ByNotificationID(t *testing.T) {
	svc, m := setupService(t)

	id := uuid.New()
	rec := model.StatusRecord{NotificationID: id, Status: model.StatusSent}

	m.tracker.EXPECT().GetByID(gomock.Any(), id).Return(rec, nil)

	got, err := svc.Status(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestService_Status_ByRequestID(t *testing.T) {
	svc, m := setupService(t)

	rec := model.StatusRecord{RequestID: "r1", Status: model.StatusRetrying, RetryCount: 2}
	m.tracker.EXPECT().GetByRequestID(gomock.Any(), "r1").Return(rec, nil)

	got, err := svc.Status(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestService_Status_NotFound(t *testing.T) {
	svc, m := setupService(t)

	m.tracker.EXPECT().GetByRequestID(gomock.Any(), "missing").
		Return(model.StatusRecord{}, status.ErrNotFound)

	_, err := svc.Status(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStatusNotFound)
}

func TestService_Metrics(t *testing.T) {
	svc, m := setupService(t)

	depths := map[string]int{"notify.email": 3, "notify.push": 0, "notify.failed": 1}
	snapshot := []breaker.Status{{Name: "rabbitmq", State: "closed"}}

	m.breakers.EXPECT().Do(gomock.Any(), "rabbitmq", gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		},
	)
	m.inspector.EXPECT().Depths().Return(depths, nil)
	m.breakers.EXPECT().Snapshot().Return(snapshot)

	got, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, depths, got.Queues)
	assert.Equal(t, snapshot, got.Breakers)
}
