package retry

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocks "github.com/olegtsov/notify-dispatcher/internal/mocks/retry"
	"github.com/olegtsov/notify-dispatcher/internal/model"
)

func testMessage(retryCount int) model.NotificationMessage {
	return model.NotificationMessage{
		NotificationID: uuid.New(),
		RequestID:      "r1",
		Channel:        model.ChannelEmail,
		UserID:         "u1",
		Recipient:      "user@example.com",
		TemplateCode:   "welcome",
		RetryCount:     retryCount,
		CreatedAt:      time.Now(),
	}
}

func TestScheduler_ShouldRetry(t *testing.T) {
	s := NewScheduler(Config{MaxRetries: 3, BaseDelay: time.Second}, nil)

	assert.True(t, s.ShouldRetry(testMessage(0)))
	assert.True(t, s.ShouldRetry(testMessage(2)))
	assert.False(t, s.ShouldRetry(testMessage(3)))
	assert.False(t, s.ShouldRetry(testMessage(4)))
}

func TestScheduler_NextDelayDoublesPerAttempt(t *testing.T) {
	s := NewScheduler(Config{MaxRetries: 5, BaseDelay: time.Second, MaxDelay: time.Hour}, nil)

	assert.Equal(t, 1*time.Second, s.NextDelay(0))
	assert.Equal(t, 2*time.Second, s.NextDelay(1))
	assert.Equal(t, 4*time.Second, s.NextDelay(2))
	assert.Equal(t, 8*time.Second, s.NextDelay(3))
}

func TestScheduler_NextDelayIsCapped(t *testing.T) {
	s := NewScheduler(Config{MaxRetries: 10, BaseDelay: time.Second, MaxDelay: 3 * time.Second}, nil)

	assert.Equal(t, 3*time.Second, s.NextDelay(5))
}

func TestScheduler_ScheduleRetryRepublishesAfterDelay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queueMock := mocks.NewMockpublisher(ctrl)
	s := NewScheduler(Config{MaxRetries: 3, BaseDelay: 20 * time.Millisecond, MaxDelay: time.Second}, queueMock)

	msg := testMessage(0)

	published := make(chan model.NotificationMessage, 1)
	queueMock.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, m model.NotificationMessage) error {
			published <- m
			return nil
		},
	)

	start := time.Now()
	updated, err := s.ScheduleRetry(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, 1, updated.RetryCount)
	assert.False(t, updated.ScheduledFor.IsZero())

	select {
	case got := <-published:
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
		assert.Equal(t, msg.NotificationID, got.NotificationID)
		assert.Equal(t, 1, got.RetryCount)
	case <-time.After(time.Second):
		t.Fatal("retry was not republished")
	}

	s.Wait()
}

func TestScheduler_ScheduleRetryExhausted(t *testing.T) {
	s := NewScheduler(Config{MaxRetries: 3, BaseDelay: time.Millisecond}, nil)

	msg := testMessage(3)
	_, err := s.ScheduleRetry(context.Background(), msg)
	assert.ErrorIs(t, err, ErrRetriesExhausted)
}

func TestScheduler_PendingRetryDroppedOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queueMock := mocks.NewMockpublisher(ctrl)
	s := NewScheduler(Config{MaxRetries: 3, BaseDelay: time.Hour}, queueMock)

	ctx, cancel := context.WithCancel(context.Background())

	_, err := s.ScheduleRetry(ctx, testMessage(0))
	require.NoError(t, err)

	// Cancelling before the timer fires must release the goroutine without
	// publishing anything.
	cancel()
	s.Wait()
}
