package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	mocks "github.com/olegtsov/notify-dispatcher/internal/mocks/worker"
	"github.com/olegtsov/notify-dispatcher/internal/model"
)

func TestConsumer_Run_DispatchesDeliveries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMocknotificationConsumer(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)

	c := NewConsumer(mockQueue, mockHandler, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deliveries := make(chan amqp.Delivery, 2)
	deliveries <- amqp.Delivery{DeliveryTag: 1}
	deliveries <- amqp.Delivery{DeliveryTag: 2}

	mockQueue.EXPECT().Consume(model.ChannelEmail, "dispatcher-email").
		Return((<-chan amqp.Delivery)(deliveries), nil).
		AnyTimes()

	var mu sync.Mutex
	handled := make(map[uint64]bool)
	mockHandler.EXPECT().HandleMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d amqp.Delivery) {
			mu.Lock()
			handled[d.DeliveryTag] = true
			mu.Unlock()
		},
	).Times(2)

	go c.Run(ctx, model.ChannelEmail, 2)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return handled[1] && handled[2]
	}, time.Second, 10*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestConsumer_Run_ResubscribesAfterStreamClose(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMocknotificationConsumer(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)

	c := NewConsumer(mockQueue, mockHandler, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First subscription delivers one message then closes; the loop must
	// come back for a second one.
	first := make(chan amqp.Delivery, 1)
	first <- amqp.Delivery{DeliveryTag: 1}
	close(first)

	second := make(chan amqp.Delivery)

	gomock.InOrder(
		mockQueue.EXPECT().Consume(model.ChannelPush, "dispatcher-push").
			Return((<-chan amqp.Delivery)(first), nil),
		mockQueue.EXPECT().Consume(model.ChannelPush, "dispatcher-push").
			DoAndReturn(func(model.Channel, string) (<-chan amqp.Delivery, error) {
				return second, nil
			}).
			AnyTimes(),
	)

	done := make(chan struct{})
	mockHandler.EXPECT().HandleMessage(gomock.Any(), gomock.Any()).Do(
		func(context.Context, amqp.Delivery) { close(done) },
	)

	go c.Run(ctx, model.ChannelPush, 1)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("message was not handled")
	}

	time.Sleep(20 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestConsumer_Run_RetriesFailedSubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMocknotificationConsumer(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)

	c := NewConsumer(mockQueue, mockHandler, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deliveries := make(chan amqp.Delivery)

	subscribed := make(chan struct{})
	gomock.InOrder(
		mockQueue.EXPECT().Consume(model.ChannelEmail, "dispatcher-email").
			Return(nil, errors.New("broker down")),
		mockQueue.EXPECT().Consume(model.ChannelEmail, "dispatcher-email").
			DoAndReturn(func(model.Channel, string) (<-chan amqp.Delivery, error) {
				close(subscribed)
				return deliveries, nil
			}),
	)

	go c.Run(ctx, model.ChannelEmail, 1)

	select {
	case <-subscribed:
	case <-time.After(time.Second):
		t.Fatal("consumer did not resubscribe after error")
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
}

func TestConsumer_Run_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueue := mocks.NewMocknotificationConsumer(ctrl)
	mockHandler := mocks.NewMockmessageHandler(ctrl)

	c := NewConsumer(mockQueue, mockHandler, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	deliveries := make(chan amqp.Delivery)
	mockQueue.EXPECT().Consume(model.ChannelEmail, "dispatcher-email").
		Return((<-chan amqp.Delivery)(deliveries), nil).
		AnyTimes()

	stopped := make(chan struct{})
	go func() {
		c.Run(ctx, model.ChannelEmail, 2)
		close(stopped)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("consumer did not stop on context cancel")
	}
}
