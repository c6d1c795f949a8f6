package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/zlog"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

//go:generate mockgen -source=notifier.go -destination=../mocks/worker/mock.go -package=mocks
type notificationConsumer interface {
	Consume(channel model.Channel, consumerTag string) (<-chan amqp.Delivery, error)
}

type messageHandler interface {
	HandleMessage(ctx context.Context, d amqp.Delivery)
}

// Consumer runs the per-channel worker pool. Each worker pulls deliveries
// from the shared subscription; the broker's prefetch window bounds how
// many messages are in flight at once. When the subscription dies the pool
// drains and the loop resubscribes, so a broker restart does not kill the
// process.
type Consumer struct {
	queue            notificationConsumer
	handler          messageHandler
	resubscribePause time.Duration
}

// NewConsumer creates a consumer loop over a queue subscription.
func NewConsumer(q notificationConsumer, h messageHandler, resubscribePause time.Duration) *Consumer {
	if resubscribePause <= 0 {
		resubscribePause = 5 * time.Second
	}
	return &Consumer{queue: q, handler: h, resubscribePause: resubscribePause}
}

// Run consumes a channel's queue with workerCount workers until ctx is
// cancelled. In-flight handlers finish their ack/nack decision before Run
// returns.
func (c *Consumer) Run(ctx context.Context, channel model.Channel, workerCount int) {
	if workerCount <= 0 {
		workerCount = 1
	}

	for {
		if ctx.Err() != nil {
			zlog.Logger.Printf("%s consumer stopped", channel)
			return
		}

		deliveries, err := c.queue.Consume(channel, fmt.Sprintf("dispatcher-%s", channel))
		if err != nil {
			zlog.Logger.Error().Err(err).
				Str("channel", string(channel)).
				Msg("failed to subscribe, retrying")

			select {
			case <-ctx.Done():
				return
			case <-time.After(c.resubscribePause):
			}
			continue
		}

		c.dispatch(ctx, channel, deliveries, workerCount)

		if ctx.Err() == nil {
			zlog.Logger.Warn().
				Str("channel", string(channel)).
				Msg("subscription closed, resubscribing")
		}
	}
}

// dispatch fans deliveries out to the worker pool and returns once the
// stream closes or ctx is cancelled.
func (c *Consumer) dispatch(ctx context.Context, channel model.Channel, deliveries <-chan amqp.Delivery, workerCount int) {
	var wg sync.WaitGroup
	wg.Add(workerCount)

	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("%s worker-%d started", channel, id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("%s worker-%d shutting down", channel, id)
					return
				case d, ok := <-deliveries:
					if !ok {
						zlog.Logger.Printf("%s worker-%d stream closed", channel, id)
						return
					}
					c.handler.HandleMessage(ctx, d)
				}
			}
		}(i)
	}

	wg.Wait()
}
