// Package queue owns the broker topology and the publish/consume primitives
// the pipeline is built on: one durable direct exchange, one durable queue
// per channel bound by the channel name, and a durable failure queue that
// channel queues dead-letter into.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

const (
	ExchangeName    = "notify.exchange"
	FailedQueueName = "notify.failed"

	queuePrefix = "notify."
)

// QueueName returns the durable queue for a delivery channel.
func QueueName(ch model.Channel) string {
	return queuePrefix + string(ch)
}

// RoutingKey for a channel equals the channel name.
func RoutingKey(ch model.Channel) string {
	return string(ch)
}

// Connector dials RabbitMQ with bounded retries and hands out channels,
// redialing when the cached connection has died. It is safe for concurrent
// use; the connection is process-wide and shared by all workers.
type Connector struct {
	url      string
	attempts int
	pause    time.Duration

	mu   sync.Mutex
	conn *rabbitmq.Connection
}

// NewConnector creates a connector; no connection is made until Channel.
func NewConnector(url string, attempts int, pause time.Duration) *Connector {
	return &Connector{url: url, attempts: attempts, pause: pause}
}

// Channel opens a channel on the shared connection, dialing it first if
// needed. A channel-open failure on a previously good connection is treated
// as a dead connection and triggers one redial.
func (c *Connector) Channel() (*rabbitmq.Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		ch, err := c.conn.Channel()
		if err == nil {
			return ch, nil
		}
		zlog.Logger.Warn().Err(err).Msg("stale rabbitmq connection, redialing")
		c.conn = nil
	}

	conn, err := rabbitmq.Connect(c.url, c.attempts, c.pause)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		c.conn = nil
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return ch, nil
}

// Reset drops the cached connection so the next Channel call redials.
func (c *Connector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Close closes the shared connection.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// NotificationQueue publishes and consumes pipeline messages. It lazily
// (re)declares the topology on its current channel and swaps the channel
// out after broker failures, so callers survive broker restarts.
type NotificationQueue struct {
	connector *Connector
	prefetch  int
	strategy  retry.Strategy

	mu sync.Mutex
	ch *rabbitmq.Channel
}

// New declares the topology and returns a ready queue. Declarations are
// idempotent; restarting against an existing topology is a no-op.
func New(connector *Connector, prefetch int, strategy retry.Strategy) (*NotificationQueue, error) {
	q := &NotificationQueue{connector: connector, prefetch: prefetch, strategy: strategy}
	if _, err := q.channel(); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *NotificationQueue) channel() (*rabbitmq.Channel, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ch != nil {
		return q.ch, nil
	}

	ch, err := q.connector.Channel()
	if err != nil {
		return nil, err
	}
	if err := declareTopology(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}
	q.ch = ch
	return ch, nil
}

// invalidate forgets a channel after a broker error so the next call
// redials and redeclares.
func (q *NotificationQueue) invalidate(ch *rabbitmq.Channel) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ch == ch {
		_ = q.ch.Close()
		q.ch = nil
		q.connector.Reset()
	}
}

func declareTopology(ch *rabbitmq.Channel) error {
	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)

	if _, err := qm.DeclareQueue(FailedQueueName, rabbitmq.QueueConfig{Durable: true}); err != nil {
		return fmt.Errorf("declare failure queue: %w", err)
	}

	// Channel queues dead-letter into the failure queue via the default
	// exchange, so a nack without requeue routes the message there.
	args := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": FailedQueueName,
	}

	for _, c := range model.Channels() {
		name := QueueName(c)
		if _, err := qm.DeclareQueue(name, rabbitmq.QueueConfig{Durable: true, Args: args}); err != nil {
			return fmt.Errorf("declare queue %s: %w", name, err)
		}
		if err := ch.QueueBind(name, RoutingKey(c), ExchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", name, err)
		}
	}
	return nil
}

// Publish sends a message to its channel's queue. Publishes are persistent
// and retried with the configured strategy before the error surfaces.
func (q *NotificationQueue) Publish(ctx context.Context, msg model.NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ch, err := q.channel()
	if err != nil {
		return err
	}

	err = retry.Do(func() error {
		return ch.PublishWithContext(ctx, ExchangeName, RoutingKey(msg.Channel), false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.NotificationID.String(),
			Timestamp:    time.Now(),
			Body:         body,
		})
	}, q.strategy)
	if err != nil {
		q.invalidate(ch)
		return fmt.Errorf("publish to %s: %w", RoutingKey(msg.Channel), err)
	}
	return nil
}

// Consume subscribes to a channel's queue with manual acknowledgements and
// the configured prefetch window. The returned stream closes when the
// underlying channel dies; callers are expected to call Consume again.
func (q *NotificationQueue) Consume(channel model.Channel, consumerTag string) (<-chan amqp.Delivery, error) {
	ch, err := q.channel()
	if err != nil {
		return nil, err
	}

	if err := ch.Qos(q.prefetch, 0, false); err != nil {
		q.invalidate(ch)
		return nil, fmt.Errorf("set prefetch: %w", err)
	}

	deliveries, err := ch.Consume(QueueName(channel), consumerTag, false, false, false, false, nil)
	if err != nil {
		q.invalidate(ch)
		return nil, fmt.Errorf("consume %s: %w", QueueName(channel), err)
	}
	return deliveries, nil
}

// Depths reports the current message count of every pipeline queue.
func (q *NotificationQueue) Depths() (map[string]int, error) {
	ch, err := q.channel()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(model.Channels())+1)
	for _, c := range model.Channels() {
		names = append(names, QueueName(c))
	}
	names = append(names, FailedQueueName)

	depths := make(map[string]int, len(names))
	for _, name := range names {
		queue, err := ch.QueueInspect(name)
		if err != nil {
			q.invalidate(ch)
			return nil, fmt.Errorf("inspect queue %s: %w", name, err)
		}
		depths[name] = queue.Messages
	}
	return depths, nil
}

// Close closes the current channel; the shared connection is closed by the
// connector's owner.
func (q *NotificationQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ch == nil {
		return nil
	}
	err := q.ch.Close()
	q.ch = nil
	return err
}
