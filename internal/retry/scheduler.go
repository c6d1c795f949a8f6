// Package retry decides whether failed deliveries get another attempt and
// re-publishes them after an exponential backoff delay. A retry is a new
// broker message, not a requeue of the failed delivery, which keeps
// application-level backoff out of the broker's redelivery path.
package retry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

// ErrRetriesExhausted is returned by ScheduleRetry when the message has
// already used up its retry budget; such a message must never be
// republished.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Config bounds the retry budget and the backoff curve.
type Config struct {
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
}

// DefaultConfig returns the standard retry settings.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   5 * time.Minute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxRetries <= 0 {
		c.MaxRetries = d.MaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = d.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = d.MaxDelay
	}
	return c
}

//go:generate mockgen -source=scheduler.go -destination=../mocks/retry/mock.go -package=mocks
type publisher interface {
	Publish(ctx context.Context, msg model.NotificationMessage) error
}

// Scheduler schedules retries of failed deliveries. Pending retries ride
// in-process timers: a restart during the delay window loses them.
type Scheduler struct {
	cfg   Config
	queue publisher
	wg    sync.WaitGroup
}

// NewScheduler creates a scheduler publishing retries through queue.
func NewScheduler(cfg Config, queue publisher) *Scheduler {
	return &Scheduler{cfg: cfg.withDefaults(), queue: queue}
}

// ShouldRetry reports whether the message still has retry budget left.
func (s *Scheduler) ShouldRetry(msg model.NotificationMessage) bool {
	return msg.RetryCount < s.cfg.MaxRetries
}

// NextDelay returns the backoff before retry attempt attempt+1: the first
// retry waits BaseDelay, each further retry doubles it, capped at MaxDelay.
func (s *Scheduler) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := s.cfg.BaseDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= s.cfg.MaxDelay {
			return s.cfg.MaxDelay
		}
	}
	return delay
}

// ScheduleRetry increments the message's retry count, stamps its due time
// and arranges a re-publish to the original routing key after the backoff
// delay. It returns the updated message immediately; the timer does not
// occupy the caller.
func (s *Scheduler) ScheduleRetry(ctx context.Context, msg model.NotificationMessage) (model.NotificationMessage, error) {
	if !s.ShouldRetry(msg) {
		return msg, fmt.Errorf("%w: %d of %d attempts used", ErrRetriesExhausted, msg.RetryCount, s.cfg.MaxRetries)
	}

	delay := s.NextDelay(msg.RetryCount)
	msg.RetryCount++
	msg.ScheduledFor = time.Now().Add(delay)

	zlog.Logger.Info().
		Str("notification_id", msg.NotificationID.String()).
		Int("retry_count", msg.RetryCount).
		Dur("delay", delay).
		Msg("retry scheduled")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			zlog.Logger.Warn().
				Str("notification_id", msg.NotificationID.String()).
				Msg("pending retry dropped on shutdown")
			return
		case <-timer.C:
		}

		if err := s.queue.Publish(ctx, msg); err != nil {
			zlog.Logger.Error().Err(err).
				Str("notification_id", msg.NotificationID.String()).
				Int("retry_count", msg.RetryCount).
				Msg("failed to republish retry")
		}
	}()

	return msg, nil
}

// Wait blocks until every pending retry timer has resolved. Cancel the
// context passed to ScheduleRetry first to release them on shutdown.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
