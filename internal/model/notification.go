package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Channel selects the delivery transport and the broker routing key.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Valid reports whether the channel is one of the supported delivery channels.
func (c Channel) Valid() bool {
	return c == ChannelEmail || c == ChannelPush
}

// Channels lists every supported delivery channel.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelPush}
}

// Notification lifecycle statuses.
const (
	StatusQueued   = "queued"
	StatusRetrying = "retrying"
	StatusSent     = "sent"
	StatusFailed   = "failed"
)

// NotificationMessage is the unit of work flowing through the pipeline.
//
// NotificationID and CreatedAt are assigned once before the first publish
// and never change. RetryCount and ScheduledFor are mutated only by the
// retry scheduler; every retry is re-published as a new broker message.
type NotificationMessage struct {
	NotificationID uuid.UUID         `json:"notification_id"`
	RequestID      string            `json:"request_id"`
	Channel        Channel           `json:"channel"`
	UserID         string            `json:"user_id"`
	Recipient      string            `json:"recipient"`
	TemplateCode   string            `json:"template_code"`
	Variables      map[string]string `json:"variables,omitempty"`
	Priority       int               `json:"priority,omitempty"`
	RetryCount     int               `json:"retry_count"`
	ScheduledFor   time.Time         `json:"scheduled_for,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// Validate checks that the message carries everything a consumer needs.
// A message failing validation can never be delivered and must not be retried.
func (m NotificationMessage) Validate() error {
	if m.NotificationID == uuid.Nil {
		return fmt.Errorf("notification_id is required")
	}
	if strings.TrimSpace(m.RequestID) == "" {
		return fmt.Errorf("request_id is required")
	}
	if !m.Channel.Valid() {
		return fmt.Errorf("invalid channel %q", m.Channel)
	}
	if strings.TrimSpace(m.Recipient) == "" {
		return fmt.Errorf("recipient is required")
	}
	if strings.TrimSpace(m.TemplateCode) == "" {
		return fmt.Errorf("template_code is required")
	}
	if m.RetryCount < 0 {
		return fmt.Errorf("negative retry_count %d", m.RetryCount)
	}
	return nil
}

// IdempotencyKey derives the deduplication key for a message. Two submissions
// with the same owner, channel, template and request id are the same logical
// notification.
func (m NotificationMessage) IdempotencyKey() string {
	return IdempotencyKey(m.UserID, m.Channel, m.TemplateCode, m.RequestID)
}

// IdempotencyKey builds the deduplication key from request attributes.
func IdempotencyKey(userID string, channel Channel, templateCode, requestID string) string {
	return fmt.Sprintf("%s:%s:%s:%s", userID, channel, templateCode, requestID)
}

// StatusRecord is the lifecycle record kept per notification. It is created
// on first publish and overwritten on every transition until it expires.
type StatusRecord struct {
	NotificationID uuid.UUID `json:"notification_id"`
	RequestID      string    `json:"request_id"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	RetryCount     int       `json:"retry_count,omitempty"`
	DeliveryID     string    `json:"delivery_id,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Rendered is the output of the template renderer, ready for a transport.
type Rendered struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
