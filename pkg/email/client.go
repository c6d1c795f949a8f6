package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/mail.v2"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Deliver sends a rendered notification to the given email address and
// returns a delivery id. SMTP offers no provider-side id, so one is
// generated for the status record.
func (c *Client) Deliver(_ context.Context, address string, rendered model.Rendered) (string, error) {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", address)
	message.SetHeader("Subject", rendered.Subject)

	message.SetBody("text/plain", rendered.Body)

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	if err := dialer.DialAndSend(message); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	return uuid.New().String(), nil
}
