package recipient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/wb-go/wbf/dbpg"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

var (
	// ErrRecipientNotFound means the user is unknown or has no address
	// for the requested channel.
	ErrRecipientNotFound = errors.New("recipient not found")

	errUnknownChannel = errors.New("unknown channel")
)

// Repository resolves user ids into channel delivery addresses from the
// recipients table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new recipient repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Resolve returns the delivery address for a user on a channel: the email
// address for email, the device push token for push.
func (r *Repository) Resolve(ctx context.Context, userID string, channel model.Channel) (string, error) {
	query := `
		SELECT email, push_token
		FROM recipients
		WHERE user_id = $1;
    `

	var email, pushToken sql.NullString
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(&email, &pushToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrRecipientNotFound
		}
		return "", fmt.Errorf("failed to resolve recipient: %w", err)
	}

	var address string
	switch channel {
	case model.ChannelEmail:
		address = email.String
	case model.ChannelPush:
		address = pushToken.String
	default:
		return "", fmt.Errorf("%w: %s", errUnknownChannel, channel)
	}

	if strings.TrimSpace(address) == "" {
		return "", ErrRecipientNotFound
	}
	return address, nil
}
