// Package push provides a client for sending notifications through an HTTP
// push provider.
//
// It posts the rendered notification to the provider endpoint with the
// device token and returns the provider's delivery id. Designed to be used
// as a delivery transport in the notify-dispatcher pipeline.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/olegtsov/notify-dispatcher/internal/model"
)

// Client represents a push-provider client used to send notifications.
type Client struct {
	url    string       // provider endpoint
	apiKey string       // bearer token for authentication
	client *http.Client // HTTP client used to make requests
}

// NewClient creates a new push Client for the given provider endpoint.
func NewClient(url, apiKey string) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{},
	}
}

// sendRequest represents the payload for the provider's send API.
type sendRequest struct {
	Token string `json:"token"` // device token to deliver to
	Title string `json:"title"` // notification title
	Body  string `json:"body"`  // notification body
}

// sendResponse is the provider's reply to a successful send.
type sendResponse struct {
	DeliveryID string `json:"delivery_id"`
}

// Deliver sends a rendered notification to the given device token.
//
// It constructs the request payload, posts it to the provider, and returns
// the provider's delivery id, or an error if the request fails or the
// provider responds with a non-2xx status.
func (c *Client) Deliver(ctx context.Context, token string, rendered model.Rendered) (string, error) {
	reqBody := sendRequest{
		Token: token,
		Title: rendered.Subject,
		Body:  rendered.Body,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("push provider error: %s", resp.Status)
	}

	var sent sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil || sent.DeliveryID == "" {
		// Some providers reply with an empty body; fall back to a local id.
		return uuid.New().String(), nil
	}

	return sent.DeliveryID, nil
}
