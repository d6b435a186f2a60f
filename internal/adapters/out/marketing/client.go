// Package marketing forwards lifecycle events to the customer messaging
// platform.
package marketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"printfloor/internal/core/ports"
)

type trackRequest struct {
	OwnerID    string         `json:"owner_id"`
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Client posts events to {baseURL}/events.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ ports.Marketing = (*Client)(nil)

func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Client) TrackEvent(ctx context.Context, ownerID string, event string, properties map[string]any) error {
	payload, err := json.Marshal(trackRequest{OwnerID: ownerID, Event: event, Properties: properties})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/events", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build event request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("event request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("marketing returned %s", resp.Status)
	}
	return nil
}
