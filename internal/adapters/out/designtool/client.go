// Package designtool talks to the external design tool that turns an order
// into printable artwork.
package designtool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/ports"
)

type createRequest struct {
	OrderID string `json:"order_id"`
}

type createResponse struct {
	ID    string   `json:"id"`
	Pages []string `json:"pages"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// Client creates artifacts with POST {baseURL}/artifacts and changes their
// status with PATCH {baseURL}/artifacts/{id}.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ ports.DesignTool = (*Client)(nil)

func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Client) CreateArtifact(ctx context.Context, orderID kernel.UUID) (ports.ArtifactReceipt, error) {
	var out createResponse
	err := c.send(ctx, http.MethodPost, c.baseURL+"/artifacts", createRequest{OrderID: orderID.String()}, &out)
	if err != nil {
		return ports.ArtifactReceipt{}, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return ports.ArtifactReceipt{}, fmt.Errorf("design tool returned no artifact id")
	}
	return ports.ArtifactReceipt{ExternalID: out.ID, Pages: out.Pages}, nil
}

func (c *Client) SetArtifactStatus(ctx context.Context, externalID string, status string) error {
	endpoint := c.baseURL + "/artifacts/" + url.PathEscape(externalID)
	return c.send(ctx, http.MethodPatch, endpoint, statusRequest{Status: status}, nil)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode design tool request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build design tool request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("design tool request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("design tool returned %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode design tool response: %w", err)
	}
	return nil
}
