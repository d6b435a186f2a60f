// Package storefront reads orders from the storefront's HTTP API.
package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"printfloor/internal/core/domain/model/kernel"
	"printfloor/internal/core/domain/model/order"
	"printfloor/internal/core/ports"
	"printfloor/internal/pkg/errs"
)

type orderDTO struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	LineItems []lineItemDTO `json:"line_items"`
}

type lineItemDTO struct {
	Title        string            `json:"title"`
	VariantLabel string            `json:"variant_label"`
	Quantity     int               `json:"quantity"`
	Properties   map[string]string `json:"properties"`
	Options      []optionDTO       `json:"options"`
}

type optionDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Client fetches orders with GET {baseURL}/orders/{id}.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ ports.OrderSource = (*Client)(nil)

func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Client) GetOrder(ctx context.Context, orderID kernel.UUID) (order.Order, error) {
	endpoint := c.baseURL + "/orders/" + url.PathEscape(orderID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return order.Order{}, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return order.Order{}, fmt.Errorf("order request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return order.Order{}, errs.NewObjectNotFoundError("order", orderID.String())
	case resp.StatusCode != http.StatusOK:
		return order.Order{}, fmt.Errorf("storefront returned %s", resp.Status)
	}

	var dto orderDTO
	if err = json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return order.Order{}, fmt.Errorf("decode order response: %w", err)
	}

	return toDomain(orderID, dto)
}

func toDomain(requested kernel.UUID, dto orderDTO) (order.Order, error) {
	id := requested
	if dto.ID != "" {
		parsed, err := kernel.UUIDFromString(dto.ID)
		if err != nil {
			return order.Order{}, err
		}
		id = parsed
	}

	o := order.Order{ID: id, OwnerID: strings.TrimSpace(dto.OwnerID)}
	for _, li := range dto.LineItems {
		item := order.LineItem{
			Title:        li.Title,
			VariantLabel: li.VariantLabel,
			Quantity:     li.Quantity,
			Properties:   li.Properties,
		}
		for _, opt := range li.Options {
			item.Options = append(item.Options, order.Option{Name: opt.Name, Value: opt.Value})
		}
		o.Items = append(o.Items, item)
	}

	if err := o.Validate(); err != nil {
		return order.Order{}, err
	}
	return o, nil
}
