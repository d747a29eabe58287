package tracker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Kariqs/chapaquente-api/models"
	"github.com/go-resty/resty/v2"
)

// Client talks to the ordering API on behalf of a customer screen.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// WithToken authenticates later requests as the token's owner.
func (c *Client) WithToken(token string) *Client {
	if token != "" {
		c.http.SetAuthToken(token)
	}
	return c
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var body struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.get(ctx, "/api/orders", &body); err != nil {
		return nil, err
	}
	return body.Orders, nil
}

func (c *Client) Queue(ctx context.Context) ([]models.QueueEntry, error) {
	var body struct {
		Queue []models.QueueEntry `json:"queue"`
	}
	if err := c.get(ctx, "/api/orders/queue", &body); err != nil {
		return nil, err
	}
	return body.Queue, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, "/api/orders/"+id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(result).
		Get(path)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("GET %s failed with status %d: %s", path, resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
