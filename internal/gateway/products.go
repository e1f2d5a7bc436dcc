package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
)

func (c *Client) GetProducts(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/products"}, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Products satisfies catalog.Source.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	return c.GetProducts(ctx)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	path := "/api/products/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type trackRequest struct {
	EventName string         `json:"eventName"`
	EventData map[string]any `json:"eventData"`
}

func (c *Client) TrackEvent(ctx context.Context, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	body := trackRequest{EventName: name, EventData: data}
	return c.do(ctx, request{method: http.MethodPost, path: "/api/analytics/track", body: body, bestEffort: true}, nil)
}
