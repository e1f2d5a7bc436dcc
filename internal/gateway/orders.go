package gateway

import (
	"context"
	"net/http"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/google/uuid"
)

// SyncCart pushes the whole cart to the gateway. It returns ErrNoToken
// without calling out when the user is anonymous.
func (c *Client) SyncCart(ctx context.Context, cart domain.Cart) error {
	return c.do(ctx, request{method: http.MethodPost, path: "/api/cart/sync", body: cart, auth: true, bestEffort: true}, nil)
}

// PlaceOrder submits the order. Every call carries a fresh Idempotency-Key.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/orders",
		body:    req,
		auth:    true,
		headers: map[string]string{"Idempotency-Key": uuid.NewString()},
	}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) OrderHistory(ctx context.Context) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/orders", auth: true}, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}
