package app

import (
	"context"
	"fmt"

	"github.com/VanshikaGY/ShopEasy/internal/analytics"
	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/pkg/logger"
)

// PlaceOrder submits the current cart. The cart is cleared only after the
// gateway accepted the order.
func (a *App) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	if a.CurrentUser() == nil {
		return nil, ErrNotAuthenticated
	}

	c := a.cart.GetCart(ctx)
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order, err := a.gateway.PlaceOrder(ctx, domain.OrderRequest{Items: c.Items, Total: c.Total})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := a.cart.ClearCart(ctx); err != nil {
		// the order exists remotely; report it and leave the stale cart
		log := logger.FromContext(ctx, a.logger)
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear cart after order")
	}

	a.track(ctx, analytics.EventOrderPlaced, map[string]any{
		"orderId": order.ID,
		"total":   c.Total.StringFixed(2),
		"items":   c.ItemCount(),
	})
	return order, nil
}

func (a *App) OrderHistory(ctx context.Context) ([]domain.Order, error) {
	if a.CurrentUser() == nil {
		return nil, ErrNotAuthenticated
	}
	orders, err := a.gateway.OrderHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	return orders, nil
}
