package http

import (
	"context"
	"net/http"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
)

type OrderService interface {
	PlaceOrder(ctx context.Context) (*domain.Order, error)
	OrderHistory(ctx context.Context) ([]domain.Order, error)
}

type OrdersHandler struct {
	orders OrderService
}

func NewOrdersHandler(orders OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// Place submits the current cart as an order.
func (h *OrdersHandler) Place(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.PlaceOrder(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, order)
}

func (h *OrdersHandler) History(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.OrderHistory(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, &OrdersResponse{Orders: orders})
}
