package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/presenter"
)

type CartService interface {
	GetCart(ctx context.Context) domain.Cart
	CartView(ctx context.Context) presenter.CartView
	CartBadge(ctx context.Context) presenter.BadgeView
	AddToCart(ctx context.Context, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, productID int64, delta int) error
	RemoveItem(ctx context.Context, productID int64) error
	ClearCart(ctx context.Context) error
	Dispatch(ctx context.Context, action presenter.Action) error
	TrackPageView(ctx context.Context, page string)
}

type CartHandler struct {
	cart CartService
}

func NewCartHandler(cart CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Delta *int `json:"delta"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cart.GetCart(r.Context()))
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	h.cart.TrackPageView(r.Context(), "cart.html")
	respondJSON(w, r, http.StatusOK, h.cart.CartView(r.Context()))
}

func (h *CartHandler) Badge(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.cart.CartBadge(r.Context()))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.cart.AddToCart(r.Context(), req.ProductID, quantity); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, h.cart.GetCart(r.Context()))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must contain a number")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == nil {
		respondError(w, r, http.StatusBadRequest, "invalid_delta", "delta is required")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), productID, *req.Delta); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cart.GetCart(r.Context()))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must contain a number")
		return
	}

	if err := h.cart.RemoveItem(r.Context(), productID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cart.GetCart(r.Context()))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.ClearCart(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cart.GetCart(r.Context()))
}

// Dispatch applies an action taken from a CartView row and returns the new view.
func (h *CartHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var action presenter.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if action.Kind != presenter.ActionUpdateQuantity && action.Kind != presenter.ActionRemove {
		respondError(w, r, http.StatusBadRequest, "invalid_action", "unknown cart action")
		return
	}

	if err := h.cart.Dispatch(r.Context(), action); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, h.cart.CartView(r.Context()))
}
