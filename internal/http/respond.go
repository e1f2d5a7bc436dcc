package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/VanshikaGY/ShopEasy/internal/app"
	"github.com/VanshikaGY/ShopEasy/internal/cart"
	"github.com/VanshikaGY/ShopEasy/internal/catalog"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleError maps storefront errors to HTTP status codes.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		httpStatus int
		code       string
		message    string
	)

	var remote *gateway.RemoteError
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		httpStatus, code, message = http.StatusNotFound, "product_not_found", "product not found"
	case errors.Is(err, cart.ErrItemNotFound):
		httpStatus, code, message = http.StatusNotFound, "item_not_found", "item not found in cart"
	case errors.Is(err, app.ErrNotAuthenticated), errors.Is(err, gateway.ErrNoToken):
		httpStatus, code, message = http.StatusUnauthorized, "unauthenticated", "login required"
	case errors.Is(err, cart.ErrUnavailable):
		httpStatus, code, message = http.StatusServiceUnavailable, "cart_unavailable", "cart storage unavailable"
	case errors.Is(err, app.ErrEmptyCart):
		httpStatus, code, message = http.StatusConflict, "empty_cart", "cart is empty"
	case errors.As(err, &remote) && remote.StatusCode == http.StatusUnauthorized:
		httpStatus, code, message = http.StatusUnauthorized, "unauthenticated", "gateway rejected credentials"
	case errors.Is(err, gateway.ErrRemoteRequestFailed):
		httpStatus, code, message = http.StatusBadGateway, "remote_request_failed", "remote request failed"
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus, code, message = http.StatusGatewayTimeout, "timeout", "request timed out"
	default:
		httpStatus, code, message = http.StatusInternalServerError, "internal_error", "internal server error"
	}

	log := zerolog.Ctx(r.Context())
	if httpStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", httpStatus).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", httpStatus).Msg("request rejected")
	}

	respondJSON(w, r, httpStatus, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: err.Error(),
	})
}

// productIDParam coerces the {product_id} URL segment the same way the
// catalog coerces textual ids.
func productIDParam(r *http.Request) (int64, bool) {
	return catalog.ParseID(chi.URLParam(r, "product_id"))
}
