package cart

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrPersist         = errors.New("failed to persist cart")
	ErrUnavailable     = errors.New("cart storage unavailable")
)
