package storage

import (
	"context"
	"errors"
)

// Fixed slots used by the storefront.
const (
	CartKey  = "shopeasy_cart"
	TokenKey = "token"
)

var ErrNotFound = errors.New("key not found")

// Store is the durable string-keyed storage the client persists into.
// Deleting a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
