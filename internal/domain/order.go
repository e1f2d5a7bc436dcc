package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderRequest is the body posted when placing an order.
type OrderRequest struct {
	Items []CartLineItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type Order struct {
	ID        string          `json:"id"`
	Items     []CartLineItem  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
