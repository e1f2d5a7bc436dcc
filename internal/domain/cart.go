package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// CartLineItem is a denormalized snapshot of a product taken when it was added.
type CartLineItem struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

// Subtotal is price × quantity.
func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AddQuantity returns a+b clamped to the int range instead of wrapping.
func AddQuantity(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

type Cart struct {
	Items []CartLineItem  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func NewCart() Cart {
	return Cart{Items: []CartLineItem{}, Total: decimal.Zero}
}

// Recalculate sets Total to the sum of price × quantity over all items.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	c.Total = total
}

// ItemCount is the sum of all line item quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n = AddQuantity(n, item.Quantity)
	}
	return n
}

// Find returns the index of the line item for productID, or -1.
func (c Cart) Find(productID int64) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) Remove(productID int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Normalize drops non-positive quantities and merges duplicate product ids,
// keeping the first occurrence's snapshot, then recomputes the total.
func (c *Cart) Normalize() {
	items := make([]CartLineItem, 0, len(c.Items))
	index := make(map[int64]int, len(c.Items))
	for _, item := range c.Items {
		if i, ok := index[item.ProductID]; ok {
			items[i].Quantity = AddQuantity(items[i].Quantity, item.Quantity)
			continue
		}
		index[item.ProductID] = len(items)
		items = append(items, item)
	}

	kept := items[:0]
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.Recalculate()
}

func (c Cart) Clone() Cart {
	return Cart{
		Items: append([]CartLineItem{}, c.Items...),
		Total: c.Total,
	}
}
