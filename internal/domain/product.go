package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  decimal.Decimal   `json:"originalPrice"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	Images         []string          `json:"images"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
}

// Thumbnail returns the first image reference, or "" when the product has none.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a deep copy so callers can't mutate catalog-owned slices and maps.
func (p Product) Clone() Product {
	c := p
	c.Images = append([]string(nil), p.Images...)
	c.Features = append([]string(nil), p.Features...)
	if p.Specifications != nil {
		c.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			c.Specifications[k] = v
		}
	}
	return c
}
