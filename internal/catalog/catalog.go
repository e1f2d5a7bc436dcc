package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
)

// DefaultRelatedLimit is the number of related products shown on a product page.
const DefaultRelatedLimit = 3

var (
	ErrInvalidProduct   = errors.New("invalid product")
	ErrDuplicateProduct = errors.New("duplicate product id")
)

// Catalog is an immutable, ordered list of products. It is safe for concurrent use.
type Catalog struct {
	products []domain.Product
	byID     map[int64]int
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: id %d must be positive", ErrInvalidProduct, p.ID)
		}
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

// All returns every product in seed order.
func (c *Catalog) All() []domain.Product {
	return c.filter(func(domain.Product) bool { return true })
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) GetByID(id int64) (*domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	p := c.products[i].Clone()
	return &p, true
}

// Lookup resolves a textual product reference such as a URL parameter.
func (c *Catalog) Lookup(ref string) (*domain.Product, bool) {
	id, ok := ParseID(ref)
	if !ok {
		return nil, false
	}
	return c.GetByID(id)
}

// ParseID coerces text to a product id: leading whitespace and an optional
// sign are accepted, then the leading run of digits is used ("2abc" is 2).
func ParseID(ref string) (int64, bool) {
	s := strings.TrimLeft(ref, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Search matches query as a case-insensitive substring of name, description
// or category. Order follows the catalog; there is no ranking.
func (c *Catalog) Search(query string) []domain.Product {
	term := strings.ToLower(query)
	return c.filter(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term)
	})
}

// ByCategory is an exact, case-sensitive category match.
func (c *Catalog) ByCategory(category string) []domain.Product {
	return c.filter(func(p domain.Product) bool { return p.Category == category })
}

// Related returns up to limit products in the same category as productID,
// excluding productID itself.
func (c *Catalog) Related(productID int64, limit int) []domain.Product {
	i, ok := c.byID[productID]
	if !ok || limit <= 0 {
		return []domain.Product{}
	}
	category := c.products[i].Category

	related := make([]domain.Product, 0, limit)
	for _, p := range c.products {
		if len(related) == limit {
			break
		}
		if p.ID != productID && p.Category == category {
			related = append(related, p.Clone())
		}
	}
	return related
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

func (c *Catalog) filter(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
