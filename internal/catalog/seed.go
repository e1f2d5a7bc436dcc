package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedProduct struct {
	ID             int64             `yaml:"id"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Category       string            `yaml:"category"`
	Price          string            `yaml:"price"`
	OriginalPrice  string            `yaml:"originalPrice"`
	Rating         float64           `yaml:"rating"`
	Reviews        int               `yaml:"reviews"`
	Images         []string          `yaml:"images"`
	Features       []string          `yaml:"features"`
	Specifications map[string]string `yaml:"specifications"`
}

// Seed returns the sample products shipped with the storefront, in seed order.
func Seed() ([]domain.Product, error) {
	return ParseSeed(seedYAML)
}

func ParseSeed(data []byte) ([]domain.Product, error) {
	var raw []seedProduct
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal seed failed: %w", err)
	}

	products := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid price %q: %w", r.ID, r.Price, err)
		}
		original := price
		if r.OriginalPrice != "" {
			original, err = decimal.NewFromString(r.OriginalPrice)
			if err != nil {
				return nil, fmt.Errorf("product %d: invalid original price %q: %w", r.ID, r.OriginalPrice, err)
			}
		}
		products = append(products, domain.Product{
			ID:             r.ID,
			Name:           r.Name,
			Description:    r.Description,
			Category:       r.Category,
			Price:          price,
			OriginalPrice:  original,
			Rating:         r.Rating,
			Reviews:        r.Reviews,
			Images:         r.Images,
			Features:       r.Features,
			Specifications: r.Specifications,
		})
	}
	return products, nil
}

// Source provides the product records a Catalog is built from.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// EmbeddedSource serves the embedded seed.
type EmbeddedSource struct{}

func (EmbeddedSource) Products(context.Context) ([]domain.Product, error) {
	return Seed()
}

// Load builds an immutable Catalog from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return New(products)
}
