package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const selectProducts = `
	SELECT id, name, description, category, price, original_price, rating, reviews,
	       images, features, specifications
	FROM products
`

// Products satisfies catalog.Source.
func (r *ProductRepository) Products(ctx context.Context) ([]domain.Product, error) {
	return r.GetAllProducts(ctx)
}

func (r *ProductRepository) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProducts+" ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, selectProducts+" WHERE id = ?", id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SeedProducts inserts products in order when the table is empty. It reports
// whether anything was written.
func (r *ProductRepository) SeedProducts(ctx context.Context, products []domain.Product) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	const insert = `
		INSERT INTO products (id, position, name, description, category, price, original_price,
		                      rating, reviews, images, features, specifications)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range products {
		images, features, specs, err := encodeCollections(p)
		if err != nil {
			return false, err
		}
		_, err = tx.ExecContext(ctx, insert,
			p.ID, i, p.Name, p.Description, p.Category,
			p.Price.String(), p.OriginalPrice.String(),
			p.Rating, p.Reviews, images, features, specs,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		p                       domain.Product
		price, originalPrice    string
		images, features, specs string
	)
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&price,
		&originalPrice,
		&p.Rating,
		&p.Reviews,
		&images,
		&features,
		&specs,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, err
	}
	if err != nil {
		return p, fmt.Errorf("failed to scan product: %w", err)
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return p, fmt.Errorf("product %d: bad price: %w", p.ID, err)
	}
	if p.OriginalPrice, err = decimal.NewFromString(originalPrice); err != nil {
		return p, fmt.Errorf("product %d: bad original price: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
		return p, fmt.Errorf("product %d: bad images: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(features), &p.Features); err != nil {
		return p, fmt.Errorf("product %d: bad features: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(specs), &p.Specifications); err != nil {
		return p, fmt.Errorf("product %d: bad specifications: %w", p.ID, err)
	}
	return p, nil
}

func encodeCollections(p domain.Product) (string, string, string, error) {
	images, err := json.Marshal(nonNil(p.Images))
	if err != nil {
		return "", "", "", fmt.Errorf("marshal images failed: %w", err)
	}
	features, err := json.Marshal(nonNil(p.Features))
	if err != nil {
		return "", "", "", fmt.Errorf("marshal features failed: %w", err)
	}
	specs := p.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	specsJSON, err := json.Marshal(specs)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal specifications failed: %w", err)
	}
	return string(images), string(features), string(specsJSON), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *ProductRepository) Close() error {
	return r.db.Close()
}
