package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ProductLookup resolves catalog products. Consumers define this interface,
// the catalog satisfies it.
type ProductLookup interface {
	GetByID(id int64) (*domain.Product, bool)
}

// Listener is notified with the new cart after every persisted mutation.
type Listener = func(ctx context.Context, cart domain.Cart)

// Store owns the cart and its persisted representation under storage.CartKey.
// The persisted value is read and fully rewritten on every mutation.
type Store struct {
	products ProductLookup
	kv       storage.Store
	logger   zerolog.Logger

	mu        sync.Mutex // serialises read-modify-write of the persisted cart
	sfg       singleflight.Group
	listeners []Listener
	lmu       sync.RWMutex
}

type Option func(*Store)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func NewStore(products ProductLookup, kv storage.Store, opts ...Option) *Store {
	s := &Store{
		products: products,
		kv:       kv,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers l to run after every mutation, in registration order.
func (s *Store) Subscribe(l Listener) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	s.listeners = append(s.listeners, l)
}

// GetCart returns the persisted cart. A missing, unreadable or corrupt value
// yields an empty cart; it never fails.
func (s *Store) GetCart(ctx context.Context) domain.Cart {
	// collapse concurrent loads of the single cart slot, detached from the
	// caller that started the shared load
	loadCtx := context.WithoutCancel(ctx)
	v, _, _ := s.sfg.Do(storage.CartKey, func() (interface{}, error) {
		c, err := s.load(loadCtx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("cart storage unavailable, using empty cart")
		}
		return c, nil
	})
	return v.(domain.Cart).Clone()
}

func (s *Store) AddToCart(ctx context.Context, productID int64, quantity int) error {
	product, ok := s.products.GetByID(productID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}

	return s.mutate(ctx, func(c *domain.Cart) error {
		if i := c.Find(productID); i >= 0 {
			c.Items[i].Quantity = domain.AddQuantity(c.Items[i].Quantity, quantity)
			if c.Items[i].Quantity <= 0 {
				c.Remove(productID)
			}
			return nil
		}
		if quantity <= 0 {
			return nil
		}
		c.Items = append(c.Items, domain.CartLineItem{
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price,
			Name:      product.Name,
			Image:     product.Thumbnail(),
		})
		return nil
	})
}

// UpdateQuantity adds delta to the line item's quantity and drops the line
// once it reaches zero or below.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, delta int) error {
	return s.mutate(ctx, func(c *domain.Cart) error {
		i := c.Find(productID)
		if i < 0 {
			return fmt.Errorf("%w: %d", ErrItemNotFound, productID)
		}
		c.Items[i].Quantity = domain.AddQuantity(c.Items[i].Quantity, delta)
		if c.Items[i].Quantity <= 0 {
			c.Remove(productID)
		}
		return nil
	})
}

// RemoveItem drops the line item; an absent id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	return s.mutate(ctx, func(c *domain.Cart) error {
		c.Remove(productID)
		return nil
	})
}

func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, func(c *domain.Cart) error {
		*c = domain.NewCart()
		return nil
	})
}

func (s *Store) mutate(ctx context.Context, apply func(*domain.Cart) error) error {
	s.mu.Lock()
	c, err := s.load(ctx)
	if err != nil {
		// writing now would replace a cart we could not read
		s.mu.Unlock()
		return err
	}
	if err := apply(&c); err != nil {
		s.mu.Unlock()
		return err
	}
	c.Recalculate()
	if err := s.save(ctx, c); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(ctx, c)
	return nil
}

// load reads the persisted cart. Missing and corrupt values yield an empty
// cart; only a failing backend is reported, alongside an empty cart.
func (s *Store) load(ctx context.Context) (domain.Cart, error) {
	raw, err := s.kv.Get(ctx, storage.CartKey)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.NewCart(), nil
	}
	if err != nil {
		return domain.NewCart(), fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var c domain.Cart
	if errUnmarshal := json.Unmarshal([]byte(raw), &c); errUnmarshal != nil {
		s.logger.Warn().Err(errUnmarshal).Msg("persisted cart is corrupt, using empty cart")
		return domain.NewCart(), nil
	}
	if c.Items == nil {
		c.Items = []domain.CartLineItem{}
	}
	c.Normalize()
	return c, nil
}

func (s *Store) save(ctx context.Context, c domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrPersist, err)
	}
	if err := s.kv.Set(ctx, storage.CartKey, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) notify(ctx context.Context, c domain.Cart) {
	s.lmu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.lmu.RUnlock()

	for _, l := range listeners {
		l(ctx, c.Clone())
	}
}
