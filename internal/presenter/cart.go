package presenter

import (
	"context"
	"fmt"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.10")

type ActionKind string

const (
	ActionUpdateQuantity ActionKind = "update_quantity"
	ActionRemove         ActionKind = "remove"
)

// Action is a control on a cart row. Dispatching it mutates the cart through
// the Cart Store, never through the presenter.
type Action struct {
	Kind      ActionKind `json:"kind"`
	ProductID int64      `json:"productId"`
	Delta     int        `json:"delta,omitempty"`
}

type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  Link   `json:"action"`
}

type CartRow struct {
	ProductID int64  `json:"productId"`
	Image     string `json:"image"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Decrement Action `json:"decrement"`
	Increment Action `json:"increment"`
	Remove    Action `json:"remove"`
}

type Summary struct {
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

type BadgeView struct {
	Count int `json:"count"`
}

// CartView is everything the full cart page shows. Exactly one of Empty or
// Rows+Summary is populated.
type CartView struct {
	ItemCount int         `json:"itemCount"`
	Heading   string      `json:"heading,omitempty"`
	Empty     *EmptyState `json:"empty,omitempty"`
	Rows      []CartRow   `json:"rows,omitempty"`
	Summary   *Summary    `json:"summary,omitempty"`
}

type CartSource interface {
	GetCart(ctx context.Context) domain.Cart
}

type CartMutator interface {
	UpdateQuantity(ctx context.Context, productID int64, delta int) error
	RemoveItem(ctx context.Context, productID int64) error
}

// Subscriber is satisfied by the Cart Store.
type Subscriber interface {
	Subscribe(func(ctx context.Context, cart domain.Cart))
}

// CartSurface receives rendered output, e.g. a page or a terminal.
type CartSurface interface {
	ShowBadge(BadgeView)
	ShowCart(CartView)
}

type CartPresenter struct {
	source  CartSource
	mutator CartMutator
	surface CartSurface
}

func NewCartPresenter(source CartSource, mutator CartMutator, surface CartSurface) *CartPresenter {
	return &CartPresenter{
		source:  source,
		mutator: mutator,
		surface: surface,
	}
}

// Attach re-renders the presenter after every cart mutation.
func (p *CartPresenter) Attach(store Subscriber) {
	store.Subscribe(func(_ context.Context, cart domain.Cart) {
		p.show(cart)
	})
}

// Render reads the current cart and pushes the badge and cart view to the surface.
func (p *CartPresenter) Render(ctx context.Context) {
	p.show(p.source.GetCart(ctx))
}

func (p *CartPresenter) show(cart domain.Cart) {
	if p.surface == nil {
		return
	}
	p.surface.ShowBadge(Badge(cart))
	p.surface.ShowCart(View(cart))
}

// Dispatch routes a row control back into the cart.
func (p *CartPresenter) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionUpdateQuantity:
		return p.mutator.UpdateQuantity(ctx, action.ProductID, action.Delta)
	case ActionRemove:
		return p.mutator.RemoveItem(ctx, action.ProductID)
	default:
		return fmt.Errorf("unknown cart action %q", action.Kind)
	}
}

func Badge(cart domain.Cart) BadgeView {
	return BadgeView{Count: cart.ItemCount()}
}

// Totals returns the exact subtotal, tax and grand total.
func Totals(cart domain.Cart) (subtotal, tax, total decimal.Decimal) {
	subtotal = cart.Total
	tax = subtotal.Mul(TaxRate)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

func View(cart domain.Cart) CartView {
	count := cart.ItemCount()
	if len(cart.Items) == 0 {
		return CartView{
			ItemCount: count,
			Empty: &EmptyState{
				Title:   "Your cart is empty",
				Message: "Looks like you haven't added any items to your cart yet.",
				Action:  Link{Label: "Continue Shopping", Href: "index.html"},
			},
		}
	}

	rows := make([]CartRow, 0, len(cart.Items))
	for _, item := range cart.Items {
		rows = append(rows, CartRow{
			ProductID: item.ProductID,
			Image:     item.Image,
			Name:      item.Name,
			UnitPrice: Money(item.Price),
			Quantity:  item.Quantity,
			Decrement: Action{Kind: ActionUpdateQuantity, ProductID: item.ProductID, Delta: -1},
			Increment: Action{Kind: ActionUpdateQuantity, ProductID: item.ProductID, Delta: 1},
			Remove:    Action{Kind: ActionRemove, ProductID: item.ProductID},
		})
	}

	subtotal, tax, total := Totals(cart)
	return CartView{
		ItemCount: count,
		Heading:   fmt.Sprintf("Shopping Cart (%d items)", count),
		Rows:      rows,
		Summary: &Summary{
			Subtotal: Money(subtotal),
			Tax:      Money(tax),
			Total:    Money(total),
		},
	}
}

// Money formats an amount with exactly two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
