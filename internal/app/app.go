// Package app holds the storefront's application context: catalog, cart,
// session and the remote gateway, passed explicitly to every caller.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/VanshikaGY/ShopEasy/internal/analytics"
	"github.com/VanshikaGY/ShopEasy/internal/cart"
	"github.com/VanshikaGY/ShopEasy/internal/catalog"
	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
	"github.com/VanshikaGY/ShopEasy/internal/presenter"
	"github.com/VanshikaGY/ShopEasy/pkg/logger"
	"github.com/rs/zerolog"
)

// Gateway is the subset of *gateway.Client the app depends on.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*domain.User, error)
	Logout(ctx context.Context) error
	SyncCart(ctx context.Context, cart domain.Cart) error
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	OrderHistory(ctx context.Context) ([]domain.Order, error)
}

type Deps struct {
	Catalog *catalog.Catalog
	Cart    *cart.Store
	Gateway Gateway
	Tracker analytics.Tracker
	Logger  zerolog.Logger
	// Surface receives cart renders after every mutation; optional.
	Surface presenter.CartSurface
}

type App struct {
	catalog *catalog.Catalog
	cart    *cart.Store
	gateway Gateway
	tracker analytics.Tracker
	logger  zerolog.Logger

	cartPresenter   *presenter.CartPresenter
	searchPresenter *presenter.SearchPresenter

	mu   sync.RWMutex
	user *domain.User
}

func New(deps Deps) *App {
	a := &App{
		catalog: deps.Catalog,
		cart:    deps.Cart,
		gateway: deps.Gateway,
		tracker: deps.Tracker,
		logger:  deps.Logger,
	}
	if a.tracker == nil {
		a.tracker = analytics.Nop{}
	}

	a.cart.Subscribe(a.syncCart)
	a.cartPresenter = presenter.NewCartPresenter(a.cart, a.cart, deps.Surface)
	a.cartPresenter.Attach(a.cart)
	a.searchPresenter = presenter.NewSearchPresenter(a.catalog)
	return a
}

func (a *App) Catalog() *catalog.Catalog { return a.catalog }

// Search feeds the search box text to the search presenter.
func (a *App) Search(text string) presenter.SearchView {
	return a.searchPresenter.Input(text)
}

func (a *App) SearchFocus() presenter.SearchView {
	return a.searchPresenter.Focus()
}

func (a *App) SearchDismiss() presenter.SearchView {
	return a.searchPresenter.OutsideClick()
}

func (a *App) GetCart(ctx context.Context) domain.Cart {
	return a.cart.GetCart(ctx)
}

func (a *App) CartView(ctx context.Context) presenter.CartView {
	return presenter.View(a.cart.GetCart(ctx))
}

func (a *App) CartBadge(ctx context.Context) presenter.BadgeView {
	return presenter.Badge(a.cart.GetCart(ctx))
}

func (a *App) AddToCart(ctx context.Context, productID int64, quantity int) error {
	if err := a.cart.AddToCart(ctx, productID, quantity); err != nil {
		return err
	}
	a.track(ctx, analytics.EventAddToCart, map[string]any{"productId": productID, "quantity": quantity})
	return nil
}

func (a *App) UpdateQuantity(ctx context.Context, productID int64, delta int) error {
	return a.cart.UpdateQuantity(ctx, productID, delta)
}

func (a *App) RemoveItem(ctx context.Context, productID int64) error {
	if err := a.cart.RemoveItem(ctx, productID); err != nil {
		return err
	}
	a.track(ctx, analytics.EventRemoveFromCart, map[string]any{"productId": productID})
	return nil
}

func (a *App) ClearCart(ctx context.Context) error {
	return a.cart.ClearCart(ctx)
}

// Dispatch applies a cart view action such as a quantity button press.
func (a *App) Dispatch(ctx context.Context, action presenter.Action) error {
	if action.Kind == presenter.ActionRemove {
		return a.RemoveItem(ctx, action.ProductID)
	}
	return a.cartPresenter.Dispatch(ctx, action)
}

// TrackPageView records a page view.
func (a *App) TrackPageView(ctx context.Context, page string) {
	a.track(ctx, analytics.EventPageView, map[string]any{"page": page})
}

// syncCart mirrors every persisted cart to the gateway. Local storage stays
// authoritative; sync failures are logged and dropped.
func (a *App) syncCart(ctx context.Context, c domain.Cart) {
	if a.gateway == nil {
		return
	}
	err := a.gateway.SyncCart(ctx, c)
	if err == nil || errors.Is(err, gateway.ErrNoToken) {
		return
	}
	log := logger.FromContext(ctx, a.logger)
	log.Warn().Err(err).Int("items", c.ItemCount()).Msg("cart sync failed")
}

func (a *App) track(ctx context.Context, name string, data map[string]any) {
	if err := a.tracker.Track(ctx, name, data); err != nil {
		log := logger.FromContext(ctx, a.logger)
		log.Debug().Err(err).Str("event", name).Msg("analytics event dropped")
	}
}
