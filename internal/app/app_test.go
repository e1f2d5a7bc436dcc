package app

import (
	"context"
	"errors"
	"testing"

	"github.com/VanshikaGY/ShopEasy/internal/analytics"
	"github.com/VanshikaGY/ShopEasy/internal/cart"
	"github.com/VanshikaGY/ShopEasy/internal/catalog"
	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
	"github.com/VanshikaGY/ShopEasy/internal/presenter"
	"github.com/VanshikaGY/ShopEasy/internal/storage"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app     *App
	gateway *MockGateway
	tracker *MockTracker
	surface *MockSurface
	kv      *storage.MemoryStore
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	c, err := catalog.Load(ctx, catalog.EmbeddedSource{})
	require.NoError(t, err)

	kv := storage.NewMemoryStore()
	f := fixture{
		gateway: &MockGateway{},
		tracker: &MockTracker{},
		surface: &MockSurface{},
		kv:      kv,
	}
	f.app = New(Deps{
		Catalog: c,
		Cart:    cart.NewStore(c, kv),
		Gateway: f.gateway,
		Tracker: f.tracker,
		Logger:  zerolog.Nop(),
		Surface: f.surface,
	})
	return f
}

func TestAddToCart_TracksAndRenders(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.app.AddToCart(ctx, 4, 2))

	c := f.app.GetCart(ctx)
	require.Len(t, c.Items, 1)
	assert.True(t, c.Total.Equal(decimal.RequireFromString("59.98")))

	assert.Equal(t, []string{analytics.EventAddToCart}, f.tracker.names())
	assert.Equal(t, map[string]any{"productId": int64(4), "quantity": 2}, f.tracker.Events[0].Data)

	require.Len(t, f.surface.Badges, 1)
	assert.Equal(t, 2, f.surface.Badges[0].Count)
	require.Len(t, f.surface.Views, 1)
	assert.Equal(t, "65.98", f.surface.Views[0].Summary.Total)
}

func TestAddToCart_UnknownProductNotTracked(t *testing.T) {
	f := setup(t)

	err := f.app.AddToCart(context.Background(), 99, 1)
	assert.ErrorIs(t, err, cart.ErrProductNotFound)
	assert.Empty(t, f.tracker.names())
	assert.Empty(t, f.surface.Badges)
}

func TestTrackerFailureNeverSurfaces(t *testing.T) {
	f := setup(t)
	f.tracker.Err = errors.New("collector down")

	assert.NoError(t, f.app.AddToCart(context.Background(), 1, 1))
	assert.NoError(t, f.app.RemoveItem(context.Background(), 1))
}

func TestSyncCart_SkippedWithoutToken(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.app.AddToCart(context.Background(), 1, 1))
	assert.Empty(t, f.gateway.syncedCarts())
}

func TestSyncCart_AfterEveryMutationWhenLoggedIn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, f.app.AddToCart(ctx, 1, 1))
	require.NoError(t, f.app.UpdateQuantity(ctx, 1, 2))
	require.NoError(t, f.app.ClearCart(ctx))

	synced := f.gateway.syncedCarts()
	require.Len(t, synced, 3)
	assert.Equal(t, 1, synced[0].ItemCount())
	assert.Equal(t, 3, synced[1].ItemCount())
	assert.Empty(t, synced[2].Items)
}

func TestSyncCart_FailureIsSwallowed(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	f.gateway.SyncErr = errGatewayDown

	require.NoError(t, f.app.AddToCart(ctx, 2, 1))
	assert.Equal(t, 1, f.app.GetCart(ctx).ItemCount(), "local cart is authoritative")
}

func TestDispatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.app.AddToCart(ctx, 3, 1))

	view := f.app.CartView(ctx)
	require.Len(t, view.Rows, 1)

	require.NoError(t, f.app.Dispatch(ctx, view.Rows[0].Increment))
	assert.Equal(t, 2, f.app.CartBadge(ctx).Count)

	require.NoError(t, f.app.Dispatch(ctx, view.Rows[0].Remove))
	assert.Equal(t, 0, f.app.CartBadge(ctx).Count)
	assert.Equal(t, []string{analytics.EventAddToCart, analytics.EventRemoveFromCart}, f.tracker.names())

	err := f.app.Dispatch(ctx, presenter.Action{Kind: presenter.ActionUpdateQuantity, ProductID: 3, Delta: 1})
	assert.ErrorIs(t, err, cart.ErrItemNotFound)
}

func TestLoginLogout(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	assert.Nil(t, f.app.CurrentUser())

	user, err := f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "ada@example.com", f.app.CurrentUser().Email)
	assert.Contains(t, f.tracker.names(), analytics.EventLogin)

	require.NoError(t, f.app.Logout(ctx))
	assert.Nil(t, f.app.CurrentUser())
	assert.Equal(t, 1, f.gateway.LoggedOut)
}

func TestLogin_Failure(t *testing.T) {
	f := setup(t)
	f.gateway.LoginErr = &gateway.RemoteError{Method: "POST", Path: "/api/auth/login", StatusCode: 401}

	user, err := f.app.Login(context.Background(), "ada@example.com", "bad")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, gateway.ErrRemoteRequestFailed)
	assert.Nil(t, f.app.CurrentUser())
	assert.Empty(t, f.tracker.names())
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	f := setup(t)

	user, err := f.app.Register(context.Background(), gateway.RegisterRequest{Name: "Grace", Email: "g@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Grace", user.Name)
	assert.Nil(t, f.app.CurrentUser())
}

func TestPlaceOrder_RequiresUser(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.app.AddToCart(context.Background(), 1, 1))

	order, err := f.app.PlaceOrder(context.Background())
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, f.gateway.OrderReqs)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)

	_, err = f.app.PlaceOrder(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_ClearsCartOnSuccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, f.app.AddToCart(ctx, 4, 2))

	order, err := f.app.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)

	require.Len(t, f.gateway.OrderReqs, 1)
	req := f.gateway.OrderReqs[0]
	assert.True(t, req.Total.Equal(decimal.RequireFromString("59.98")))
	require.Len(t, req.Items, 1)
	assert.Equal(t, 2, req.Items[0].Quantity)

	assert.Empty(t, f.app.GetCart(ctx).Items)
	assert.Contains(t, f.tracker.names(), analytics.EventOrderPlaced)
}

func TestPlaceOrder_FailureKeepsCart(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, f.app.AddToCart(ctx, 4, 2))
	f.gateway.OrderErr = &gateway.RemoteError{Method: "POST", Path: "/api/orders", StatusCode: 503}

	order, err := f.app.PlaceOrder(ctx)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, gateway.ErrRemoteRequestFailed)

	c := f.app.GetCart(ctx)
	assert.Equal(t, 2, c.ItemCount())
	assert.NotContains(t, f.tracker.names(), analytics.EventOrderPlaced)
}

func TestOrderHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.app.OrderHistory(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = f.app.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	f.gateway.History = []domain.Order{{ID: "o-1"}, {ID: "o-2"}}

	orders, err := f.app.OrderHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestSearch(t *testing.T) {
	f := setup(t)

	v := f.app.Search("charger")
	require.Len(t, v.Results, 1)
	assert.Equal(t, int64(4), v.Results[0].ID)

	assert.False(t, f.app.SearchDismiss().Visible)
	assert.True(t, f.app.SearchFocus().Visible)
}

func TestTrackPageView(t *testing.T) {
	f := setup(t)
	f.app.TrackPageView(context.Background(), "cart.html")

	require.Len(t, f.tracker.Events, 1)
	assert.Equal(t, analytics.EventPageView, f.tracker.Events[0].Name)
	assert.Equal(t, "cart.html", f.tracker.Events[0].Data["page"])
}

func TestNew_DefaultsToNopTracker(t *testing.T) {
	c, err := catalog.Load(context.Background(), catalog.EmbeddedSource{})
	require.NoError(t, err)
	a := New(Deps{Catalog: c, Cart: cart.NewStore(c, storage.NewMemoryStore()), Gateway: &MockGateway{}, Logger: zerolog.Nop()})

	assert.NoError(t, a.AddToCart(context.Background(), 1, 1))
}
