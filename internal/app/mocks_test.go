package app

import (
	"context"
	"errors"
	"sync"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
	"github.com/VanshikaGY/ShopEasy/internal/presenter"
)

type MockGateway struct {
	m sync.RWMutex

	LoginResult *gateway.LoginResult
	LoginErr    error
	RegisterErr error
	SyncErr     error
	OrderErr    error
	Order       *domain.Order
	History     []domain.Order
	HasToken    bool

	Synced     []domain.Cart
	OrderReqs  []domain.OrderRequest
	LoggedOut  int
	Registered []gateway.RegisterRequest
}

func (g *MockGateway) Login(_ context.Context, email, _ string) (*gateway.LoginResult, error) {
	g.m.Lock()
	defer g.m.Unlock()
	if g.LoginErr != nil {
		return nil, g.LoginErr
	}
	g.HasToken = true
	if g.LoginResult != nil {
		return g.LoginResult, nil
	}
	return &gateway.LoginResult{User: domain.User{ID: "u1", Name: "Ada", Email: email}, Token: "tok"}, nil
}

func (g *MockGateway) Register(_ context.Context, req gateway.RegisterRequest) (*domain.User, error) {
	g.m.Lock()
	defer g.m.Unlock()
	g.Registered = append(g.Registered, req)
	if g.RegisterErr != nil {
		return nil, g.RegisterErr
	}
	return &domain.User{ID: "new", Name: req.Name, Email: req.Email}, nil
}

func (g *MockGateway) Logout(context.Context) error {
	g.m.Lock()
	defer g.m.Unlock()
	g.HasToken = false
	g.LoggedOut++
	return nil
}

func (g *MockGateway) SyncCart(_ context.Context, c domain.Cart) error {
	g.m.Lock()
	defer g.m.Unlock()
	if !g.HasToken {
		return gateway.ErrNoToken
	}
	g.Synced = append(g.Synced, c)
	return g.SyncErr
}

func (g *MockGateway) PlaceOrder(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	g.m.Lock()
	defer g.m.Unlock()
	g.OrderReqs = append(g.OrderReqs, req)
	if g.OrderErr != nil {
		return nil, g.OrderErr
	}
	if g.Order != nil {
		return g.Order, nil
	}
	return &domain.Order{ID: "o-1", Items: req.Items, Total: req.Total, Status: "pending"}, nil
}

func (g *MockGateway) OrderHistory(context.Context) ([]domain.Order, error) {
	g.m.RLock()
	defer g.m.RUnlock()
	if g.OrderErr != nil {
		return nil, g.OrderErr
	}
	return g.History, nil
}

func (g *MockGateway) syncedCarts() []domain.Cart {
	g.m.RLock()
	defer g.m.RUnlock()
	return append([]domain.Cart(nil), g.Synced...)
}

type trackedEvent struct {
	Name string
	Data map[string]any
}

type MockTracker struct {
	m      sync.RWMutex
	Events []trackedEvent
	Err    error
}

func (t *MockTracker) Track(_ context.Context, name string, data map[string]any) error {
	t.m.Lock()
	defer t.m.Unlock()
	t.Events = append(t.Events, trackedEvent{Name: name, Data: data})
	return t.Err
}

func (t *MockTracker) names() []string {
	t.m.RLock()
	defer t.m.RUnlock()
	names := make([]string, 0, len(t.Events))
	for _, e := range t.Events {
		names = append(names, e.Name)
	}
	return names
}

type MockSurface struct {
	m      sync.RWMutex
	Badges []presenter.BadgeView
	Views  []presenter.CartView
}

func (s *MockSurface) ShowBadge(b presenter.BadgeView) {
	s.m.Lock()
	defer s.m.Unlock()
	s.Badges = append(s.Badges, b)
}

func (s *MockSurface) ShowCart(v presenter.CartView) {
	s.m.Lock()
	defer s.m.Unlock()
	s.Views = append(s.Views, v)
}

var errGatewayDown = errors.New("gateway down")
