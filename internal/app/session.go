package app

import (
	"context"

	"github.com/VanshikaGY/ShopEasy/internal/analytics"
	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
)

// Login authenticates against the gateway and makes the user current.
func (a *App) Login(ctx context.Context, email, password string) (*domain.User, error) {
	result, err := a.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user := result.User
	a.mu.Lock()
	a.user = &user
	a.mu.Unlock()

	a.track(ctx, analytics.EventLogin, map[string]any{"userId": user.ID})
	return &user, nil
}

// Register creates an account. It does not log the new user in.
func (a *App) Register(ctx context.Context, req gateway.RegisterRequest) (*domain.User, error) {
	return a.gateway.Register(ctx, req)
}

// Logout clears the session and the stored token. The cart is kept.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
	return a.gateway.Logout(ctx)
}

func (a *App) CurrentUser() *domain.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}
