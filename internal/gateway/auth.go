package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/storage"
)

type LoginResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and stores the returned bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/login", body: body}, &result); err != nil {
		return nil, err
	}

	if err := c.tokens.Set(ctx, storage.TokenKey, result.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: req}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout forgets the stored token. It never calls the gateway.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.tokens.Delete(ctx, storage.TokenKey); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}
