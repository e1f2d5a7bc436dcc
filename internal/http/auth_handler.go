package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/gateway"
)

type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, req gateway.RegisterRequest) (*domain.User, error)
	Logout(ctx context.Context) error
	CurrentUser() *domain.User
}

type AuthHandler struct {
	session SessionService
}

func NewAuthHandler(session SessionService) *AuthHandler {
	return &AuthHandler{session: session}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, &UserResponse{User: user})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req gateway.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	user, err := h.session.Register(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, &UserResponse{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.session.CurrentUser()
	if user == nil {
		respondError(w, r, http.StatusUnauthorized, "unauthenticated", "login required")
		return
	}
	respondJSON(w, r, http.StatusOK, &UserResponse{User: user})
}
