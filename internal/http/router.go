package http

import (
	"net/http"
	"time"

	"github.com/VanshikaGY/ShopEasy/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter exposes the storefront over JSON.
func NewRouter(a *app.App, requestTimeout time.Duration, log zerolog.Logger) http.Handler {
	products := NewProductHandler(a.Catalog(), a, a)
	carts := NewCartHandler(a)
	auth := NewAuthHandler(a)
	orders := NewOrdersHandler(a)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Get("/{product_id}", products.Get)
			r.Get("/{product_id}/related", products.Related)
		})
		r.Get("/categories", products.Categories)

		r.Route("/search", func(r chi.Router) {
			r.Get("/", products.Search)
			r.Post("/focus", products.SearchFocus)
			r.Post("/dismiss", products.SearchDismiss)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Delete("/", carts.ClearCart)
			r.Get("/view", carts.View)
			r.Get("/badge", carts.Badge)
			r.Post("/actions", carts.Dispatch)
			r.Post("/items", carts.AddItem)
			r.Patch("/items/{product_id}", carts.UpdateQuantity)
			r.Delete("/items/{product_id}", carts.RemoveItem)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", auth.Login)
			r.Post("/register", auth.Register)
			r.Post("/logout", auth.Logout)
			r.Get("/me", auth.Me)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.History)
			r.Post("/", orders.Place)
		})
	})

	return otelhttp.NewHandler(r, "shopeasy")
}
