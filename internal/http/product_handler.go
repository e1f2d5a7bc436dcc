package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/VanshikaGY/ShopEasy/internal/catalog"
	"github.com/VanshikaGY/ShopEasy/internal/domain"
	"github.com/VanshikaGY/ShopEasy/internal/presenter"
)

type SearchService interface {
	Search(text string) presenter.SearchView
	SearchFocus() presenter.SearchView
	SearchDismiss() presenter.SearchView
}

type PageTracker interface {
	TrackPageView(ctx context.Context, page string)
}

type ProductHandler struct {
	catalog *catalog.Catalog
	search  SearchService
	pages   PageTracker
}

func NewProductHandler(c *catalog.Catalog, search SearchService, pages PageTracker) *ProductHandler {
	return &ProductHandler{catalog: c, search: search, pages: pages}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []domain.Product
	if category := r.URL.Query().Get("category"); category != "" {
		products = h.catalog.ByCategory(category)
	} else {
		products = h.catalog.All()
	}
	respondJSON(w, r, http.StatusOK, &ProductsResponse{Products: products})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must contain a number")
		return
	}
	product, found := h.catalog.GetByID(id)
	if !found {
		respondError(w, r, http.StatusNotFound, "product_not_found", "product not found")
		return
	}

	h.pages.TrackPageView(r.Context(), fmt.Sprintf("product-details.html?id=%d", id))
	respondJSON(w, r, http.StatusOK, product)
}

func (h *ProductHandler) Related(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDParam(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, "invalid_product_id", "product_id must contain a number")
		return
	}

	limit := catalog.DefaultRelatedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, r, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	// unknown ids have no related products
	respondJSON(w, r, http.StatusOK, &ProductsResponse{Products: h.catalog.Related(id, limit)})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, &CategoriesResponse{Categories: h.catalog.Categories()})
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.search.Search(r.URL.Query().Get("q")))
}

func (h *ProductHandler) SearchFocus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.search.SearchFocus())
}

func (h *ProductHandler) SearchDismiss(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.search.SearchDismiss())
}
