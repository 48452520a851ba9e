package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BakiTacos/parata.my.id/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Service
}

func NewProductHandler(catalogService *catalog.Service) *ProductHandler {
	return &ProductHandler{catalog: catalogService}
}

type ProductListResponse struct {
	Products []catalog.Product `json:"products"`
	Category string            `json:"category"`
	Sort     catalog.Sort      `json:"sort"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}
	sortKey := catalog.ParseSort(r.URL.Query().Get("sort"))

	products, err := h.catalog.List(r.Context(), category, sortKey)
	if err != nil {
		// Distinct from an empty listing: the client must not render
		// "nothing found" when the backend could not be asked.
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	respondJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Category: category,
		Sort:     sortKey,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalog.Get(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"categories": catalog.Categories})
}
