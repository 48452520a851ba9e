package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BakiTacos/parata.my.id/internal/cart"
	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/kv"
)

type CartHandler struct {
	store   kv.Store
	catalog *catalog.Service
}

func NewCartHandler(store kv.Store, catalogService *catalog.Service) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalogService,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items  []cart.Line `json:"items"`
	Totals cart.Totals `json:"totals"`
}

func (h *CartHandler) cartFor(r *http.Request) *cart.Store {
	return cart.NewStore(h.store, clientIDFromContext(r.Context()))
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondCart(w, r, h.cartFor(r), http.StatusOK)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}
	if product.Stock <= 0 {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}

	store := h.cartFor(r)
	if err := store.AddOrIncrement(r.Context(), *product, req.Quantity); err != nil {
		log.Printf("cart add item error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update cart")
		return
	}

	respondCart(w, r, store, http.StatusCreated)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		return
	}

	store := h.cartFor(r)
	// Above-stock quantities are a silent no-op at the store level; the
	// response carries the cart as it actually is.
	if err := store.SetQuantity(r.Context(), productID, req.Quantity); err != nil {
		log.Printf("cart update quantity error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update cart")
		return
	}

	respondCart(w, r, store, http.StatusOK)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	store := h.cartFor(r)
	if err := store.Remove(r.Context(), productID); err != nil {
		log.Printf("cart remove item error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not update cart")
		return
	}

	respondCart(w, r, store, http.StatusOK)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.cartFor(r)
	if err := store.Clear(r.Context()); err != nil {
		log.Printf("cart clear error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not clear cart")
		return
	}

	respondCart(w, r, store, http.StatusOK)
}

func respondCart(w http.ResponseWriter, r *http.Request, store *cart.Store, status int) {
	lines := store.Load(r.Context())
	if lines == nil {
		lines = []cart.Line{}
	}
	respondJSON(w, status, CartResponse{
		Items:  lines,
		Totals: cart.Aggregate(lines),
	})
}
