package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/BakiTacos/parata.my.id/internal/cart"
	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/checkout"
	"github.com/BakiTacos/parata.my.id/internal/kv"
	"github.com/BakiTacos/parata.my.id/internal/purchase"
)

// CheckoutHandler drives the "buy now" flow: staging a single-item
// purchase and handing it to the checkout page exactly once.
type CheckoutHandler struct {
	cartStore    kv.Store
	stagingStore kv.Store
	catalog      *catalog.Service
}

func NewCheckoutHandler(cartStore, stagingStore kv.Store, catalogService *catalog.Service) *CheckoutHandler {
	return &CheckoutHandler{
		cartStore:    cartStore,
		stagingStore: stagingStore,
		catalog:      catalogService,
	}
}

type BuyNowRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (h *CheckoutHandler) controllerFor(r *http.Request) *purchase.Controller {
	clientID := clientIDFromContext(r.Context())
	return purchase.NewController(
		cart.NewStore(h.cartStore, clientID),
		checkout.NewStaging(h.stagingStore, clientID),
	)
}

func (h *CheckoutHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	var req BuyNowRequestDTO
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

	staged, err := h.controllerFor(r).BuyNow(r.Context(), *product, req.Quantity)
	if err != nil {
		if errors.Is(err, purchase.ErrOutOfStock) {
			respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
			return
		}
		log.Printf("buy now error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not stage checkout")
		return
	}

	respondJSON(w, http.StatusCreated, staged)
}

// Staged consumes the staged record: the checkout page reads it once and
// the slot empties.
func (h *CheckoutHandler) Staged(w http.ResponseWriter, r *http.Request) {
	staging := checkout.NewStaging(h.stagingStore, clientIDFromContext(r.Context()))

	rec, err := staging.Consume(r.Context())
	if err != nil {
		if errors.Is(err, checkout.ErrNothingStaged) {
			respondError(w, http.StatusNotFound, "nothing_staged", "no checkout staged")
			return
		}
		log.Printf("consume staged error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "could not read staged checkout")
		return
	}

	respondJSON(w, http.StatusOK, rec)
}
