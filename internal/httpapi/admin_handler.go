package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BakiTacos/parata.my.id/internal/adminauth"
	"github.com/BakiTacos/parata.my.id/internal/catalog"
)

// adminCatalog is what the admin panel needs from the catalog backend.
type adminCatalog interface {
	catalog.Repository
	catalog.Writer
}

type AdminHandler struct {
	sessions *adminauth.Sessions
	repo     adminCatalog
}

func NewAdminHandler(sessions *adminauth.Sessions, repo adminCatalog) *AdminHandler {
	return &AdminHandler{
		sessions: sessions,
		repo:     repo,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.sessions.Login(req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "bad_credentials", "invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     adminauth.SessionCookie,
		Value:    token,
		Path:     "/ausso",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminauth.SessionCookie,
		Value:    "",
		Path:     "/ausso",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireSession verifies the cookie the gate only checked for. Returns
// false after writing the response when the session is invalid.
func (h *AdminHandler) requireSession(w http.ResponseWriter, r *http.Request) bool {
	c, err := r.Cookie(adminauth.SessionCookie)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing session")
		return false
	}
	if _, err := h.sessions.Verify(c.Value); err != nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "invalid session")
		return false
	}
	return true
}

type SummaryResponse struct {
	TotalProducts int64          `json:"total_products"`
	ByCategory    map[string]int `json:"by_category"`
	GeneratedAt   time.Time      `json:"generated_at"`
}

func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w, r) {
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		log.Printf("admin summary count error: %v", err)
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}

	byCategory := make(map[string]int, len(catalog.Categories))
	for _, c := range catalog.Categories {
		products, err := h.repo.ListByCategory(r.Context(), c)
		if err != nil {
			log.Printf("admin summary list error: %v", err)
			respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
			return
		}
		byCategory[c] = len(products)
	}

	respondJSON(w, http.StatusOK, SummaryResponse{
		TotalProducts: total,
		ByCategory:    byCategory,
		GeneratedAt:   time.Now(),
	})
}

type ProductRequestDTO struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
	Category string `json:"category"`
	Stock    int    `json:"stock"`
	Weight   int64  `json:"weight"`
}

func (dto *ProductRequestDTO) validate() (string, bool) {
	switch {
	case dto.Name == "":
		return "name is required", false
	case dto.Slug == "":
		return "slug is required", false
	case dto.Price < 0:
		return "price must not be negative", false
	case dto.Stock < 0:
		return "stock must not be negative", false
	case dto.Weight < 0:
		return "weight must not be negative", false
	}
	return "", true
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w, r) {
		return
	}

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(w, http.StatusBadRequest, "invalid_product", msg)
		return
	}

	p := catalog.Product{
		Name:     req.Name,
		Price:    req.Price,
		Image:    req.Image,
		Slug:     req.Slug,
		Category: req.Category,
		Stock:    req.Stock,
		Weight:   req.Weight,
	}
	if _, err := h.repo.Create(r.Context(), &p); err != nil {
		log.Printf("admin create product error: %v", err)
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}

	respondJSON(w, http.StatusCreated, p)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w, r) {
		return
	}

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg, ok := req.validate(); !ok {
		respondError(w, http.StatusBadRequest, "invalid_product", msg)
		return
	}

	p := catalog.Product{
		ID:       chi.URLParam(r, "id"),
		Name:     req.Name,
		Price:    req.Price,
		Image:    req.Image,
		Slug:     req.Slug,
		Category: req.Category,
		Stock:    req.Stock,
		Weight:   req.Weight,
	}
	if err := h.repo.Update(r.Context(), &p); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		log.Printf("admin update product error: %v", err)
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}

	respondJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireSession(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		log.Printf("admin delete product error: %v", err)
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
