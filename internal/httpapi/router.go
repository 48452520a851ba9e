package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// AdminLoginPath is the one admin route reachable without a session
// cookie.
const AdminLoginPath = "/ausso/login"

// NewRouter assembles the storefront and admin surfaces.
func NewRouter(
	products *ProductHandler,
	carts *CartHandler,
	checkouts *CheckoutHandler,
	admin *AdminHandler,
	adminGate func(http.Handler) http.Handler,
	requestTimeout time.Duration,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(ClientSession)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.List)
		r.Get("/products/{slug}", products.Get)
		r.Get("/categories", products.Categories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.Get)
			r.Post("/items", carts.AddItem)
			r.Put("/items/{product_id}", carts.UpdateQuantity)
			r.Delete("/items/{product_id}", carts.RemoveItem)
			r.Delete("/", carts.Clear)
		})

		r.Post("/buy-now", checkouts.BuyNow)
		r.Get("/checkout/staged", checkouts.Staged)
	})

	r.Route("/ausso", func(r chi.Router) {
		r.Use(adminGate)

		r.Post("/login", admin.Login)
		r.Post("/logout", admin.Logout)
		r.Get("/api/summary", admin.Summary)
		r.Post("/api/products", admin.CreateProduct)
		r.Put("/api/products/{id}", admin.UpdateProduct)
		r.Delete("/api/products/{id}", admin.DeleteProduct)
	})

	return r
}
