// Package purchase mediates between a product detail view and the cart
// and checkout staging: a bounded quantity selector plus the two actions
// it feeds, "add to cart" and "buy now".
package purchase

import (
	"context"
	"errors"

	"github.com/BakiTacos/parata.my.id/internal/cart"
	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/checkout"
)

var ErrOutOfStock = errors.New("product is out of stock")

// QuantityPicker is the +/- selector on a product page, bounded to
// [1, stock]. With no stock the picker and both actions are disabled.
type QuantityPicker struct {
	stock    int
	quantity int
}

func NewQuantityPicker(stock int) *QuantityPicker {
	q := 1
	if stock <= 0 {
		q = 0
	}
	return &QuantityPicker{stock: stock, quantity: q}
}

func (p *QuantityPicker) Quantity() int { return p.quantity }

func (p *QuantityPicker) Disabled() bool { return p.stock <= 0 }

// Inc steps up, stopping at the stock ceiling.
func (p *QuantityPicker) Inc() int {
	if !p.Disabled() && p.quantity < p.stock {
		p.quantity++
	}
	return p.quantity
}

// Dec steps down, stopping at 1.
func (p *QuantityPicker) Dec() int {
	if !p.Disabled() && p.quantity > 1 {
		p.quantity--
	}
	return p.quantity
}

// Controller wires a product's actions to one client's cart and staging
// slot.
type Controller struct {
	cart    *cart.Store
	staging *checkout.Staging
}

func NewController(cartStore *cart.Store, staging *checkout.Staging) *Controller {
	return &Controller{
		cart:    cartStore,
		staging: staging,
	}
}

// AddToCart puts quantity units of the product into the cart. The result
// is reported synchronously; no network round-trip is involved beyond
// the cart's own persistence.
func (c *Controller) AddToCart(ctx context.Context, p catalog.Product, quantity int) error {
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	return c.cart.AddOrIncrement(ctx, p, quantity)
}

// BuyNow stages a single-item checkout for the product, leaving the cart
// untouched.
func (c *Controller) BuyNow(ctx context.Context, p catalog.Product, quantity int) (checkout.Staged, error) {
	if p.Stock <= 0 {
		return checkout.Staged{}, ErrOutOfStock
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > p.Stock {
		quantity = p.Stock
	}
	return c.staging.Stage(ctx, p, quantity)
}
