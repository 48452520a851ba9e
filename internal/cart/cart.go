package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/kv"
)

// Line is one product entry in a cart with its quantity. Stock is a
// snapshot taken when the product was added; it is not re-validated
// against the live catalog afterwards.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	Slug     string `json:"slug"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Stock    int    `json:"stock"`
	Weight   int64  `json:"weight"`
}

// Store holds one client's cart lines in an injected key-value store.
// The whole list is re-serialized on every mutation, and the store's
// changed signal lets other views of the same cart re-read it.
//
// Quantity bounds violations are policy no-ops, never errors; only
// storage failures are returned to the caller.
type Store struct {
	kv  kv.Store
	key string
}

func NewStore(store kv.Store, clientID string) *Store {
	return &Store{
		kv:  store,
		key: fmt.Sprintf("cart:%s", clientID),
	}
}

// Load reads the persisted lines. An absent, empty or malformed entry is
// an empty cart, not an error: corrupt client state is discarded rather
// than surfaced.
func (s *Store) Load(ctx context.Context) []Line {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("cart load error: %v", err)
		}
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Printf("discarding malformed cart state: %v", err)
		return nil
	}
	return lines
}

// AddOrIncrement merges the product into the cart: an existing line's
// quantity moves by delta, a new line starts at delta. The result is
// always clamped to [1, stock]. A product with no stock is not added.
func (s *Store) AddOrIncrement(ctx context.Context, p catalog.Product, delta int) error {
	if p.Stock <= 0 {
		return nil
	}

	lines := s.Load(ctx)
	found := false
	for i := range lines {
		if lines[i].ID == p.ID {
			lines[i].Quantity = clampQuantity(lines[i].Quantity+delta, p.Stock)
			lines[i].Stock = p.Stock
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Slug:     p.Slug,
			Price:    p.Price,
			Quantity: clampQuantity(delta, p.Stock),
			Stock:    p.Stock,
			Weight:   p.Weight,
		})
	}

	return s.save(ctx, lines)
}

// SetQuantity replaces a line's quantity. Out-of-range values leave the
// cart untouched; the quantity controls are expected to be disabled at
// the bounds rather than report an error.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) error {
	lines := s.Load(ctx)
	for i := range lines {
		if lines[i].ID != id {
			continue
		}
		if quantity < 1 || quantity > lines[i].Stock {
			return nil
		}
		lines[i].Quantity = quantity
		return s.save(ctx, lines)
	}
	return nil
}

// Remove deletes the line with the given product id.
func (s *Store) Remove(ctx context.Context, id string) error {
	lines := s.Load(ctx)
	kept := lines[:0]
	for _, line := range lines {
		if line.ID != id {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return s.save(ctx, kept)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Watch exposes the underlying changed signal for this cart, if the
// key-value store supports one.
func (s *Store) Watch() (<-chan struct{}, func(), bool) {
	watcher, ok := s.kv.(kv.Watcher)
	if !ok {
		return nil, nil, false
	}
	ch, stop := watcher.Watch(s.key)
	return ch, stop, true
}

func (s *Store) save(ctx context.Context, lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func clampQuantity(q, stock int) int {
	if q < 1 {
		return 1
	}
	if q > stock {
		return stock
	}
	return q
}
