// Package checkout holds the direct-purchase staging slot: a single
// transient record written by "buy now" and read once by the checkout
// flow, bypassing the multi-item cart entirely.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/kv"

	"github.com/google/uuid"
)

var ErrNothingStaged = errors.New("nothing staged for checkout")

// Staged is a single-item purchase intent: the product fields frozen at
// the moment of "buy now", plus the chosen quantity.
type Staged struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Slug       string    `json:"slug"`
	Price      int64     `json:"price"`
	Quantity   int       `json:"quantity"`
	Weight     int64     `json:"weight"`
	CapturedAt time.Time `json:"captured_at"`
}

// Subtotal is the staged line's price times quantity.
func (s Staged) Subtotal() int64 {
	return s.Price * int64(s.Quantity)
}

// Staging stores at most one Staged record per client. The backing
// store is expected to be session-scoped (TTL'd); a record that is never
// consumed simply ages out.
type Staging struct {
	kv  kv.Store
	key string
}

func NewStaging(store kv.Store, clientID string) *Staging {
	return &Staging{
		kv:  store,
		key: fmt.Sprintf("checkout:%s", clientID),
	}
}

// Stage replaces any previously staged record.
func (s *Staging) Stage(ctx context.Context, p catalog.Product, quantity int) (Staged, error) {
	rec := Staged{
		ID:         uuid.New().String(),
		ProductID:  p.ID,
		Name:       p.Name,
		Image:      p.Image,
		Slug:       p.Slug,
		Price:      p.Price,
		Quantity:   quantity,
		Weight:     p.Weight,
		CapturedAt: time.Now(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return Staged{}, fmt.Errorf("marshal staged record: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return Staged{}, fmt.Errorf("persist staged record: %w", err)
	}
	return rec, nil
}

// Consume returns the staged record and removes it; the slot is read
// once. A missing or malformed record is ErrNothingStaged.
func (s *Staging) Consume(ctx context.Context) (Staged, error) {
	rec, err := s.Peek(ctx)
	if err != nil {
		return Staged{}, err
	}
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return Staged{}, fmt.Errorf("clear staged record: %w", err)
	}
	return rec, nil
}

// Peek reads the staged record without consuming it.
func (s *Staging) Peek(ctx context.Context) (Staged, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("staging read error: %v", err)
		}
		return Staged{}, ErrNothingStaged
	}

	var rec Staged
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Printf("discarding malformed staged record: %v", err)
		return Staged{}, ErrNothingStaged
	}
	return rec, nil
}
