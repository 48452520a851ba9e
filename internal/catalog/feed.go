package catalog

import (
	"context"
	"sync"
	"sync/atomic"
)

// Feed holds the product listing a single view renders. Refreshes may
// overlap when the user flips filters faster than fetches complete; only
// the newest refresh is allowed to land, so a slow earlier response can
// never overwrite a later one.
type Feed struct {
	svc *Service
	gen atomic.Int64

	mu       sync.RWMutex
	products []Product
	err      error
}

func NewFeed(svc *Service) *Feed {
	return &Feed{svc: svc}
}

// Refresh fetches category/key and installs the result unless a newer
// Refresh has started in the meantime, in which case the result is
// discarded. Returns the fetch error regardless.
func (f *Feed) Refresh(ctx context.Context, category string, key Sort) error {
	gen := f.gen.Add(1)

	products, err := f.svc.List(ctx, category, key)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen.Load() != gen {
		return err // superseded
	}
	f.products, f.err = products, err
	return err
}

// Current returns the last landed listing and its error state.
func (f *Feed) Current() ([]Product, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.products, f.err
}
