package kv

import (
	"context"
	"sync"
)

// MemoryStore implements Store and Watcher with in-memory storage.
// Used in tests and as the tab-scoped staging store.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	nextID   int
	watchers map[string]map[int]chan struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string][]byte),
		watchers: make(map[string]map[int]chan struct{}),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data[key] = stored
	s.mu.Unlock()

	s.notify(key)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()

	s.notify(key)
	return nil
}

// Watch registers a changed signal for key. The returned stop function
// must be called to release the subscription.
func (s *MemoryStore) Watch(key string) (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan struct{}, 1)
	if s.watchers[key] == nil {
		s.watchers[key] = make(map[int]chan struct{})
	}
	s.watchers[key][id] = ch

	stop := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if subs, ok := s.watchers[key]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.watchers, key)
			}
		}
	}
	return ch, stop
}

func (s *MemoryStore) notify(key string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.watchers[key] {
		// Non-blocking: a watcher that has not drained its pending
		// signal re-reads once anyway.
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
