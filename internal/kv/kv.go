package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is the client-state storage the cart and checkout staging write to.
// Consumers define this interface, not the Redis implementation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Watcher delivers a payload-free changed signal for a key. Receivers
// re-read the store on every signal; there is nothing to read from the
// channel itself.
type Watcher interface {
	Watch(key string) (<-chan struct{}, func())
}
