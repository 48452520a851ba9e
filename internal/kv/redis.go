package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store and Watcher on top of Redis. Keys live under
// a namespace prefix; the changed signal rides a pub/sub channel per key,
// so views held by other processes see mutations too.
type RedisStore struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration // zero means no expiry
}

func NewRedisStore(client *redis.Client, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.storageKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.storageKey(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	s.publishChange(ctx, key)
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.storageKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	s.publishChange(ctx, key)
	return nil
}

func (s *RedisStore) Watch(key string) (<-chan struct{}, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := s.client.Subscribe(ctx, s.changeChannel(key))

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	stop := func() {
		cancel()
		if err := pubsub.Close(); err != nil {
			log.Printf("pubsub close error: %v", err)
		}
	}
	return ch, stop
}

// publishChange is best effort: a failed signal means a stale view until
// the next re-read, not a lost write.
func (s *RedisStore) publishChange(ctx context.Context, key string) {
	if err := s.client.Publish(ctx, s.changeChannel(key), "").Err(); err != nil {
		log.Printf("publish change for %q failed: %v", key, err)
	}
}

func (s *RedisStore) storageKey(key string) string {
	return fmt.Sprintf("%s:%s", s.namespace, key)
}

func (s *RedisStore) changeChannel(key string) string {
	return fmt.Sprintf("%s:changed:%s", s.namespace, key)
}
