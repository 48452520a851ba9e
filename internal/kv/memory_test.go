package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cart", []byte(`[{"id":"a"}]`)))

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), got)

	require.NoError(t, s.Delete(ctx, "cart"))
	_, err = s.Get(ctx, "cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("abc")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryStore_WatchSignalsOnSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch, stop := s.Watch("cart")
	defer stop()

	require.NoError(t, s.Set(ctx, "cart", []byte("[]")))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected changed signal after Set")
	}
}

func TestMemoryStore_WatchIgnoresOtherKeys(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch, stop := s.Watch("cart")
	defer stop()

	require.NoError(t, s.Set(ctx, "checkout", []byte("{}")))

	select {
	case <-ch:
		t.Fatal("signal for unrelated key")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryStore_StopReleasesWatcher(t *testing.T) {
	s := NewMemoryStore()

	_, stop := s.Watch("cart")
	stop()

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Empty(t, s.watchers)
}
