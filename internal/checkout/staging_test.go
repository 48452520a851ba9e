package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/kv"
)

func TestStageAndConsume(t *testing.T) {
	staging := NewStaging(kv.NewMemoryStore(), "client-1")
	ctx := context.Background()

	p := catalog.Product{
		ID:     "p1",
		Name:   "Kursi Kayu",
		Slug:   "kursi-kayu",
		Price:  750000,
		Stock:  4,
		Weight: 6000,
	}

	staged, err := staging.Stage(ctx, p, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, staged.ID)
	assert.Equal(t, int64(1500000), staged.Subtotal())

	got, err := staging.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, staged, got)

	// Read once: the slot is empty afterwards.
	_, err = staging.Consume(ctx)
	assert.ErrorIs(t, err, ErrNothingStaged)
}

func TestStage_ReplacesPrevious(t *testing.T) {
	staging := NewStaging(kv.NewMemoryStore(), "client-1")
	ctx := context.Background()

	_, err := staging.Stage(ctx, catalog.Product{ID: "p1", Price: 100}, 1)
	require.NoError(t, err)
	_, err = staging.Stage(ctx, catalog.Product{ID: "p2", Price: 200}, 3)
	require.NoError(t, err)

	got, err := staging.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p2", got.ProductID)
	assert.Equal(t, 3, got.Quantity)
}

func TestPeek_DoesNotConsume(t *testing.T) {
	staging := NewStaging(kv.NewMemoryStore(), "client-1")
	ctx := context.Background()

	_, err := staging.Stage(ctx, catalog.Product{ID: "p1", Price: 100}, 1)
	require.NoError(t, err)

	first, err := staging.Peek(ctx)
	require.NoError(t, err)
	second, err := staging.Peek(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestConsume_MalformedRecord(t *testing.T) {
	mem := kv.NewMemoryStore()
	staging := NewStaging(mem, "client-1")
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "checkout:client-1", []byte(`{"id":`)))

	_, err := staging.Consume(ctx)
	assert.ErrorIs(t, err, ErrNothingStaged)
}

func TestStagingIsPerClient(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()

	a := NewStaging(mem, "client-a")
	b := NewStaging(mem, "client-b")

	_, err := a.Stage(ctx, catalog.Product{ID: "p1", Price: 100}, 1)
	require.NoError(t, err)

	_, err = b.Consume(ctx)
	assert.ErrorIs(t, err, ErrNothingStaged)
}
