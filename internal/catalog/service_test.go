package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mu       sync.Mutex
	products []Product
	err      error
	calls    int
	lastCat  string
}

func (m *mockRepository) ListByCategory(_ context.Context, category string) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastCat = category
	if m.err != nil {
		return nil, m.err
	}
	var out []Product
	for _, p := range m.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) FindBySlug(_ context.Context, slug string) (*Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].Slug == slug {
			return &m.products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (m *mockRepository) FindByID(_ context.Context, id string) (*Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.products {
		if m.products[i].ID == id {
			return &m.products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestList_CategoryFilterWithLocalSort(t *testing.T) {
	repo := &mockRepository{
		products: []Product{
			{ID: "1", Category: "Dapur", Price: 100},
			{ID: "2", Category: "Lainnya", Price: 999},
			{ID: "3", Category: "Dapur", Price: 300},
		},
	}
	sut := NewService(repo)

	got, err := sut.List(context.Background(), "Dapur", SortPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, ids(got))
}

func TestList_AllSentinelMeansNoFilter(t *testing.T) {
	repo := &mockRepository{
		products: []Product{
			{ID: "1", Category: "Dapur"},
			{ID: "2", Category: "Lainnya"},
		},
	}
	sut := NewService(repo)

	got, err := sut.List(context.Background(), CategoryAll, SortNewest)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "", repo.lastCat)
}

func TestList_PriceAscIsReverseOfDesc(t *testing.T) {
	repo := &mockRepository{
		products: []Product{
			{ID: "a", Price: 320000},
			{ID: "b", Price: 89000},
			{ID: "c", Price: 750000},
			{ID: "d", Price: 12000},
		},
	}
	sut := NewService(repo)
	ctx := context.Background()

	asc, err := sut.List(ctx, "", SortPriceAsc)
	require.NoError(t, err)
	desc, err := sut.List(ctx, "", SortPriceDesc)
	require.NoError(t, err)

	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestList_PriceTiesKeepFetchOrder(t *testing.T) {
	repo := &mockRepository{
		products: []Product{
			{ID: "a", Price: 100},
			{ID: "b", Price: 100},
			{ID: "c", Price: 50},
		},
	}
	sut := NewService(repo)

	got, err := sut.List(context.Background(), "", SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
}

func TestList_NewestDefaultAndZeroTimestampIsOldest(t *testing.T) {
	now := time.Now()
	repo := &mockRepository{
		products: []Product{
			{ID: "old", CreatedAt: now.Add(-time.Hour)},
			{ID: "undated"}, // missing created_at sorts as oldest
			{ID: "new", CreatedAt: now},
		},
	}
	sut := NewService(repo)
	ctx := context.Background()

	newest, err := sut.List(ctx, "", ParseSort("garbage"))
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old", "undated"}, ids(newest))

	oldest, err := sut.List(ctx, "", SortOldest)
	require.NoError(t, err)
	assert.Equal(t, []string{"undated", "old", "new"}, ids(oldest))
}

func TestList_BackendFailureIsUnavailable(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection refused")}
	sut := NewService(repo)

	got, err := sut.List(context.Background(), "Dapur", SortNewest)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, got)
}

func TestList_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	repo := &mockRepository{err: errors.New("connection refused")}
	sut := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := sut.List(ctx, "Dapur", SortNewest)
		require.ErrorIs(t, err, ErrUnavailable)
	}
	callsBefore := repo.calls

	// Breaker is open now: the repo is no longer hit.
	_, err := sut.List(ctx, "Dapur", SortNewest)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, callsBefore, repo.calls)
}

func TestList_SortsACopyOfSharedResult(t *testing.T) {
	repo := &mockRepository{
		products: []Product{
			{ID: "a", Price: 300, CreatedAt: time.Now()},
			{ID: "b", Price: 100, CreatedAt: time.Now().Add(-time.Minute)},
		},
	}
	sut := NewService(repo)
	ctx := context.Background()

	asc, err := sut.List(ctx, "", SortPriceAsc)
	require.NoError(t, err)
	desc, err := sut.List(ctx, "", SortPriceDesc)
	require.NoError(t, err)

	assert.Equal(t, "b", asc[0].ID)
	assert.Equal(t, "a", desc[0].ID)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSort(""))
	assert.Equal(t, SortNewest, ParseSort("bogus"))
	assert.Equal(t, SortOldest, ParseSort("oldest"))
	assert.Equal(t, SortPriceAsc, ParseSort("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSort("price-desc"))
}

func TestGet_NotFoundPassesThrough(t *testing.T) {
	repo := &mockRepository{}
	sut := NewService(repo)

	_, err := sut.Get(context.Background(), "no-such-slug")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NotErrorIs(t, err, ErrUnavailable)
}
