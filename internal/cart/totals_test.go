package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	lines := []Line{
		{ID: "a", Price: 100, Quantity: 2, Weight: 500},
		{ID: "b", Price: 50, Quantity: 1, Weight: 200},
	}

	totals := Aggregate(lines)
	assert.Equal(t, int64(250), totals.Subtotal)
	assert.Equal(t, int64(1200), totals.TotalWeight)
	assert.Equal(t, 3, totals.TotalItems)
}

func TestAggregate_OrderInvariant(t *testing.T) {
	forward := []Line{
		{ID: "a", Price: 750000, Quantity: 1, Weight: 4000},
		{ID: "b", Price: 320000, Quantity: 2, Weight: 1500},
		{ID: "c", Price: 89000, Quantity: 5, Weight: 300},
	}
	reversed := []Line{forward[2], forward[1], forward[0]}

	assert.Equal(t, Aggregate(forward), Aggregate(reversed))
}

func TestAggregate_MissingFieldsCountAsZero(t *testing.T) {
	lines := []Line{
		{ID: "a", Quantity: 3},             // no price, no weight
		{ID: "b", Price: 100, Quantity: 1}, // no weight
	}

	totals := Aggregate(lines)
	assert.Equal(t, int64(100), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TotalWeight)
	assert.Equal(t, 4, totals.TotalItems)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, Totals{}, Aggregate(nil))
}
