package cart

// Totals are derived from the current lines on every read; they are
// never persisted.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	TotalWeight int64 `json:"total_weight"`
	TotalItems  int   `json:"total_items"`
}

// Aggregate sums the cart. A line missing price or weight contributes
// zero for that field; old product records may lack either.
func Aggregate(lines []Line) Totals {
	var t Totals
	for _, line := range lines {
		qty := int64(line.Quantity)
		t.Subtotal += line.Price * qty
		t.TotalWeight += line.Weight * qty
		t.TotalItems += line.Quantity
	}
	return t
}
