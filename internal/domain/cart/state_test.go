package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdom "tienda/internal/domain/product"
)

func mustProduct(t *testing.T, id, name string, price string, stock int) productdom.Product {
	t.Helper()
	p, err := productdom.New(
		id, name, "test product",
		decimal.RequireFromString(price), stock,
		"", "",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

// checkInvariants asserts the running aggregates equal the fold over items.
func checkInvariants(t *testing.T, s State) {
	t.Helper()
	items, amount := s.Fold()
	assert.Equal(t, items, s.TotalItems, "totalItems must equal sum of quantities")
	assert.True(t, amount.Equal(s.TotalAmount),
		"totalAmount must equal sum of subtotals: fold=%s running=%s", amount, s.TotalAmount)
}

func TestEmpty(t *testing.T) {
	s := Empty()
	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
	assert.True(t, s.TotalAmount.IsZero())
}

func TestAdd(t *testing.T) {
	p := mustProduct(t, "p1", "Laptop Gaming Pro", "1299.99", 15)

	s := Add(Empty(), p)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "p1", s.Items[0].ProductID)
	assert.Equal(t, 1, s.Items[0].Quantity)
	assert.Equal(t, 1, s.TotalItems)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("1299.99")))
	checkInvariants(t, s)

	// second Add of the same product merges into the existing line
	s = Add(s, p)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, 2, s.TotalItems)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("2599.98")))
	checkInvariants(t, s)
}

func TestAddDoesNotMutateInput(t *testing.T) {
	p := mustProduct(t, "p1", "Tablet Pro", "899.99", 12)

	s1 := Add(Empty(), p)
	s2 := Add(s1, p)

	assert.Equal(t, 1, s1.Items[0].Quantity, "previous state must stay intact")
	assert.Equal(t, 2, s2.Items[0].Quantity)
}

func TestAddIgnoresStockCeiling(t *testing.T) {
	// Add never gates on stock; only checkout does. Documented behavior.
	p := mustProduct(t, "p1", "Smartwatch Deportivo", "299.99", 1)

	s := Empty()
	for i := 0; i < 5; i++ {
		s = Add(s, p)
	}
	assert.Equal(t, 5, s.Items[0].Quantity)
	checkInvariants(t, s)
}

func TestRemove(t *testing.T) {
	p1 := mustProduct(t, "p1", "Laptop Gaming Pro", "10.00", 15)
	p2 := mustProduct(t, "p2", "Auriculares", "5.00", 30)

	s := Add(Add(Add(Empty(), p1), p1), p2) // p1 x2, p2 x1

	s = Remove(s, "p1")
	require.Len(t, s.Items, 1)
	assert.Equal(t, "p2", s.Items[0].ProductID)
	assert.Equal(t, 1, s.TotalItems)
	assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString("5.00")))
	checkInvariants(t, s)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	p := mustProduct(t, "p1", "Tablet Pro", "899.99", 12)
	s := Add(Empty(), p)

	got := Remove(s, "missing")
	assert.Equal(t, s, got)
	checkInvariants(t, got)
}

func TestSetQuantity(t *testing.T) {
	p := mustProduct(t, "p1", "Smartphone Moderno", "699.99", 25)

	tests := []struct {
		name       string
		qty        int
		wantLines  int
		wantItems  int
		wantAmount string
	}{
		{name: "increase", qty: 3, wantLines: 1, wantItems: 3, wantAmount: "2099.97"},
		{name: "decrease", qty: 1, wantLines: 1, wantItems: 1, wantAmount: "699.99"},
		{name: "zero removes", qty: 0, wantLines: 0, wantItems: 0, wantAmount: "0"},
		{name: "negative removes", qty: -2, wantLines: 0, wantItems: 0, wantAmount: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Add(Add(Empty(), p), p) // qty 2
			s = SetQuantity(s, "p1", tt.qty)

			assert.Len(t, s.Items, tt.wantLines)
			assert.Equal(t, tt.wantItems, s.TotalItems)
			assert.True(t, s.TotalAmount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"want %s got %s", tt.wantAmount, s.TotalAmount)
			checkInvariants(t, s)
		})
	}
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	p := mustProduct(t, "p1", "Tablet Pro", "899.99", 12)
	s := Add(Add(Empty(), p), p)

	assert.Equal(t, Remove(s, "p1"), SetQuantity(s, "p1", 0))
}

func TestSetQuantityAbsentIsNoop(t *testing.T) {
	p := mustProduct(t, "p1", "Tablet Pro", "899.99", 12)
	s := Add(Empty(), p)

	got := SetQuantity(s, "missing", 4)
	assert.Equal(t, s, got)
}

func TestClear(t *testing.T) {
	p := mustProduct(t, "p1", "Laptop Gaming Pro", "1299.99", 15)
	s := Add(Add(Empty(), p), p)

	s = Clear(s)
	assert.Empty(t, s.Items)
	assert.Zero(t, s.TotalItems)
	assert.True(t, s.TotalAmount.IsZero())
}

// TestInvariantsUnderSequences walks a mixed op sequence and checks the
// aggregate invariant after every single step.
func TestInvariantsUnderSequences(t *testing.T) {
	p1 := mustProduct(t, "p1", "A", "10.00", 99)
	p2 := mustProduct(t, "p2", "B", "5.50", 99)
	p3 := mustProduct(t, "p3", "C", "0.99", 99)

	ops := []func(State) State{
		func(s State) State { return Add(s, p1) },
		func(s State) State { return Add(s, p2) },
		func(s State) State { return Add(s, p1) },
		func(s State) State { return SetQuantity(s, "p2", 7) },
		func(s State) State { return Add(s, p3) },
		func(s State) State { return Remove(s, "p1") },
		func(s State) State { return SetQuantity(s, "p3", 0) },
		func(s State) State { return Add(s, p1) },
		func(s State) State { return Remove(s, "nope") },
		func(s State) State { return SetQuantity(s, "p2", 1) },
		func(s State) State { return Clear(s) },
		func(s State) State { return Add(s, p3) },
	}

	s := Empty()
	for i, op := range ops {
		s = op(s)
		items, amount := s.Fold()
		require.Equal(t, items, s.TotalItems, "step %d", i)
		require.True(t, amount.Equal(s.TotalAmount), "step %d: fold=%s running=%s", i, amount, s.TotalAmount)
	}
}

func TestItemSubtotal(t *testing.T) {
	p := mustProduct(t, "p1", "A", "10.00", 99)
	it := Item{ProductID: "p1", Product: p, Quantity: 3}
	assert.True(t, it.Subtotal().Equal(decimal.RequireFromString("30.00")))
}
