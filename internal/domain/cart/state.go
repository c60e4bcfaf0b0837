// backend/internal/domain/cart/state.go
package cart

import (
	"strings"

	"github.com/shopspring/decimal"

	productdom "tienda/internal/domain/product"
)

// Item represents "one line item" in a cart.
// Product is an embedded snapshot taken when the line was created, so a later
// catalog price change does not silently reprice lines already in the cart.
type Item struct {
	ProductID string             `json:"productId"`
	Product   productdom.Product `json:"product"`
	Quantity  int                `json:"quantity"`
}

// Subtotal returns snapshot price × quantity.
func (it Item) Subtotal() decimal.Decimal {
	return it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// State is the full cart state for one session.
//
// Invariants:
// - Items is ordered (insertion order) and holds at most one line per product id.
// - TotalItems == sum of quantities, TotalAmount == sum of subtotals, at every
//   step. Both aggregates are adjusted together with the item list on every
//   transition, never recomputed lazily.
//
// State is treated as immutable: every transition below returns a new State and
// leaves its input untouched. The shared mutable cart of the original UI layer
// is deliberately not reproduced here.
type State struct {
	Items       []Item          `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Empty returns the initial cart state (no items, zero aggregates).
func Empty() State {
	return State{
		Items:       []Item{},
		TotalItems:  0,
		TotalAmount: decimal.Zero,
	}
}

// Add increments the line for p by 1, inserting a new line (qty 1) when absent.
// Always +1 TotalItems and +price TotalAmount.
//
// NOTE: no stock ceiling is enforced here. Quantity edits (SetQuantity) are the
// gate points; checkout re-validates against current stock. This mirrors the
// behavior of the system this cart replaces.
func Add(s State, p productdom.Product) State {
	pid := strings.TrimSpace(p.ID)
	if pid == "" {
		return s
	}

	items := cloneItems(s.Items)

	idx := findIndex(items, pid)
	if idx >= 0 {
		items[idx].Quantity++
	} else {
		items = append(items, Item{
			ProductID: pid,
			Product:   p,
			Quantity:  1,
		})
	}

	return State{
		Items:       items,
		TotalItems:  s.TotalItems + 1,
		TotalAmount: s.TotalAmount.Add(p.Price),
	}
}

// Remove deletes the line for productID, subtracting its quantity and subtotal
// from the aggregates. No-op when the id is absent.
func Remove(s State, productID string) State {
	pid := strings.TrimSpace(productID)

	idx := findIndex(s.Items, pid)
	if idx < 0 {
		return s
	}

	removed := s.Items[idx]
	items := cloneItems(s.Items)
	items = append(items[:idx], items[idx+1:]...)

	return State{
		Items:       items,
		TotalItems:  s.TotalItems - removed.Quantity,
		TotalAmount: s.TotalAmount.Sub(removed.Subtotal()),
	}
}

// SetQuantity replaces the quantity of the line for productID, adjusting both
// aggregates by the delta.
// - qty <= 0 behaves exactly as Remove.
// - No-op when the id is absent.
func SetQuantity(s State, productID string, qty int) State {
	if qty <= 0 {
		return Remove(s, productID)
	}

	pid := strings.TrimSpace(productID)

	idx := findIndex(s.Items, pid)
	if idx < 0 {
		return s
	}

	cur := s.Items[idx]
	delta := qty - cur.Quantity

	items := cloneItems(s.Items)
	items[idx].Quantity = qty

	return State{
		Items:       items,
		TotalItems:  s.TotalItems + delta,
		TotalAmount: s.TotalAmount.Add(cur.Product.Price.Mul(decimal.NewFromInt(int64(delta)))),
	}
}

// Clear resets to the empty state with zeroed aggregates.
func Clear(State) State {
	return Empty()
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Fold recomputes both aggregates from the item list.
// Used by tests and the checkout reconciliation check; the reducer itself
// never derives aggregates this way.
func (s State) Fold() (totalItems int, totalAmount decimal.Decimal) {
	totalAmount = decimal.Zero
	for _, it := range s.Items {
		totalItems += it.Quantity
		totalAmount = totalAmount.Add(it.Subtotal())
	}
	return totalItems, totalAmount
}

// ----------------------------
// Helpers
// ----------------------------

func findIndex(items []Item, productID string) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(src []Item) []Item {
	cp := make([]Item, len(src))
	copy(cp, src)
	return cp
}
