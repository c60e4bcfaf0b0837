// backend/internal/domain/order/entity.go
package order

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdom "tienda/internal/domain/cart"
)

// ========================================
// Snapshot structs (stored in Order)
// ========================================

// CustomerInfo is the checkout form snapshot stored on the order.
// Phone is the only optional field.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID           = errors.New("order: invalid id")
	ErrInvalidItems        = errors.New("order: invalid items")
	ErrInvalidCustomerName = errors.New("order: customer name is required")
	ErrInvalidEmail        = errors.New("order: valid customer email is required")
	ErrInvalidAddress      = errors.New("order: customer address is required")
	ErrInvalidStatus       = errors.New("order: invalid status")
	ErrInvalidCreatedAt    = errors.New("order: invalid createdAt")
	ErrTotalMismatch       = errors.New("order: totalAmount does not match item subtotals")
	ErrNotFound            = errors.New("order: not found")
)

// ========================================
// Policy
// ========================================

var MinItemsRequired = 1

// ========================================
// Entity
// ========================================

// Order is a persisted record of a completed checkout.
// Immutable after creation except Status / UpdatedAt.
type Order struct {
	ID           string          `json:"id"`
	Items        []cartdom.Item  `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	Status       Status          `json:"status"`
	CustomerInfo CustomerInfo    `json:"customerInfo"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ========================================
// Constructor
// ========================================

// New builds a pending order from a cart snapshot.
//
// totalAmount is the running total the cart reported at checkout; New folds the
// item subtotals itself and rejects with ErrTotalMismatch when the two
// disagree. The system this replaces never asserted the invariant; here it is
// the reconciliation point.
func New(
	id string,
	items []cartdom.Item,
	totalAmount decimal.Decimal,
	info CustomerInfo,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		ID:          strings.TrimSpace(id),
		Items:       cloneItems(items),
		TotalAmount: totalAmount,
		Status:      StatusPending,
		CustomerInfo: CustomerInfo{
			Name:    strings.TrimSpace(info.Name),
			Email:   strings.TrimSpace(info.Email),
			Phone:   strings.TrimSpace(info.Phone),
			Address: strings.TrimSpace(info.Address),
		},
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Behavior
// ========================================

// Transition advances the order through the guarded status machine.
// A legal transition bumps UpdatedAt; an illegal one returns
// ErrIllegalTransition and leaves the order untouched.
func (o *Order) Transition(next Status, now time.Time) error {
	if _, ok := ParseStatus(string(next)); !ok {
		return ErrInvalidStatus
	}
	if !o.Status.CanTransition(next) {
		return ErrIllegalTransition
	}
	o.Status = next
	o.UpdatedAt = now.UTC()
	return nil
}

// FoldTotal recomputes the total from the item subtotals.
func (o Order) FoldTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ValidateCustomerInfo checks the checkout form fields without touching any
// store. Called before order creation is even attempted.
func ValidateCustomerInfo(info CustomerInfo) error {
	if strings.TrimSpace(info.Name) == "" {
		return ErrInvalidCustomerName
	}
	email := strings.TrimSpace(info.Email)
	if email == "" {
		return ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(info.Address) == "" {
		return ErrInvalidAddress
	}
	return nil
}

func (o Order) validate() error {
	if len(o.Items) < MinItemsRequired {
		return ErrInvalidItems
	}
	for _, it := range o.Items {
		if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 {
			return ErrInvalidItems
		}
	}
	if err := ValidateCustomerInfo(o.CustomerInfo); err != nil {
		return err
	}
	if _, ok := ParseStatus(string(o.Status)); !ok {
		return ErrInvalidStatus
	}
	if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	if !o.TotalAmount.Equal(o.FoldTotal()) {
		return ErrTotalMismatch
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func cloneItems(src []cartdom.Item) []cartdom.Item {
	cp := make([]cartdom.Item, len(src))
	copy(cp, src)
	return cp
}
