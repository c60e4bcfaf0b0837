// backend/internal/domain/order/repository_port.go
package order

import (
	"context"
	"time"
)

// Filter narrows List results. Zero value = all orders, newest first.
type Filter struct {
	CustomerEmail string
	Status        *Status
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// Repository is a persistence port for Order.
//
// Storage recommendation (Firestore):
// - collection: orders
// - docId: auto-generated
// - fields: items[], totalAmount, status, customerInfo{...}, createdAt, updatedAt
// - companion collection: checkout_keys (idempotency key -> orderId)
type Repository interface {
	// Create persists a new order under an idempotency key and returns the docId.
	//
	// Replay semantics: when idempotencyKey was already used, Create returns the
	// originally created order id with created=false and writes nothing. A blank
	// key skips reservation entirely (legacy single-shot create).
	Create(ctx context.Context, o Order, idempotencyKey string) (id string, created bool, err error)

	// GetByID returns the order, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Order, error)

	// List returns orders matching f, newest first.
	List(ctx context.Context, f Filter) ([]Order, error)

	// UpdateStatus persists status + updatedAt for an already-validated
	// transition. The guarded state machine runs in the usecase; this is the
	// partial-field write only.
	UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error
}
