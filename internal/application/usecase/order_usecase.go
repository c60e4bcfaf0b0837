// backend/internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	orderdom "tienda/internal/domain/order"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
)

// OrderUsecase serves order reads and the administrative status advance.
type OrderUsecase struct {
	orders orderdom.Repository
	clock  Clock
}

func NewOrderUsecase(orders orderdom.Repository) *OrderUsecase {
	return &OrderUsecase{orders: orders, clock: systemClock{}}
}

// NewOrderUsecaseWithClock is useful for tests.
func NewOrderUsecaseWithClock(orders orderdom.Repository, clock Clock) *OrderUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &OrderUsecase{orders: orders, clock: clock}
}

// GetByID returns one order, or order.ErrNotFound.
func (uc *OrderUsecase) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}
	return uc.orders.GetByID(ctx, oid)
}

// List returns all orders, newest first.
// Store failures degrade to an empty result set (logged), same contract as the
// catalog listing.
func (uc *OrderUsecase) List(ctx context.Context) ([]orderdom.Order, error) {
	return uc.list(ctx, orderdom.Filter{})
}

// ListByEmail returns the customer's orders, newest first.
func (uc *OrderUsecase) ListByEmail(ctx context.Context, email string) ([]orderdom.Order, error) {
	em := strings.TrimSpace(email)
	if em == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.list(ctx, orderdom.Filter{CustomerEmail: em})
}

func (uc *OrderUsecase) list(ctx context.Context, f orderdom.Filter) ([]orderdom.Order, error) {
	items, err := uc.orders.List(ctx, f)
	if err != nil {
		log.Printf("[order_usecase] list degraded to empty: email=%q err=%v", f.CustomerEmail, err)
		return []orderdom.Order{}, nil
	}
	if items == nil {
		items = []orderdom.Order{}
	}
	return items, nil
}

// AdvanceStatus runs one guarded transition and persists status + updatedAt.
// Returns the updated order so the admin screen can re-render from the response.
func (uc *OrderUsecase) AdvanceStatus(ctx context.Context, id string, next orderdom.Status) (orderdom.Order, error) {
	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.Order{}, ErrOrderInvalidArgument
	}

	o, err := uc.orders.GetByID(ctx, oid)
	if err != nil {
		return orderdom.Order{}, err
	}

	if err := o.Transition(next, uc.clock.Now()); err != nil {
		return orderdom.Order{}, err
	}

	if err := uc.orders.UpdateStatus(ctx, oid, o.Status, o.UpdatedAt); err != nil {
		return orderdom.Order{}, err
	}

	log.Printf("[order_usecase] status advanced id=%s -> %s", oid, o.Status)
	return o, nil
}
