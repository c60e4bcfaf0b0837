// backend/internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	cartdom "tienda/internal/domain/cart"
	orderdom "tienda/internal/domain/order"
	productdom "tienda/internal/domain/product"
)

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrEmptyCart               = errors.New("checkout_usecase: cart is empty")
	ErrInsufficientStock       = errors.New("checkout_usecase: insufficient stock")
	ErrCartTotalMismatch       = errors.New("checkout_usecase: cart aggregates out of sync")
)

// ConfirmationMailer is the outbound port for the order confirmation email.
// Sending is best-effort: a mail failure never fails the checkout.
type ConfirmationMailer interface {
	SendOrderConfirmation(ctx context.Context, o orderdom.Order) error
}

// CheckoutResult is what the checkout endpoint returns to the storefront.
type CheckoutResult struct {
	OrderID string `json:"orderId"`
	// Replayed is true when the idempotency key had already been consumed and
	// the id belongs to the originally created order.
	Replayed bool `json:"replayed,omitempty"`
}

// CheckoutUsecase packages the session cart into a pending Order and persists it.
//
// Sequence:
//  1. validate customer info (no store call before this passes)
//  2. load cart, reject empty
//  3. re-validate every line against current stock (Add never gates on stock)
//  4. reconcile the cart's running aggregates against the fold
//  5. create the order under an idempotency key (duplicate submit -> same order)
//  6. clear the cart, send best-effort confirmation mail
//
// A store failure in step 5 surfaces to the caller and leaves the in-memory
// cart exactly as it was, so retry is safe.
type CheckoutUsecase struct {
	carts    cartdom.SessionStore
	products productdom.Repository
	orders   orderdom.Repository
	mailer   ConfirmationMailer // optional
	clock    Clock
}

func NewCheckoutUsecase(
	carts cartdom.SessionStore,
	products productdom.Repository,
	orders orderdom.Repository,
	mailer ConfirmationMailer,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		products: products,
		orders:   orders,
		mailer:   mailer,
		clock:    systemClock{},
	}
}

// NewCheckoutUsecaseWithClock is useful for tests.
func NewCheckoutUsecaseWithClock(
	carts cartdom.SessionStore,
	products productdom.Repository,
	orders orderdom.Repository,
	mailer ConfirmationMailer,
	clock Clock,
) *CheckoutUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CheckoutUsecase{carts: carts, products: products, orders: orders, mailer: mailer, clock: clock}
}

// Checkout creates a pending order from the session cart.
//
// idempotencyKey is generated when the checkout screen opens; an empty key gets
// a server-side uuid so a single submit still works, but then a double click is
// only as safe as the client that failed to send a key.
func (uc *CheckoutUsecase) Checkout(
	ctx context.Context,
	sessionID string,
	info orderdom.CustomerInfo,
	idempotencyKey string,
) (CheckoutResult, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return CheckoutResult{}, ErrCheckoutInvalidArgument
	}

	// 1) form validation before any store call
	if err := orderdom.ValidateCustomerInfo(info); err != nil {
		return CheckoutResult{}, err
	}

	// 2) cart must be non-empty
	state, ok := uc.carts.Get(sid)
	if !ok || state.IsEmpty() {
		return CheckoutResult{}, ErrEmptyCart
	}

	// 3) stock re-validation against the catalog as it is now.
	// Add never gates on stock, so this is where an over-stock cart dies.
	for _, it := range state.Items {
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("checkout_usecase: resolve product %s: %w", it.ProductID, err)
		}
		if !p.InStock(it.Quantity) {
			return CheckoutResult{}, fmt.Errorf("%w: product %s (want %d, stock %d)",
				ErrInsufficientStock, it.ProductID, it.Quantity, p.Stock)
		}
	}

	// 4) aggregate reconciliation (defect detector for the running totals)
	foldItems, foldAmount := state.Fold()
	if foldItems != state.TotalItems || !foldAmount.Equal(state.TotalAmount) {
		return CheckoutResult{}, ErrCartTotalMismatch
	}

	now := uc.clock.Now()
	o, err := orderdom.New("", state.Items, state.TotalAmount, info, now)
	if err != nil {
		return CheckoutResult{}, err
	}

	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		key = uuid.NewString()
		log.Printf("[checkout_usecase] no idempotency key supplied; generated %s", key)
	}

	// 5) persist (single request/response; no retry policy here)
	id, created, err := uc.orders.Create(ctx, o, key)
	if err != nil {
		return CheckoutResult{}, err
	}

	if !created {
		log.Printf("[checkout_usecase] replayed checkout key=%s order=%s", key, id)
		// cart was already cleared by the original request; nothing else to do
		return CheckoutResult{OrderID: id, Replayed: true}, nil
	}

	// 6) success: drop the cart, then best-effort mail
	uc.carts.Delete(sid)

	if uc.mailer != nil {
		o.ID = id
		if mailErr := uc.mailer.SendOrderConfirmation(ctx, o); mailErr != nil {
			log.Printf("[checkout_usecase] confirmation mail failed order=%s err=%v", id, mailErr)
		}
	}

	log.Printf("[checkout_usecase] order created id=%s items=%d total=%s", id, len(o.Items), o.TotalAmount)
	return CheckoutResult{OrderID: id}, nil
}
