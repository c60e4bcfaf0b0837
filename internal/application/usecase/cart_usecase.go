// backend/internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	cartdom "tienda/internal/domain/cart"
	productdom "tienda/internal/domain/product"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// CartUsecase coordinates session cart operations over the pure reducer.
//
// The store only ever sees whole State values; every mutation is
// load → reduce → store, so the aggregates always move together with the item
// list. Single-session dispatch is assumed (one browser tab driving one cart),
// matching the system this replaces.
type CartUsecase struct {
	store    cartdom.SessionStore
	products productdom.Repository
}

func NewCartUsecase(store cartdom.SessionStore, products productdom.Repository) *CartUsecase {
	return &CartUsecase{store: store, products: products}
}

// Get returns the cart for the session; a session without a cart is an empty cart.
func (uc *CartUsecase) Get(_ context.Context, sessionID string) (cartdom.State, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return cartdom.State{}, ErrCartInvalidArgument
	}

	s, ok := uc.store.Get(sid)
	if !ok {
		return cartdom.Empty(), nil
	}
	return s, nil
}

// AddItem resolves the product from the catalog and applies Add.
// Repeating AddItem is the only way quantity grows here (one unit per call),
// exactly like the add-to-cart button it backs.
func (uc *CartUsecase) AddItem(ctx context.Context, sessionID, productID string) (cartdom.State, error) {
	sid := strings.TrimSpace(sessionID)
	pid := strings.TrimSpace(productID)
	if sid == "" || pid == "" {
		return cartdom.State{}, ErrCartInvalidArgument
	}

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		return cartdom.State{}, err
	}

	s, ok := uc.store.Get(sid)
	if !ok {
		s = cartdom.Empty()
	}

	next := cartdom.Add(s, p)
	uc.store.Put(sid, next)
	return next, nil
}

// SetItemQuantity replaces the quantity for productID.
// qty <= 0 removes the line (reducer semantics); the stock ceiling is enforced
// here, at the edit point, not inside the reducer.
func (uc *CartUsecase) SetItemQuantity(ctx context.Context, sessionID, productID string, qty int) (cartdom.State, error) {
	sid := strings.TrimSpace(sessionID)
	pid := strings.TrimSpace(productID)
	if sid == "" || pid == "" {
		return cartdom.State{}, ErrCartInvalidArgument
	}

	if qty > 0 {
		p, err := uc.products.GetByID(ctx, pid)
		if err != nil {
			return cartdom.State{}, err
		}
		if !p.InStock(qty) {
			return cartdom.State{}, ErrInsufficientStock
		}
	}

	s, ok := uc.store.Get(sid)
	if !ok {
		s = cartdom.Empty()
	}

	next := cartdom.SetQuantity(s, pid, qty)
	uc.store.Put(sid, next)
	return next, nil
}

// RemoveItem deletes the line for productID. No-op when absent.
func (uc *CartUsecase) RemoveItem(_ context.Context, sessionID, productID string) (cartdom.State, error) {
	sid := strings.TrimSpace(sessionID)
	pid := strings.TrimSpace(productID)
	if sid == "" || pid == "" {
		return cartdom.State{}, ErrCartInvalidArgument
	}

	s, ok := uc.store.Get(sid)
	if !ok {
		return cartdom.Empty(), nil
	}

	next := cartdom.Remove(s, pid)
	uc.store.Put(sid, next)
	return next, nil
}

// Clear resets the session cart to empty.
func (uc *CartUsecase) Clear(_ context.Context, sessionID string) (cartdom.State, error) {
	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return cartdom.State{}, ErrCartInvalidArgument
	}

	uc.store.Delete(sid)
	return cartdom.Empty(), nil
}
