package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tienda/internal/domain/cart"
	orderdom "tienda/internal/domain/order"
)

func checkoutFixture() (*fakeSessionStore, *fakeProductRepo, *fakeOrderRepo, *fakeMailer, *CheckoutUsecase) {
	p1 := fixtureProduct("p1", "Laptop", "10.00", 15)
	p2 := fixtureProduct("p2", "Mouse", "5.00", 30)

	carts := newFakeSessionStore()
	products := newFakeProductRepo(p1, p2)
	orders := newFakeOrderRepo()
	mailer := &fakeMailer{}

	// cart: p1 x2, p2 x1 -> total 25.00
	s := cartdom.Add(cartdom.Add(cartdom.Add(cartdom.Empty(), p1), p1), p2)
	carts.Put("sess-1", s)

	uc := NewCheckoutUsecaseWithClock(carts, products, orders, mailer, fixedClock{t: fixedNow})
	return carts, products, orders, mailer, uc
}

func TestCheckout(t *testing.T) {
	carts, _, orders, mailer, uc := checkoutFixture()

	res, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	require.NoError(t, err)
	require.NotEmpty(t, res.OrderID)
	assert.False(t, res.Replayed)

	o, err := orders.GetByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusPending, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("25.00")), "got %s", o.TotalAmount)
	assert.Len(t, o.Items, 2)
	assert.Equal(t, fixedNow, o.CreatedAt)

	// cart cleared on success
	_, ok := carts.Get("sess-1")
	assert.False(t, ok)

	// confirmation mail went out
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, res.OrderID, mailer.sent[0].ID)
}

func TestCheckoutDuplicateKeyReturnsSameOrder(t *testing.T) {
	carts, _, _, _, uc := checkoutFixture()

	first, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	require.NoError(t, err)

	// simulate the double click: cart is already gone, key is the same
	carts.Put("sess-1", cartdom.Add(cartdom.Empty(), fixtureProduct("p1", "Laptop", "10.00", 15)))

	second, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.True(t, second.Replayed)
}

func TestCheckoutRejectsInvalidCustomer(t *testing.T) {
	_, _, orders, _, uc := checkoutFixture()

	info := fixtureCustomer()
	info.Email = ""

	_, err := uc.Checkout(context.Background(), "sess-1", info, "key-1")
	assert.ErrorIs(t, err, orderdom.ErrInvalidEmail)
	assert.Empty(t, orders.orders, "no store call on invalid form")
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	_, _, _, _, uc := checkoutFixture()

	_, err := uc.Checkout(context.Background(), "sess-empty", fixtureCustomer(), "key-1")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsInsufficientStock(t *testing.T) {
	carts, products, orders, _, uc := checkoutFixture()

	// cart wants 5 of p1 but stock drops to 3
	p1 := products.products["p1"]
	s := cartdom.Empty()
	for i := 0; i < 5; i++ {
		s = cartdom.Add(s, p1)
	}
	carts.Put("sess-1", s)

	p1.Stock = 3
	products.products["p1"] = p1

	_, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, orders.orders)

	// cart untouched so the buyer can fix quantities
	got, ok := carts.Get("sess-1")
	require.True(t, ok)
	assert.Equal(t, 5, got.TotalItems)
}

func TestCheckoutRejectsOutOfSyncAggregates(t *testing.T) {
	carts, products, _, _, uc := checkoutFixture()

	// corrupt the running total on purpose
	s := cartdom.Add(cartdom.Empty(), products.products["p1"])
	s.TotalAmount = decimal.RequireFromString("999.00")
	carts.Put("sess-1", s)

	_, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	assert.ErrorIs(t, err, ErrCartTotalMismatch)
}

func TestCheckoutStoreFailureLeavesCartIntact(t *testing.T) {
	carts, _, orders, _, uc := checkoutFixture()
	orders.createErr = errStoreDown

	_, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	assert.ErrorIs(t, err, errStoreDown)

	got, ok := carts.Get("sess-1")
	require.True(t, ok, "cart must survive a failed create")
	assert.Equal(t, 3, got.TotalItems)
}

func TestCheckoutMailFailureDoesNotFailOrder(t *testing.T) {
	carts, _, _, mailer, uc := checkoutFixture()
	mailer.err = errStoreDown

	res, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "key-1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)

	_, ok := carts.Get("sess-1")
	assert.False(t, ok, "cart still cleared when mail fails")
}

func TestCheckoutGeneratesKeyWhenMissing(t *testing.T) {
	_, _, orders, _, uc := checkoutFixture()

	res, err := uc.Checkout(context.Background(), "sess-1", fixtureCustomer(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, res.OrderID)
	assert.Len(t, orders.keys, 1)
}
