package storeHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	usecase "tienda/internal/application/usecase"
	cartdom "tienda/internal/domain/cart"
)

type checkoutFixture struct {
	handler http.Handler
	carts   *fakeSessionStore
	orders  *fakeOrderRepo
}

func newCheckoutFixture() checkoutFixture {
	carts := newFakeSessionStore()
	orders := newFakeOrderRepo()
	repo := newFakeProductRepo(fixtureProduct("p1", "Camiseta", "19.99", 10))
	uc := usecase.NewCheckoutUsecase(carts, repo, orders, nil)
	return checkoutFixture{handler: NewCheckoutHandler(uc), carts: carts, orders: orders}
}

func (f checkoutFixture) seedCart(sessionID string, qty int) {
	s := cartdom.Empty()
	p := fixtureProduct("p1", "Camiseta", "19.99", 10)
	for i := 0; i < qty; i++ {
		s = cartdom.Add(s, p)
	}
	f.carts.Put(sessionID, s)
}

const checkoutBody = `{
	"idempotencyKey": "key-1",
	"customerInfo": {"name": "Ana García", "email": "ana@example.com", "address": "Calle Mayor 1, Madrid"}
}`

func postCheckout(t *testing.T, h http.Handler, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/store/checkout", strings.NewReader(body))
	if sessionID != "" {
		r.Header.Set("X-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestCheckoutHandler_CreatesOrder(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("sess-1", 2)

	rec := postCheckout(t, f.handler, "sess-1", checkoutBody)

	require.Equal(t, http.StatusCreated, rec.Code)

	var res usecase.CheckoutResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.OrderID)
	require.False(t, res.Replayed)

	o, err := f.orders.GetByID(context.Background(), res.OrderID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", o.CustomerInfo.Email)

	// cart is consumed
	_, ok := f.carts.Get("sess-1")
	require.False(t, ok)
}

func TestCheckoutHandler_DuplicateSubmitReplaysSameOrder(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("sess-1", 2)

	first := postCheckout(t, f.handler, "sess-1", checkoutBody)
	require.Equal(t, http.StatusCreated, first.Code)

	var res1 usecase.CheckoutResult
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &res1))

	// same key again (double click after the cart was cleared elsewhere)
	f.seedCart("sess-1", 2)
	second := postCheckout(t, f.handler, "sess-1", checkoutBody)
	require.Equal(t, http.StatusCreated, second.Code)

	var res2 usecase.CheckoutResult
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &res2))
	require.Equal(t, res1.OrderID, res2.OrderID)
	require.True(t, res2.Replayed)
}

func TestCheckoutHandler_EmptyCartIs400(t *testing.T) {
	f := newCheckoutFixture()

	rec := postCheckout(t, f.handler, "sess-1", checkoutBody)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_InvalidCustomerIs400(t *testing.T) {
	f := newCheckoutFixture()
	f.seedCart("sess-1", 1)

	body := `{"customerInfo": {"name": "", "email": "not-an-email", "address": ""}}`
	rec := postCheckout(t, f.handler, "sess-1", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_MissingSessionIs400(t *testing.T) {
	f := newCheckoutFixture()

	rec := postCheckout(t, f.handler, "", checkoutBody)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_BadJSONIs400(t *testing.T) {
	f := newCheckoutFixture()

	rec := postCheckout(t, f.handler, "sess-1", `{"customerInfo":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutHandler_GetIs405(t *testing.T) {
	f := newCheckoutFixture()

	r := httptest.NewRequest(http.MethodGet, "/store/checkout", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, r)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
