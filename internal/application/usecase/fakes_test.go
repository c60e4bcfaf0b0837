package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	cartdom "tienda/internal/domain/cart"
	orderdom "tienda/internal/domain/order"
	productdom "tienda/internal/domain/product"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// ----------------------------
// fake product repository
// ----------------------------

type fakeProductRepo struct {
	products map[string]productdom.Product
	listErr  error
	getErr   error
}

func newFakeProductRepo(ps ...productdom.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]productdom.Product{}}
	for _, p := range ps {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (productdom.Product, error) {
	if r.getErr != nil {
		return productdom.Product{}, r.getErr
	}
	p, ok := r.products[id]
	if !ok {
		return productdom.Product{}, productdom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) List(_ context.Context, f productdom.Filter) ([]productdom.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []productdom.Product{}
	for _, p := range r.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p productdom.Product) (string, error) {
	id := fmt.Sprintf("prod-%d", len(r.products)+1)
	p.ID = id
	r.products[id] = p
	return id, nil
}

func (r *fakeProductRepo) Update(_ context.Context, id string, patch productdom.Patch) error {
	p, ok := r.products[id]
	if !ok {
		return productdom.ErrNotFound
	}
	if err := p.Apply(patch, fixedNow); err != nil {
		return err
	}
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

// ----------------------------
// fake order repository
// ----------------------------

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]orderdom.Order
	keys      map[string]string // idempotency key -> order id
	seq       int
	createErr error
	listErr   error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[string]orderdom.Order{},
		keys:   map[string]string{},
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, o orderdom.Order, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return "", false, r.createErr
	}
	if key != "" {
		if existing, ok := r.keys[key]; ok {
			return existing, false, nil
		}
	}

	r.seq++
	id := fmt.Sprintf("order-%d", r.seq)
	o.ID = id
	r.orders[id] = o
	if key != "" {
		r.keys[key] = id
	}
	return id, true, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) List(_ context.Context, f orderdom.Filter) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []orderdom.Order{}
	for _, o := range r.orders {
		if f.CustomerEmail != "" && !strings.EqualFold(o.CustomerInfo.Email, f.CustomerEmail) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, st orderdom.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.Status = st
	o.UpdatedAt = updatedAt
	r.orders[id] = o
	return nil
}

// ----------------------------
// fake session store
// ----------------------------

type fakeSessionStore struct {
	mu    sync.RWMutex
	carts map[string]cartdom.State
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{carts: map[string]cartdom.State{}}
}

func (s *fakeSessionStore) Get(sessionID string) (cartdom.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.carts[sessionID]
	return st, ok
}

func (s *fakeSessionStore) Put(sessionID string, st cartdom.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = st
}

func (s *fakeSessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// ----------------------------
// fake mailer
// ----------------------------

type fakeMailer struct {
	sent []orderdom.Order
	err  error
}

func (m *fakeMailer) SendOrderConfirmation(_ context.Context, o orderdom.Order) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, o)
	return nil
}

// ----------------------------
// fixtures
// ----------------------------

func fixtureProduct(id, name, price string, stock int) productdom.Product {
	p, err := productdom.New(id, name, "fixture", decimal.RequireFromString(price), stock, "", "", fixedNow)
	if err != nil {
		panic(err)
	}
	return p
}

func fixtureCustomer() orderdom.CustomerInfo {
	return orderdom.CustomerInfo{
		Name:    "Ana García",
		Email:   "ana@example.com",
		Address: "Calle Mayor 1, Madrid",
	}
}

var errStoreDown = errors.New("store down")
