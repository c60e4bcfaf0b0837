// backend/internal/adapters/out/memory/cart_store.go
package memory

import (
	"sync"
	"time"

	cartdom "tienda/internal/domain/cart"
)

// DefaultCartTTL is the inactivity window after which a session cart becomes
// eligible for eviction.
const DefaultCartTTL = 7 * 24 * time.Hour

type entry struct {
	state     cartdom.State
	expiresAt time.Time
}

// CartStore implements cart.SessionStore with an in-process map.
//
// The cart is session-local and ephemeral, so it deliberately never touches
// the document store. Each mutation refreshes the entry's TTL; expired
// entries read back as absent and are dropped lazily plus by Sweep.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewCartStore() *CartStore {
	return NewCartStoreWithTTL(DefaultCartTTL)
}

func NewCartStoreWithTTL(ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &CartStore{
		carts: map[string]entry{},
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *CartStore) Get(sessionID string) (cartdom.State, bool) {
	s.mu.RLock()
	e, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return cartdom.State{}, false
	}
	if s.now().After(e.expiresAt) {
		s.Delete(sessionID)
		return cartdom.State{}, false
	}
	return e.state, true
}

func (s *CartStore) Put(sessionID string, st cartdom.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = entry{
		state:     st,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *CartStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Sweep drops expired entries and returns how many were removed.
// Run periodically from main; lazy expiry in Get keeps correctness either way.
func (s *CartStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.carts {
		if now.After(e.expiresAt) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}

// Len reports the live entry count (expired entries included until swept).
func (s *CartStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
