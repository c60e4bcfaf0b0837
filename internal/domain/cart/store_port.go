// backend/internal/domain/cart/store_port.go
package cart

// SessionStore is the port for session-scoped cart storage.
//
// The cart is client-local and ephemeral: one State per session id, never
// persisted to the document store. Implementations own their concurrency and
// expiry policy; callers always work on State values, so a stored snapshot can
// be handed out without copying concerns.
type SessionStore interface {
	// Get returns the cart for sessionID; ok=false when none exists (treat as empty).
	Get(sessionID string) (State, bool)

	// Put replaces the cart for sessionID.
	Put(sessionID string, s State)

	// Delete drops the cart for sessionID (e.g. after checkout). No-op if absent.
	Delete(sessionID string)
}
