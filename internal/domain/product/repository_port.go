// backend/internal/domain/product/repository_port.go
package product

import "context"

// Filter narrows List results. Zero value = no filtering.
type Filter struct {
	Category string
}

// Repository is a persistence port for Product.
//
// Storage recommendation (Firestore):
// - collection: products
// - docId: auto-generated
// - fields: name, description, price, stock, category?, imageUrl?, createdAt, updatedAt
type Repository interface {
	// GetByID returns the product, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Product, error)

	// List returns products, newest first.
	List(ctx context.Context, f Filter) ([]Product, error)

	// Create persists a new product and returns the assigned docId.
	Create(ctx context.Context, p Product) (string, error)

	// Update applies partial fields and bumps updatedAt.
	Update(ctx context.Context, id string, patch Patch) error

	// Delete removes the product document.
	Delete(ctx context.Context, id string) error
}
