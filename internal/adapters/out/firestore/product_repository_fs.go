// backend/internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "tienda/internal/domain/product"
)

const productsCollection = "products"

// ProductRepositoryFS implements product.Repository using Firestore.
//
// Collection design:
// - collection: products
// - docId: auto-generated
// - fields: name, description, price(number), stock(number),
//   category?, imageUrl?, createdAt, updatedAt
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(productsCollection)
}

func (r *ProductRepositoryFS) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if r == nil || r.Client == nil {
		return productdom.Product{}, errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, productdom.ErrInvalidID
	}

	snap, err := r.col().Doc(pid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return productdom.Product{}, productdom.ErrNotFound
		}
		return productdom.Product{}, err
	}
	return docToProduct(snap)
}

// List returns products newest first; f.Category narrows via a where clause.
func (r *ProductRepositoryFS) List(ctx context.Context, f productdom.Filter) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if cat := strings.TrimSpace(f.Category); cat != "" {
		q = q.Where("category", "==", cat)
	}
	q = q.OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	out := []productdom.Product{}
	it := q.Documents(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := docToProduct(snap)
		if err != nil {
			// 壊れた doc は一覧から外すだけ（一覧全体を落とさない）
			log.Printf("[product_repository_fs] skip broken doc id=%s err=%v", snap.Ref.ID, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepositoryFS) Create(ctx context.Context, p productdom.Product) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("product_repository_fs: firestore client is nil")
	}

	ref := r.col().NewDoc()
	if _, err := ref.Set(ctx, productToDoc(p)); err != nil {
		return "", err
	}
	return ref.ID, nil
}

// Update applies partial fields and bumps updatedAt.
func (r *ProductRepositoryFS) Update(ctx context.Context, id string, patch productdom.Patch) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.ErrInvalidID
	}

	fields := map[string]any{
		"updatedAt": time.Now().UTC(),
	}
	if patch.Name != nil {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		fields["price"] = patch.Price.InexactFloat64()
	}
	if patch.Stock != nil {
		fields["stock"] = *patch.Stock
	}
	if patch.Category != nil {
		fields["category"] = strings.TrimSpace(*patch.Category)
	}
	if patch.ImageURL != nil {
		fields["imageUrl"] = strings.TrimSpace(*patch.ImageURL)
	}

	_, err := r.col().Doc(pid).Set(ctx, fields, firestore.MergeAll)
	if status.Code(err) == codes.NotFound {
		return productdom.ErrNotFound
	}
	return err
}

func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_repository_fs: firestore client is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.ErrInvalidID
	}

	_, err := r.col().Doc(pid).Delete(ctx)
	return err
}
