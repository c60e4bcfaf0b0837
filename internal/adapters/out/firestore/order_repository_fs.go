// backend/internal/adapters/out/firestore/order_repository_fs.go
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

	orderdom "tienda/internal/domain/order"
)

const (
	ordersCollection = "orders"

	// checkoutKeysCollection maps idempotency key -> orderId.
	// Reserved in the same transaction that creates the order, so a duplicate
	// submit can never produce a second order document.
	checkoutKeysCollection = "checkout_keys"
)

// OrderRepositoryFS implements order.Repository using Firestore.
//
// Collection design:
// - collection: orders (docId auto-generated)
// - fields: items[], totalAmount(number), status, customerInfo{...},
//   createdAt, updatedAt
// - companion: checkout_keys (docId = idempotency key, fields: orderId, createdAt)
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(ordersCollection)
}

func (r *OrderRepositoryFS) keys() *firestore.CollectionRef {
	return r.Client.Collection(checkoutKeysCollection)
}

// Create persists the order. With a non-blank idempotencyKey the write runs in
// a transaction that first reads the key doc: an already-reserved key returns
// the original order id with created=false and writes nothing.
func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order, idempotencyKey string) (string, bool, error) {
	if r == nil || r.Client == nil {
		return "", false, errors.New("order_repository_fs: firestore client is nil")
	}

	key := strings.TrimSpace(idempotencyKey)
	if key == "" {
		// legacy single-shot create (no replay protection)
		ref := r.col().NewDoc()
		if _, err := ref.Set(ctx, orderToDoc(o)); err != nil {
			return "", false, err
		}
		return ref.ID, true, nil
	}

	keyRef := r.keys().Doc(key)
	orderRef := r.col().NewDoc()

	var replayID string
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(keyRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err == nil && snap.Exists() {
			replayID = mapGetString(snap.Data(), "orderId")
			if replayID == "" {
				return errors.New("order_repository_fs: checkout key doc without orderId: " + key)
			}
			return nil
		}

		if err := tx.Set(orderRef, orderToDoc(o)); err != nil {
			return err
		}
		return tx.Set(keyRef, map[string]any{
			"orderId":   orderRef.ID,
			"createdAt": o.CreatedAt,
		})
	})
	if err != nil {
		return "", false, err
	}

	if replayID != "" {
		return replayID, false, nil
	}
	return orderRef.ID, true, nil
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return orderdom.Order{}, errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.Order{}, orderdom.ErrInvalidID
	}

	snap, err := r.col().Doc(oid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}
	return docToOrder(snap)
}

// List returns orders newest first.
// f.CustomerEmail filters on the nested customerInfo.email field (same query
// the buyer-facing order history runs).
func (r *OrderRepositoryFS) List(ctx context.Context, f orderdom.Filter) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	q := r.col().Query
	if em := strings.TrimSpace(f.CustomerEmail); em != "" {
		q = q.Where("customerInfo.email", "==", em)
	}
	if f.Status != nil {
		q = q.Where("status", "==", string(*f.Status))
	}
	if f.CreatedFrom != nil {
		q = q.Where("createdAt", ">=", f.CreatedFrom.UTC())
	}
	if f.CreatedTo != nil {
		q = q.Where("createdAt", "<=", f.CreatedTo.UTC())
	}
	q = q.OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)

	out := []orderdom.Order{}
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
		o, err := docToOrder(snap)
		if err != nil {
			log.Printf("[order_repository_fs] skip broken doc id=%s err=%v", snap.Ref.ID, err)
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatus writes status + updatedAt only. Transition legality is the
// usecase's job; this is the partial-field update.
func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, st orderdom.Status, updatedAt time.Time) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}

	oid := strings.TrimSpace(id)
	if oid == "" {
		return orderdom.ErrInvalidID
	}

	_, err := r.col().Doc(oid).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(st)},
		{Path: "updatedAt", Value: updatedAt.UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return orderdom.ErrNotFound
	}
	return err
}
