// backend/internal/adapters/out/firestore/order_mapper_fs.go
package firestore

import (
	"fmt"

	"cloud.google.com/go/firestore"

	cartdom "tienda/internal/domain/cart"
	orderdom "tienda/internal/domain/order"
	productdom "tienda/internal/domain/product"
)

// docToOrder converts a Firestore document snapshot to order.Order.
// Items carry their product snapshot inline (price at purchase time), so a
// later catalog edit never rewrites order history.
func docToOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	data := snap.Data()
	if data == nil {
		return orderdom.Order{}, fmt.Errorf("empty order document: %s", snap.Ref.ID)
	}

	st, ok := orderdom.ParseStatus(mapGetString(data, "status"))
	if !ok {
		return orderdom.Order{}, fmt.Errorf("order %s: invalid status %q", snap.Ref.ID, mapGetString(data, "status"))
	}

	items, err := decodeOrderItems(data["items"])
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("order %s: %w", snap.Ref.ID, err)
	}
	if len(items) == 0 {
		return orderdom.Order{}, fmt.Errorf("order %s: missing items", snap.Ref.ID)
	}

	info := mapGetMap(data, "customerInfo")
	if info == nil {
		return orderdom.Order{}, fmt.Errorf("order %s: missing customerInfo", snap.Ref.ID)
	}

	createdAt := mapGetTime(data, "createdAt")
	if createdAt.IsZero() && !snap.CreateTime.IsZero() {
		createdAt = snap.CreateTime.UTC()
	}
	updatedAt := mapGetTime(data, "updatedAt")
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return orderdom.Order{
		ID:          snap.Ref.ID,
		Items:       items,
		TotalAmount: mapGetDecimal(data, "totalAmount"),
		Status:      st,
		CustomerInfo: orderdom.CustomerInfo{
			Name:    mapGetString(info, "name"),
			Email:   mapGetString(info, "email"),
			Phone:   mapGetString(info, "phone"),
			Address: mapGetString(info, "address"),
		},
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func decodeOrderItems(v any) ([]cartdom.Item, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("items is not an array")
	}

	out := make([]cartdom.Item, 0, len(raw))
	for i, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("items[%d] is not a map", i)
		}

		pid := mapGetString(m, "productId")
		qty := mapGetInt(m, "quantity")
		if pid == "" || qty <= 0 {
			return nil, fmt.Errorf("items[%d]: invalid productId/quantity", i)
		}

		item := cartdom.Item{
			ProductID: pid,
			Quantity:  qty,
		}
		if pm := mapGetMap(m, "product"); pm != nil {
			item.Product = productdom.Product{
				ID:          mapGetString(pm, "id"),
				Name:        mapGetString(pm, "name"),
				Description: mapGetString(pm, "description"),
				Price:       mapGetDecimal(pm, "price"),
				Stock:       mapGetInt(pm, "stock"),
				Category:    mapGetString(pm, "category"),
				ImageURL:    mapGetString(pm, "imageUrl", "image"),
				CreatedAt:   mapGetTime(pm, "createdAt"),
				UpdatedAt:   mapGetTime(pm, "updatedAt"),
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// orderToDoc converts order.Order into a Firestore-storable map.
func orderToDoc(o orderdom.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"quantity":  it.Quantity,
			"product":   productSnapshotToDoc(it.Product),
		})
	}

	info := map[string]any{
		"name":    o.CustomerInfo.Name,
		"email":   o.CustomerInfo.Email,
		"address": o.CustomerInfo.Address,
	}
	if o.CustomerInfo.Phone != "" {
		info["phone"] = o.CustomerInfo.Phone
	}

	return map[string]any{
		"items":        items,
		"totalAmount":  o.TotalAmount.InexactFloat64(),
		"status":       string(o.Status),
		"customerInfo": info,
		"createdAt":    o.CreatedAt,
		"updatedAt":    o.UpdatedAt,
	}
}

func productSnapshotToDoc(p productdom.Product) map[string]any {
	doc := productToDoc(p)
	// snapshot keeps its id inline (unlike the catalog doc, where docId is the id)
	doc["id"] = p.ID
	return doc
}
