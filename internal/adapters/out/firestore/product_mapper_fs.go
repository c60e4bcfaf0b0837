// backend/internal/adapters/out/firestore/product_mapper_fs.go
package firestore

import (
	"fmt"

	"cloud.google.com/go/firestore"

	productdom "tienda/internal/domain/product"
)

// docToProduct converts a Firestore document snapshot to product.Product.
func docToProduct(snap *firestore.DocumentSnapshot) (productdom.Product, error) {
	data := snap.Data()
	if data == nil {
		return productdom.Product{}, fmt.Errorf("empty product document: %s", snap.Ref.ID)
	}

	name := mapGetString(data, "name")
	if name == "" {
		return productdom.Product{}, fmt.Errorf("product %s: missing name", snap.Ref.ID)
	}

	createdAt := mapGetTime(data, "createdAt")
	if createdAt.IsZero() && !snap.CreateTime.IsZero() {
		createdAt = snap.CreateTime.UTC()
	}
	updatedAt := mapGetTime(data, "updatedAt")
	if updatedAt.IsZero() {
		// 初期 seed データは updatedAt を持たない
		updatedAt = createdAt
	}

	return productdom.Product{
		ID:          snap.Ref.ID,
		Name:        name,
		Description: mapGetString(data, "description"),
		Price:       mapGetDecimal(data, "price"),
		Stock:       mapGetInt(data, "stock"),
		Category:    mapGetString(data, "category"),
		// 旧 seed データは "image"、現行は "imageUrl"
		ImageURL:  mapGetString(data, "imageUrl", "image"),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// productToDoc converts product.Product into a Firestore-storable map.
// Price is stored as a number (the document format the storefront seeded).
func productToDoc(p productdom.Product) map[string]any {
	doc := map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.InexactFloat64(),
		"stock":       p.Stock,
		"createdAt":   p.CreatedAt,
		"updatedAt":   p.UpdatedAt,
	}
	if p.Category != "" {
		doc["category"] = p.Category
	}
	if p.ImageURL != "" {
		doc["imageUrl"] = p.ImageURL
	}
	return doc
}
