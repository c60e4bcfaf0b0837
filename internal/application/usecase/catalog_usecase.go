// backend/internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	productdom "tienda/internal/domain/product"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
)

// CatalogUsecase serves buyer-facing product reads.
type CatalogUsecase struct {
	products productdom.Repository
}

func NewCatalogUsecase(products productdom.Repository) *CatalogUsecase {
	return &CatalogUsecase{products: products}
}

// List returns catalog products, newest first, optionally narrowed by category.
//
// Store failures degrade to an empty result set: the storefront keeps rendering
// (with an empty grid) instead of failing the page. The error is logged, not
// surfaced.
func (uc *CatalogUsecase) List(ctx context.Context, category string) ([]productdom.Product, error) {
	if uc == nil || uc.products == nil {
		return nil, errors.New("catalog_usecase: products repo is nil")
	}

	f := productdom.Filter{Category: strings.TrimSpace(category)}

	items, err := uc.products.List(ctx, f)
	if err != nil {
		log.Printf("[catalog_usecase] list degraded to empty: category=%q err=%v", f.Category, err)
		return []productdom.Product{}, nil
	}
	if items == nil {
		items = []productdom.Product{}
	}
	return items, nil
}

// GetByID returns one product, or product.ErrNotFound.
func (uc *CatalogUsecase) GetByID(ctx context.Context, id string) (productdom.Product, error) {
	if uc == nil || uc.products == nil {
		return productdom.Product{}, errors.New("catalog_usecase: products repo is nil")
	}

	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrCatalogInvalidArgument
	}
	return uc.products.GetByID(ctx, pid)
}
