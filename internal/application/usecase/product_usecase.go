// backend/internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	productdom "tienda/internal/domain/product"
)

var (
	ErrProductInvalidArgument = errors.New("product_usecase: invalid argument")
)

// ImageStore is the outbound port for product image bytes.
// Implemented by the GCS adapter; returns the public URL of the stored object.
type ImageStore interface {
	Upload(ctx context.Context, objectPath string, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// CreateProductInput is the admin product form.
type CreateProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
}

// ProductUsecase serves the admin-side product writes.
type ProductUsecase struct {
	products productdom.Repository
	images   ImageStore // optional
	clock    Clock
}

func NewProductUsecase(products productdom.Repository, images ImageStore) *ProductUsecase {
	return &ProductUsecase{products: products, images: images, clock: systemClock{}}
}

// NewProductUsecaseWithClock is useful for tests.
func NewProductUsecaseWithClock(products productdom.Repository, images ImageStore, clock Clock) *ProductUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &ProductUsecase{products: products, images: images, clock: clock}
}

// Create validates and persists a new catalog product.
func (uc *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (productdom.Product, error) {
	now := uc.clock.Now()

	p, err := productdom.New("", in.Name, in.Description, in.Price, in.Stock, in.Category, in.ImageURL, now)
	if err != nil {
		return productdom.Product{}, err
	}

	id, err := uc.products.Create(ctx, p)
	if err != nil {
		return productdom.Product{}, err
	}

	p.ID = id
	log.Printf("[product_usecase] product created id=%s name=%q", id, p.Name)
	return p, nil
}

// Update applies a partial patch to an existing product.
func (uc *ProductUsecase) Update(ctx context.Context, id string, patch productdom.Patch) (productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return productdom.Product{}, ErrProductInvalidArgument
	}

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		return productdom.Product{}, err
	}
	if err := p.Apply(patch, uc.clock.Now()); err != nil {
		return productdom.Product{}, err
	}
	if err := uc.products.Update(ctx, pid, patch); err != nil {
		return productdom.Product{}, err
	}
	return p, nil
}

// Delete removes a product and, best-effort, its stored image object.
func (uc *ProductUsecase) Delete(ctx context.Context, id string) error {
	pid := strings.TrimSpace(id)
	if pid == "" {
		return ErrProductInvalidArgument
	}

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		return err
	}
	if err := uc.products.Delete(ctx, pid); err != nil {
		return err
	}

	// orphaned image bytes are tolerable; a failed delete only logs
	if uc.images != nil && strings.TrimSpace(p.ImageURL) != "" {
		if err := uc.images.Delete(ctx, "products/"+pid); err != nil {
			log.Printf("[product_usecase] image delete failed productId=%s err=%v", pid, err)
		}
	}

	log.Printf("[product_usecase] product deleted id=%s", pid)
	return nil
}

// AttachImage stores image bytes and points the product at the resulting URL.
// Object path convention: products/<productId> (one image per product).
func (uc *ProductUsecase) AttachImage(ctx context.Context, id string, contentType string, data []byte) (productdom.Product, error) {
	pid := strings.TrimSpace(id)
	if pid == "" || len(data) == 0 {
		return productdom.Product{}, ErrProductInvalidArgument
	}
	if uc.images == nil {
		return productdom.Product{}, errors.New("product_usecase: image store is not configured")
	}

	// existence check first so a bad id doesn't leave an orphan object
	if _, err := uc.products.GetByID(ctx, pid); err != nil {
		return productdom.Product{}, err
	}

	url, err := uc.images.Upload(ctx, "products/"+pid, contentType, data)
	if err != nil {
		return productdom.Product{}, fmt.Errorf("product_usecase: upload image: %w", err)
	}

	return uc.Update(ctx, pid, productdom.Patch{ImageURL: &url})
}
