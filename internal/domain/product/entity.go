// backend/internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ===============================
// Errors
// ===============================

var (
	ErrInvalidID          = errors.New("product: invalid id")
	ErrInvalidName        = errors.New("product: invalid name")
	ErrInvalidDescription = errors.New("product: invalid description")
	ErrInvalidPrice       = errors.New("product: price must be >= 0")
	ErrInvalidStock       = errors.New("product: stock must be >= 0")
	ErrNotFound           = errors.New("product: not found")
)

// ===============================
// Entity
// ===============================

// Product は商品エンティティ。
// 価格は decimal（通貨の丸め誤差対策）、在庫は非負整数。
// category / imageUrl は任意項目（空文字 = 未設定）。
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Patch represents partial updates to Product fields.
// A nil field means "no change".
type Patch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	Category    *string
	ImageURL    *string
}

// ===============================
// Constructor
// ===============================

// New は商品を生成して validate します。
// id は Firestore docId（新規作成時は空でよく、リポジトリが採番して埋める）。
func New(
	id string,
	name string,
	description string,
	price decimal.Decimal,
	stock int,
	category string,
	imageURL string,
	now time.Time,
) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Stock:       stock,
		Category:    strings.TrimSpace(category),
		ImageURL:    strings.TrimSpace(imageURL),
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

// ===============================
// Behavior
// ===============================

// Apply applies a Patch and bumps UpdatedAt.
func (p *Product) Apply(patch Patch, now time.Time) error {
	next := *p

	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		next.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.ImageURL != nil {
		next.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}

	next.UpdatedAt = now.UTC()
	if err := next.validate(); err != nil {
		return err
	}

	*p = next
	return nil
}

// InStock reports whether qty units can currently be taken from stock.
func (p Product) InStock(qty int) bool {
	return qty > 0 && qty <= p.Stock
}

// Subtotal returns price × qty.
func (p Product) Subtotal(qty int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(qty)))
}

func (p Product) validate() error {
	// ID は採番前（新規作成時）のみ空を許す
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Description == "" {
		return ErrInvalidDescription
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		return errors.New("product: invalid timestamps")
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		return errors.New("product: updatedAt before createdAt")
	}
	return nil
}
