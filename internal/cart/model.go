package cart

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	Size      string
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time

	Product ProductSummary
}

// ProductSummary is the slice of the product row the cart page needs.
type ProductSummary struct {
	Name     string
	Brand    string
	Price    float64
	ImageURL *string
}

func (i CartItem) LineTotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

type AddItemParams struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
	Color     string
}
