package wishlist

import (
	"time"

	"github.com/google/uuid"
)

type WishlistItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	CreatedAt time.Time

	Product ProductSummary
}

// ProductSummary carries the product fields the wishlist page renders.
type ProductSummary struct {
	Name     string
	Slug     string
	Price    float64
	ImageURL *string
	IsActive bool
}

// ToggleResult reports which way a toggle went.
type ToggleResult struct {
	ProductID uuid.UUID
	Added     bool
}
