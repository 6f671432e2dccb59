package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uuid.UUID
	ShopID        uuid.UUID
	CategoryID    *uuid.UUID
	BrandID       *uuid.UUID
	Name          string
	Slug          string
	Description   *string
	Price         float64
	OriginalPrice *float64
	Sizes         []string
	Colors        []string
	ImageURL      *string
	Rating        float64
	ReviewCount   int
	IsFeatured    bool
	IsTrending    bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DiscountPercent is derived from the struck-through original price; zero
// when the product is not discounted.
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice == 0 {
		return 0
	}
	return int((*p.OriginalPrice - p.Price) / *p.OriginalPrice * 100)
}

type Brand struct {
	ID   uuid.UUID
	Name string
	Slug string
}

type ProductSortField string

const (
	SortFieldFeatured ProductSortField = "FEATURED"
	SortFieldPrice    ProductSortField = "PRICE"
	SortFieldRating   ProductSortField = "RATING"
	SortFieldNewest   ProductSortField = "NEWEST"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "ASC"
	SortDirectionDesc SortDirection = "DESC"
)

type ProductFilterInput struct {
	Query        *string
	CategorySlug *string
	BrandSlug    *string
	MinPrice     *float64
	MaxPrice     *float64
}

type ProductSortInput struct {
	Field     ProductSortField
	Direction SortDirection
}

type CreateProductInput struct {
	Name          string
	Description   *string
	Price         float64
	OriginalPrice *float64
	CategoryID    *uuid.UUID
	BrandID       *uuid.UUID
	Sizes         []string
	Colors        []string
	ImageURL      *string
}

type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	OriginalPrice *float64
	Sizes         []string
	Colors        []string
	ImageURL      *string
	IsActive      *bool
}
