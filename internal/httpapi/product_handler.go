package httpapi

import (
	"strconv"
	"time"

	"vastra-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	products product.Service
}

type productResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	Price           float64   `json:"price"`
	OriginalPrice   *float64  `json:"originalPrice,omitempty"`
	DiscountPercent int       `json:"discountPercent,omitempty"`
	Sizes           []string  `json:"sizes"`
	Colors          []string  `json:"colors"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	Rating          float64   `json:"rating"`
	ReviewCount     int       `json:"reviewCount"`
	IsFeatured      bool      `json:"isFeatured"`
	IsTrending      bool      `json:"isTrending"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toProductResponse(p *product.Product) productResponse {
	return productResponse{
		ID:              p.ID.String(),
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent(),
		Sizes:           p.Sizes,
		Colors:          p.Colors,
		ImageURL:        p.ImageURL,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		IsFeatured:      p.IsFeatured,
		IsTrending:      p.IsTrending,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

func toProductResponses(products []*product.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}

func queryFloatPtr(c *gin.Context, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func queryStrPtr(c *gin.Context, key string) *string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	return &raw
}

func (h *ProductHandler) Search(c *gin.Context) {
	filter := &product.ProductFilterInput{
		Query:        queryStrPtr(c, "q"),
		CategorySlug: queryStrPtr(c, "category"),
		BrandSlug:    queryStrPtr(c, "brand"),
		MinPrice:     queryFloatPtr(c, "minPrice"),
		MaxPrice:     queryFloatPtr(c, "maxPrice"),
	}

	var sort *product.ProductSortInput
	switch c.Query("sort") {
	case "price_asc":
		sort = &product.ProductSortInput{Field: product.SortFieldPrice, Direction: product.SortDirectionAsc}
	case "price_desc":
		sort = &product.ProductSortInput{Field: product.SortFieldPrice, Direction: product.SortDirectionDesc}
	case "rating":
		sort = &product.ProductSortInput{Field: product.SortFieldRating, Direction: product.SortDirectionDesc}
	case "newest":
		sort = &product.ProductSortInput{Field: product.SortFieldNewest, Direction: product.SortDirectionDesc}
	}

	products, err := h.products.Search(c.Request.Context(), filter, sort,
		queryInt(c, "limit", 20), queryInt(c, "page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toProductResponses(products))
}

func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toProductResponse(p))
}

func (h *ProductHandler) Featured(c *gin.Context) {
	products, err := h.products.GetFeatured(c.Request.Context(), queryInt(c, "limit", 12))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toProductResponses(products))
}

func (h *ProductHandler) Trending(c *gin.Context) {
	products, err := h.products.GetTrending(c.Request.Context(), queryInt(c, "limit", 12))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toProductResponses(products))
}

func (h *ProductHandler) Brands(c *gin.Context) {
	brands, err := h.products.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	type brandResponse struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	out := make([]brandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, brandResponse{ID: b.ID.String(), Name: b.Name, Slug: b.Slug})
	}
	respondOK(c, out)
}

func (h *ProductHandler) ListMine(c *gin.Context) {
	products, err := h.products.ListMine(c.Request.Context(), queryInt(c, "limit", 20), queryInt(c, "page", 1))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toProductResponses(products))
}

type createProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	Price         float64  `json:"price" binding:"required"`
	OriginalPrice *float64 `json:"originalPrice"`
	CategoryID    *string  `json:"categoryId"`
	BrandID       *string  `json:"brandId"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	ImageURL      *string  `json:"imageUrl"`
}

func parseUUIDPtr(raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	categoryID, ok := parseUUIDPtr(req.CategoryID)
	if !ok {
		respondBadRequest(c, "invalid category id")
		return
	}
	brandID, ok := parseUUIDPtr(req.BrandID)
	if !ok {
		respondBadRequest(c, "invalid brand id")
		return
	}

	p, err := h.products.Create(c.Request.Context(), product.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CategoryID:    categoryID,
		BrandID:       brandID,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, toProductResponse(p))
}

type updateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	ImageURL      *string  `json:"imageUrl"`
	IsActive      *bool    `json:"isActive"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid product id")
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, product.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		ImageURL:      req.ImageURL,
		IsActive:      req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, toProductResponse(p))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid product id")
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
