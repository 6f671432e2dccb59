package httpapi

import (
	"vastra-be/internal/wishlist"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WishlistHandler struct {
	wishlists wishlist.Service
}

func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.wishlists.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	type wishlistItemResponse struct {
		ID        string  `json:"id"`
		ProductID string  `json:"productId"`
		Name      string  `json:"name"`
		Slug      string  `json:"slug"`
		Price     float64 `json:"price"`
		ImageURL  *string `json:"imageUrl,omitempty"`
		IsActive  bool    `json:"isActive"`
	}
	out := make([]wishlistItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, wishlistItemResponse{
			ID:        it.ID.String(),
			ProductID: it.ProductID.String(),
			Name:      it.Product.Name,
			Slug:      it.Product.Slug,
			Price:     it.Product.Price,
			ImageURL:  it.Product.ImageURL,
			IsActive:  it.Product.IsActive,
		})
	}
	respondOK(c, out)
}

func (h *WishlistHandler) Count(c *gin.Context) {
	count, err := h.wishlists.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"count": count})
}

type toggleWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req toggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondBadRequest(c, "invalid product id")
		return
	}

	res, err := h.wishlists.Toggle(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"productId": res.ProductID.String(), "added": res.Added})
}
