package httpapi

import (
	"vastra-be/internal/cart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	carts cart.Service
}

type cartItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	LineTotal float64 `json:"lineTotal"`
}

func (h *CartHandler) List(c *gin.Context) {
	items, err := h.carts.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]cartItemResponse, 0, len(items))
	var subtotal float64
	for _, it := range items {
		out = append(out, cartItemResponse{
			ID:        it.ID.String(),
			ProductID: it.ProductID.String(),
			Name:      it.Product.Name,
			Brand:     it.Product.Brand,
			Price:     it.Product.Price,
			ImageURL:  it.Product.ImageURL,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
			LineTotal: it.LineTotal(),
		})
		subtotal += it.LineTotal()
	}
	respondOK(c, gin.H{"items": out, "subtotal": subtotal})
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (h *CartHandler) Add(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondBadRequest(c, "invalid product id")
		return
	}

	err = h.carts.Add(c.Request.Context(), cart.AddItemParams{
		ProductID: productID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, gin.H{"added": true})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid cart item id")
		return
	}
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), itemID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"updated": true})
}

func (h *CartHandler) Remove(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "invalid cart item id")
		return
	}
	if err := h.carts.Remove(c.Request.Context(), itemID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"removed": true})
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"cleared": true})
}
